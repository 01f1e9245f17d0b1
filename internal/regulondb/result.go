package regulondb

// Warning records one recoverable condition with the fields that identify
// the record it concerns.
type Warning struct {
	Message string
	Fields  map[string]any
}

// PassResult is the explicit outcome of one table pass. Skipped counts
// incomplete records rejected silently by the parse step; Problems counts
// ambiguous matches, unresolved references and per-record tagging failures.
type PassResult struct {
	Table    string
	Created  int
	Updated  int
	Skipped  int
	Problems int
	Warnings []Warning
}

func newPassResult(table string) *PassResult {
	return &PassResult{Table: table}
}

func (r *PassResult) warn(msg string, fields map[string]any) {
	r.Warnings = append(r.Warnings, Warning{Message: msg, Fields: fields})
}

// Report aggregates all pass results of one run.
type Report struct {
	Passes []*PassResult
}

func (r *Report) add(p *PassResult) {
	r.Passes = append(r.Passes, p)
}

func (r *Report) TotalCreated() int {
	n := 0
	for _, p := range r.Passes {
		n += p.Created
	}
	return n
}

func (r *Report) TotalUpdated() int {
	n := 0
	for _, p := range r.Passes {
		n += p.Updated
	}
	return n
}

func (r *Report) TotalProblems() int {
	n := 0
	for _, p := range r.Passes {
		n += p.Problems
	}
	return n
}
