// Package regulondb reconciles tab-delimited RegulonDB export tables into an
// existing biological knowledge graph: every pass either creates a missing
// entity with its structural relationships or merges new properties onto the
// entity it matched, so repeated runs converge instead of duplicating.
package regulondb

import (
	"strconv"
	"strings"
)

// Row types mirror the column order of the RegulonDB export tables. Each
// parse function reports ok=false for rows the table's skip policy rejects
// (missing required fields, zero coordinates, unparsable numbers).

type OperonRow struct {
	Name     string
	Start    int
	End      int
	Strand   string
	Evidence string
}

func parseOperonRow(fields []string) (OperonRow, bool) {
	if len(fields) < 7 {
		return OperonRow{}, false
	}
	name, strand := fields[0], fields[3]
	start, err1 := strconv.Atoi(fields[1])
	end, err2 := strconv.Atoi(fields[2])
	if name == "" || err1 != nil || err2 != nil {
		return OperonRow{}, false
	}
	if strand == "" {
		strand = "unknown"
	}
	return OperonRow{Name: name, Start: start, End: end, Strand: strand, Evidence: fields[6]}, true
}

type PromoterRow struct {
	RegID    string
	Name     string
	Strand   string
	TSS      int
	Sigma    string
	Seq      string
	Evidence string
}

func parsePromoterRow(fields []string) (PromoterRow, bool) {
	if len(fields) < 7 {
		return PromoterRow{}, false
	}
	tss, err := strconv.Atoi(fields[3])
	if fields[0] == "" || fields[1] == "" || fields[2] == "" || err != nil {
		return PromoterRow{}, false
	}
	return PromoterRow{
		RegID: fields[0], Name: fields[1], Strand: fields[2],
		TSS: tss, Sigma: fields[4], Seq: fields[5], Evidence: fields[6],
	}, true
}

type TURow struct {
	RegID     string
	Name      string
	Operon    string
	GeneNames string
	Promoter  string
	Evidence  string
}

func parseTURow(fields []string) (TURow, bool) {
	if len(fields) < 6 {
		return TURow{}, false
	}
	if fields[0] == "" || fields[2] == "" {
		return TURow{}, false
	}
	return TURow{
		RegID: fields[0], Name: fields[1], Operon: fields[2],
		GeneNames: fields[3], Promoter: fields[4], Evidence: fields[5],
	}, true
}

type TerminatorRow struct {
	RegID    string
	Start    int
	End      int
	Strand   string
	Seq      string
	TU       string
	Evidence string
}

func parseTerminatorRow(fields []string) (TerminatorRow, bool) {
	if len(fields) < 10 {
		return TerminatorRow{}, false
	}
	start, err1 := strconv.Atoi(fields[1])
	end, err2 := strconv.Atoi(fields[2])
	if fields[0] == "" || fields[3] == "" || err1 != nil || err2 != nil || start == 0 || end == 0 {
		return TerminatorRow{}, false
	}
	return TerminatorRow{
		RegID: fields[0], Start: start, End: end, Strand: fields[3],
		Seq: fields[4], TU: fields[5], Evidence: fields[9],
	}, true
}

type GeneProductRow struct {
	RegID    string
	Name     string
	BCode    string
	Start    int
	End      int
	Strand   string
	Product  string
	Evidence string
	PMID     string
}

func parseGeneProductRow(fields []string) (GeneProductRow, bool) {
	if len(fields) < 9 {
		return GeneProductRow{}, false
	}
	start, err1 := strconv.Atoi(fields[3])
	end, err2 := strconv.Atoi(fields[4])
	if fields[0] == "" || fields[5] == "" || err1 != nil || err2 != nil || start == 0 || end == 0 {
		return GeneProductRow{}, false
	}
	return GeneProductRow{
		RegID: fields[0], Name: fields[1], BCode: fields[2],
		Start: start, End: end, Strand: fields[5],
		Product: fields[6], Evidence: fields[7], PMID: fields[8],
	}, true
}

type BindingSiteRow struct {
	RegID    string // the transcription factor's RegulonDB id
	TFName   string
	SiteID   string
	Start    int
	End      int
	Strand   string
	InterID  string
	TUName   string
	Effect   string
	Promoter string
	Center   float64
	Seq      string
	Evidence string
}

func parseBindingSiteRow(fields []string) (BindingSiteRow, bool) {
	if len(fields) < 13 {
		return BindingSiteRow{}, false
	}
	if fields[0] == "" || fields[5] == "" || fields[10] == "" {
		return BindingSiteRow{}, false
	}
	start, err1 := strconv.Atoi(fields[3])
	end, err2 := strconv.Atoi(fields[4])
	center, err3 := strconv.ParseFloat(fields[10], 64)
	if err1 != nil || err2 != nil || err3 != nil || start == 0 || end == 0 {
		return BindingSiteRow{}, false
	}
	return BindingSiteRow{
		RegID: fields[0], TFName: fields[1], SiteID: fields[2],
		Start: start, End: end, Strand: fields[5],
		InterID: fields[6], TUName: fields[7], Effect: fields[8],
		Promoter: fields[9], Center: center, Seq: fields[11], Evidence: fields[12],
	}, true
}

type RBSRow struct {
	RegID    string
	Gene     string
	Start    int
	End      int
	Strand   string
	Center   float64
	Seq      string
	Evidence string
}

func parseRBSRow(fields []string) (RBSRow, bool) {
	if len(fields) < 8 {
		return RBSRow{}, false
	}
	if fields[0] == "" || fields[4] == "" {
		return RBSRow{}, false
	}
	start, err1 := strconv.Atoi(fields[2])
	end, err2 := strconv.Atoi(fields[3])
	center, err3 := strconv.ParseFloat(fields[5], 64)
	if err1 != nil || err2 != nil || err3 != nil || start == 0 || end == 0 {
		return RBSRow{}, false
	}
	return RBSRow{
		RegID: fields[0], Gene: fields[1], Start: start, End: end,
		Strand: fields[4], Center: center, Seq: fields[6], Evidence: fields[7],
	}, true
}

// UTRRow carries both transcript ends; either may be absent independently.
type UTRRow struct {
	Operon   string
	TU       string
	Promoter string
	TSS      int
	Strand   string
	Loc5     *SpanLoc
	Seq5     string
	Loc3     *SpanLoc
	Seq3     string
}

type SpanLoc struct {
	Start int
	End   int
}

func parseSpan(s string) *SpanLoc {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return nil
	}
	start, err1 := strconv.Atoi(parts[0])
	end, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil
	}
	return &SpanLoc{Start: start, End: end}
}

func parseUTRRow(fields []string) (UTRRow, bool) {
	if len(fields) < 13 {
		return UTRRow{}, false
	}
	if fields[9] == "" && fields[11] == "" {
		return UTRRow{}, false
	}
	tss, err := strconv.Atoi(fields[3])
	if err != nil {
		return UTRRow{}, false
	}
	row := UTRRow{
		Operon: fields[0], TU: fields[1], Promoter: fields[2],
		TSS: tss, Strand: fields[4], Seq5: fields[10], Seq3: fields[12],
	}
	if fields[9] != "" {
		row.Loc5 = parseSpan(fields[9])
	}
	if fields[11] != "" {
		row.Loc3 = parseSpan(fields[11])
	}
	if row.Loc5 == nil && row.Loc3 == nil {
		return UTRRow{}, false
	}
	return row, true
}
