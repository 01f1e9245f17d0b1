package regulondb

import "testing"

func TestParsePromoterRowRejectsMissingFields(t *testing.T) {
	if _, ok := parsePromoterRow([]string{"REG1", "", "+", "100", "s", "q", "e"}); ok {
		t.Fatalf("missing name must be rejected")
	}
	if _, ok := parsePromoterRow([]string{"REG1", "promA", "+", "x", "s", "q", "e"}); ok {
		t.Fatalf("unparsable tss must be rejected")
	}
	row, ok := parsePromoterRow([]string{"REG1", "promA", "+", "100", "s", "q", "e"})
	if !ok || row.TSS != 100 {
		t.Fatalf("valid row rejected: %+v", row)
	}
}

func TestParseTerminatorRowRejectsZeroCoordinates(t *testing.T) {
	fields := []string{"REGT1", "0", "80", "+", "seq", "tuA", "rho", "op", "ref", "ev"}
	if _, ok := parseTerminatorRow(fields); ok {
		t.Fatalf("zero start must be rejected")
	}
	fields[1] = "50"
	row, ok := parseTerminatorRow(fields)
	if !ok || row.TU != "tuA" || row.Evidence != "ev" {
		t.Fatalf("valid row rejected: %+v", row)
	}
}

func TestParseBindingSiteRow(t *testing.T) {
	fields := []string{"TF1", "AraC", "S1", "10", "30", "+", "I1", "tuA", "-", "promA", "5.5", "seq", "ev"}
	row, ok := parseBindingSiteRow(fields)
	if !ok || row.Center != 5.5 || row.Effect != "-" {
		t.Fatalf("valid row rejected: %+v", row)
	}
	fields[10] = ""
	if _, ok := parseBindingSiteRow(fields); ok {
		t.Fatalf("missing center must be rejected")
	}
}

func TestParseUTRRowIndependentEnds(t *testing.T) {
	base := []string{"op", "tu", "pro", "100", "+", "g1", "g2", "rho", "loc", "", "", "", ""}
	if _, ok := parseUTRRow(base); ok {
		t.Fatalf("row with neither end must be rejected")
	}

	base[9], base[10] = "80-99", "AAA"
	row, ok := parseUTRRow(base)
	if !ok || row.Loc5 == nil || row.Loc3 != nil {
		t.Fatalf("expected only the 5' end: %+v", row)
	}
	if row.Loc5.Start != 80 || row.Loc5.End != 99 {
		t.Fatalf("unexpected 5' span: %+v", row.Loc5)
	}

	base[9], base[10] = "", ""
	base[11], base[12] = "500-520", "CCC"
	row, ok = parseUTRRow(base)
	if !ok || row.Loc3 == nil || row.Loc5 != nil {
		t.Fatalf("expected only the 3' end: %+v", row)
	}
}

func TestParseSpan(t *testing.T) {
	if s := parseSpan("80-99"); s == nil || s.Start != 80 || s.End != 99 {
		t.Fatalf("unexpected span: %+v", s)
	}
	if parseSpan("80") != nil || parseSpan("a-b") != nil {
		t.Fatalf("malformed spans must parse to nil")
	}
}
