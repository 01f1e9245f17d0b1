package regulondb

import (
	"context"
	"testing"

	"github.com/yungbote/biograph/internal/graph"
)

const terminatorTable = "REGT1\t50\t80\t+\tACGT\ttuA\trho\topA\tref\tev1\n"

func TestImportTerminatorsCreatesAndWiresTU(t *testing.T) {
	fs := newFakeStore()
	im := testImporter(t, fs, map[string]string{terminatorsFile: terminatorTable})

	fs.stubQuery(tuByNameTermQuery, map[string]any{
		"organism": im.cfg.Organism, "name": "tuA",
	}, []graph.Node{{ID: "tu-1"}})

	res, err := im.importTerminators(context.Background())
	if err != nil {
		t.Fatalf("importTerminators: %v", err)
	}
	if res.Created != 1 || res.Problems != 0 {
		t.Fatalf("unexpected counters: %+v", res)
	}

	// First create is the terminator itself, second is the containment edge.
	if len(fs.creates) != 2 {
		t.Fatalf("expected terminator create plus TU wiring, got %d", len(fs.creates))
	}
	terminator := fs.creates[0].Nodes[0]
	if terminator.Props["start"] != 50 || terminator.Props["end"] != 80 || terminator.Props["strand"] != "+" {
		t.Fatalf("unexpected terminator props: %#v", terminator.Props)
	}
	wiring := fs.creates[1]
	if len(wiring.Nodes) != 0 || wiring.Edges[0].Type != relContains {
		t.Fatalf("expected edge-only CONTAINS wiring, got %#v", wiring)
	}
	if wiring.Edges[0].From.Node.ID != "tu-1" {
		t.Fatalf("containment must run TU -> terminator, got %#v", wiring.Edges[0])
	}
}

func TestImportTerminatorsMissingTUCountsProblem(t *testing.T) {
	fs := newFakeStore()
	im := testImporter(t, fs, map[string]string{terminatorsFile: terminatorTable})

	res, err := im.importTerminators(context.Background())
	if err != nil {
		t.Fatalf("importTerminators: %v", err)
	}
	if res.Created != 1 {
		t.Fatalf("terminator itself should still be created: %+v", res)
	}
	if res.Problems != 1 || len(res.Warnings) != 1 {
		t.Fatalf("missing TU should warn and count a problem: %+v", res)
	}
}

func TestImportTerminatorsSkipsDuplicates(t *testing.T) {
	fs := newFakeStore()
	im := testImporter(t, fs, map[string]string{terminatorsFile: terminatorTable})

	fs.stubQuery(terminatorByLocationQuery, map[string]any{
		"chromosome": im.cfg.Chromosome, "start": 50, "end": 80, "strand": "+",
	}, []graph.Node{{ID: "t1"}}, []graph.Node{{ID: "t2"}})

	res, err := im.importTerminators(context.Background())
	if err != nil {
		t.Fatalf("importTerminators: %v", err)
	}
	if res.Problems != 1 || res.Created != 0 || res.Updated != 0 {
		t.Fatalf("unexpected counters: %+v", res)
	}
	if len(fs.updates) != 0 || len(fs.creates) != 0 {
		t.Fatalf("duplicate key must leave both entities untouched")
	}
}
