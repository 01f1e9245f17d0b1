package regulondb

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/biograph/internal/graph"
)

func TestTagSourceAlreadyTaggedString(t *testing.T) {
	fs := newFakeStore()
	im := testImporter(t, fs, nil)
	n := graph.Node{ID: "n1", Props: map[string]any{"source": "RegulonDB"}}

	if err := im.tagSource(context.Background(), n); err != nil {
		t.Fatalf("tagSource: %v", err)
	}
	if len(fs.updates) != 0 {
		t.Fatalf("expected no update for already tagged node, got %d", len(fs.updates))
	}
}

func TestTagSourceUpgradesString(t *testing.T) {
	fs := newFakeStore()
	im := testImporter(t, fs, nil)
	n := graph.Node{ID: "n1", Props: map[string]any{"source": "MetaCyc"}}

	if err := im.tagSource(context.Background(), n); err != nil {
		t.Fatalf("tagSource: %v", err)
	}
	if len(fs.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(fs.updates))
	}
	got, ok := fs.updates[0].Props["source"].([]string)
	if !ok || len(got) != 2 || got[0] != "MetaCyc" || got[1] != "RegulonDB" {
		t.Fatalf("unexpected source value: %#v", fs.updates[0].Props["source"])
	}
}

func TestTagSourceAppendsToList(t *testing.T) {
	fs := newFakeStore()
	im := testImporter(t, fs, nil)
	n := graph.Node{ID: "n1", Props: map[string]any{"source": []any{"MetaCyc", "EcoCyc"}}}

	if err := im.tagSource(context.Background(), n); err != nil {
		t.Fatalf("tagSource: %v", err)
	}
	got, ok := fs.updates[0].Props["source"].([]any)
	if !ok || len(got) != 3 || got[2] != "RegulonDB" {
		t.Fatalf("unexpected source value: %#v", fs.updates[0].Props["source"])
	}
}

func TestTagSourceListIdempotent(t *testing.T) {
	fs := newFakeStore()
	im := testImporter(t, fs, nil)
	n := graph.Node{ID: "n1", Props: map[string]any{"source": []any{"MetaCyc", "RegulonDB"}}}

	if err := im.tagSource(context.Background(), n); err != nil {
		t.Fatalf("tagSource: %v", err)
	}
	if len(fs.updates) != 0 {
		t.Fatalf("expected no update when tag already present, got %d", len(fs.updates))
	}
}

func TestTagSourceRejectsUnexpectedType(t *testing.T) {
	fs := newFakeStore()
	im := testImporter(t, fs, nil)
	n := graph.Node{ID: "n1", Props: map[string]any{"source": int64(7)}}

	err := im.tagSource(context.Background(), n)
	if !errors.Is(err, ErrUnexpectedSourceType) {
		t.Fatalf("expected ErrUnexpectedSourceType, got %v", err)
	}
}

func TestEnsureNameTermReusesExisting(t *testing.T) {
	fs := newFakeStore()
	im := testImporter(t, fs, nil)
	n := graph.Node{ID: "n1", Props: map[string]any{"name": "araBAD"}}
	fs.stubQuery(attachedNameTermQuery, map[string]any{"id": "n1", "text": "araBAD"},
		[]graph.Node{{ID: "t1"}})

	if err := im.ensureNameTerm(context.Background(), n, "araBAD"); err != nil {
		t.Fatalf("ensureNameTerm: %v", err)
	}
	if len(fs.creates) != 0 {
		t.Fatalf("expected no new Term for matching text, got %d creates", len(fs.creates))
	}
}

func TestEnsureNameTermCreatesSynonym(t *testing.T) {
	fs := newFakeStore()
	im := testImporter(t, fs, nil)
	n := graph.Node{ID: "n1", Props: map[string]any{"name": "araBAD"}}

	if err := im.ensureNameTerm(context.Background(), n, "newName"); err != nil {
		t.Fatalf("ensureNameTerm: %v", err)
	}
	if len(fs.creates) != 1 {
		t.Fatalf("expected one create, got %d", len(fs.creates))
	}
	spec := fs.creates[0]
	if len(spec.Nodes) != 1 || spec.Nodes[0].Labels[0] != labelTerm {
		t.Fatalf("expected a Term node, got %#v", spec.Nodes)
	}
	if spec.Nodes[0].Props["text"] != "newName" {
		t.Fatalf("unexpected term text: %v", spec.Nodes[0].Props["text"])
	}
	edge := spec.Edges[0]
	if edge.Type != relHasName || edge.From.Node == nil || edge.From.Node.ID != "n1" {
		t.Fatalf("expected HAS_NAME edge from entity, got %#v", edge)
	}
}
