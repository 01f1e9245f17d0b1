package regulondb

import (
	"testing"

	"github.com/yungbote/biograph/internal/graph"
)

func TestClassify(t *testing.T) {
	if classify(0) != ResolutionNone {
		t.Fatalf("0 matches should classify as none")
	}
	if classify(1) != ResolutionUnique {
		t.Fatalf("1 match should classify as unique")
	}
	if classify(2) != ResolutionAmbiguous || classify(9) != ResolutionAmbiguous {
		t.Fatalf("2+ matches should classify as ambiguous")
	}
}

func TestNearestGenePicksMinimalBoundary(t *testing.T) {
	far := graph.Node{ID: "g-far", Props: map[string]any{"start": int64(100), "end": int64(120)}}
	near := graph.Node{ID: "g-near", Props: map[string]any{"start": int64(40), "end": int64(60)}}

	got := nearestGene([]graph.Node{far, near}, 5.0)
	if got.ID != "g-near" {
		t.Fatalf("expected nearest gene g-near, got %s", got.ID)
	}
}

func TestNearestGeneTieKeepsFirst(t *testing.T) {
	a := graph.Node{ID: "g-a", Props: map[string]any{"start": int64(40), "end": int64(60)}}
	b := graph.Node{ID: "g-b", Props: map[string]any{"start": int64(40), "end": int64(90)}}

	got := nearestGene([]graph.Node{a, b}, 5.0)
	if got.ID != "g-a" {
		t.Fatalf("tie should keep first candidate, got %s", got.ID)
	}
}
