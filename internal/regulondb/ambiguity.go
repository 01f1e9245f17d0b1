package regulondb

import "github.com/yungbote/biograph/internal/graph"

// Resolution classifies a resolver result. The default policy maps
// ResolutionAmbiguous to "skip the record and count a problem"; the RBS gene
// lookup is the one place that tie-breaks instead.
type Resolution int

const (
	ResolutionNone Resolution = iota
	ResolutionUnique
	ResolutionAmbiguous
)

func classify(n int) Resolution {
	switch {
	case n == 0:
		return ResolutionNone
	case n == 1:
		return ResolutionUnique
	default:
		return ResolutionAmbiguous
	}
}

// nearestGene breaks an ambiguous gene match for an RBS record: for each
// candidate take the smaller of (start + center) and (end + center) and keep
// the candidate with the overall minimum. Ties keep the first candidate in
// resolver order, so the outcome is deterministic for a fixed graph state.
func nearestGene(candidates []graph.Node, center float64) graph.Node {
	best := 0
	bestDist := 0.0
	for i, g := range candidates {
		d := min(float64(g.IntProp("start"))+center, float64(g.IntProp("end"))+center)
		if i == 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return candidates[best]
}
