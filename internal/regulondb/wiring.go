package regulondb

import (
	"context"

	"github.com/yungbote/biograph/internal/graph"
)

// Relationship types. Direction is always container → contained for
// CONTAINS, entity → Term for HAS_NAME and member → owner for PART_OF.
const (
	relPartOf           = "PART_OF"
	relHasName          = "HAS_NAME"
	relContains         = "CONTAINS"
	relEncodes          = "ENCODES"
	relParticipatesIn   = "PARTICIPATES_IN"
	relIsAssociatedWith = "IS_ASSOCIATED_WITH"
)

const (
	labelTerm = "Term"
	labelUTR5 = "5'UTR"
	labelUTR3 = "3'UTR"
)

// tfEffect maps a regulatory effect code to the relationship type between a
// TranscriptionRegulation event and its Promoter.
func tfEffect(effect string) string {
	switch effect {
	case "+":
		return "ACTIVATES"
	case "-":
		return "REPRESSES"
	case "+-":
		return "MODULATES"
	default:
		return "UNKNOWN"
	}
}

// relate wires a single edge between two existing entities, creating it only
// if absent. Wiring never touches node properties.
func (im *Importer) relate(ctx context.Context, from, to graph.Node, relType string) error {
	_, err := im.store.Create(ctx, graph.CreateSpec{
		Edges: []graph.EdgeSpec{
			{From: graph.Existing(from), Type: relType, To: graph.Existing(to)},
		},
	})
	return err
}

// containInTU puts an element under every TU carrying the given name Term.
// A missing TU is not fatal to the record: the edge is omitted, a warning is
// recorded, and the caller counts the problem.
func (im *Importer) containInTU(ctx context.Context, tuName string, element graph.Node, res *PassResult) (bool, error) {
	tus, err := im.resolver.TUByNameTerm(ctx, tuName)
	if err != nil {
		return false, err
	}
	if len(tus) == 0 {
		res.warn("no TU for name, containment edge skipped", map[string]any{"tu": tuName})
		return false, nil
	}
	for _, tu := range tus {
		if err := im.relate(ctx, tu, element, relContains); err != nil {
			return false, err
		}
	}
	return true, nil
}
