package regulondb

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/biograph/internal/graph"
)

const sourceTag = "RegulonDB"

// ErrUnexpectedSourceType signals a source property that is neither a string
// nor a list. It fails the current record's tagging step only; the pass
// keeps going, because the condition points at store data integrity rather
// than at the input.
var ErrUnexpectedSourceType = errors.New("unexpected source property type")

// tagSource appends the RegulonDB provenance tag to an entity's source
// property at most once. Legacy single-string values are upgraded to a
// two-element list.
func (im *Importer) tagSource(ctx context.Context, n graph.Node) error {
	switch v := n.Props["source"].(type) {
	case string:
		if v == sourceTag {
			return nil
		}
		return im.store.UpdateProperties(ctx, n, map[string]any{
			"source": []string{v, sourceTag},
		})
	case []string:
		for _, s := range v {
			if s == sourceTag {
				return nil
			}
		}
		return im.store.UpdateProperties(ctx, n, map[string]any{
			"source": append(append([]string{}, v...), sourceTag),
		})
	case []any:
		for _, s := range v {
			if s == sourceTag {
				return nil
			}
		}
		return im.store.UpdateProperties(ctx, n, map[string]any{
			"source": append(append([]any{}, v...), sourceTag),
		})
	default:
		return fmt.Errorf("%w: %T", ErrUnexpectedSourceType, v)
	}
}

// ensureNameTerm attaches a new name Term only when no Term with this exact
// text is already linked to the entity. An entity may accumulate synonyms
// across runs, but never two Terms with the same text.
func (im *Importer) ensureNameTerm(ctx context.Context, n graph.Node, name string) error {
	if name == "" {
		return nil
	}
	exists, err := im.resolver.AttachedNameTerm(ctx, n, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = im.store.Create(ctx, graph.CreateSpec{
		Nodes: []graph.NodeSpec{
			{Labels: []string{labelTerm}, Props: map[string]any{"text": name}},
		},
		Edges: []graph.EdgeSpec{
			{From: graph.Existing(n), Type: relHasName, To: graph.NewNode(0)},
		},
	})
	return err
}

// mergeEntity is the shared merge path: overwrite the supplied properties,
// reuse-or-create the name Term, then tag provenance. An empty name skips
// the Term step (some kinds, like terminators, carry no display name).
func (im *Importer) mergeEntity(ctx context.Context, n graph.Node, props map[string]any, name string) error {
	if err := im.store.UpdateProperties(ctx, n, props); err != nil {
		return err
	}
	if err := im.ensureNameTerm(ctx, n, name); err != nil {
		return err
	}
	return im.tagSource(ctx, n)
}

// recordTagFailure folds an ErrUnexpectedSourceType into the pass result and
// reports whether the error was consumed; any other error is the caller's to
// return.
func recordTagFailure(err error, res *PassResult, fields map[string]any) bool {
	if errors.Is(err, ErrUnexpectedSourceType) {
		res.Problems++
		res.warn(err.Error(), fields)
		return true
	}
	return false
}
