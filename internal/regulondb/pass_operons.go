package regulondb

import (
	"context"

	"github.com/yungbote/biograph/internal/graph"
)

// importOperons reconciles Operons.txt. The natural key of an operon is its
// name, resolved through the Term attached to it within the organism.
func (im *Importer) importOperons(ctx context.Context) (*PassResult, error) {
	res := newPassResult("operons")
	rows, err := readTable(im.cfg.TablePath(im.cfg.Files.Operons))
	if err != nil {
		return nil, err
	}

	for _, fields := range rows {
		row, ok := parseOperonRow(fields)
		if !ok {
			res.Skipped++
			continue
		}

		matches, err := im.resolver.OperonByName(ctx, row.Name)
		if err != nil {
			return nil, err
		}

		switch classify(len(matches)) {
		case ResolutionNone:
			_, err := im.store.Create(ctx, graph.CreateSpec{
				Nodes: []graph.NodeSpec{
					{
						Labels: []string{"Operon", "BioEntity", "DNA"},
						Props: map[string]any{
							"name":     row.Name,
							"start":    row.Start,
							"end":      row.End,
							"strand":   row.Strand,
							"evidence": row.Evidence,
							"source":   []string{sourceTag},
						},
					},
					{Labels: []string{labelTerm}, Props: map[string]any{"text": row.Name}},
				},
				Edges: []graph.EdgeSpec{
					{From: graph.NewNode(0), Type: relHasName, To: graph.NewNode(1)},
					{From: graph.NewNode(0), Type: relPartOf, To: graph.Existing(im.organism)},
				},
			})
			if err != nil {
				return nil, err
			}
			res.Created++

		case ResolutionUnique:
			err := im.mergeEntity(ctx, matches[0], map[string]any{
				"start":    row.Start,
				"end":      row.End,
				"strand":   row.Strand,
				"evidence": row.Evidence,
			}, row.Name)
			if err != nil {
				if recordTagFailure(err, res, map[string]any{"operon": row.Name}) {
					continue
				}
				return nil, err
			}
			res.Updated++

		case ResolutionAmbiguous:
			res.Problems++
			res.warn("multiple operons for name, record skipped", map[string]any{
				"operon": row.Name, "count": len(matches),
			})
		}
	}
	return res, nil
}
