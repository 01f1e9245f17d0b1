package regulondb

import (
	"context"

	"github.com/yungbote/biograph/internal/graph"
)

// importTerminators reconciles Terminators.txt. Terminators carry no display
// name; their key is the exact (start, end, strand) location on the
// chromosome.
func (im *Importer) importTerminators(ctx context.Context) (*PassResult, error) {
	res := newPassResult("terminators")
	rows, err := readTable(im.cfg.TablePath(im.cfg.Files.Terminators))
	if err != nil {
		return nil, err
	}

	for _, fields := range rows {
		row, ok := parseTerminatorRow(fields)
		if !ok {
			res.Skipped++
			continue
		}

		matches, err := im.resolver.TerminatorByLocation(ctx, row.Start, row.End, row.Strand)
		if err != nil {
			return nil, err
		}

		var terminator graph.Node
		switch classify(len(matches)) {
		case ResolutionNone:
			created, err := im.store.Create(ctx, graph.CreateSpec{
				Nodes: []graph.NodeSpec{
					{
						Labels: []string{"Terminator", "Feature", "DNA"},
						Props: map[string]any{
							"start":    row.Start,
							"end":      row.End,
							"strand":   row.Strand,
							"seq":      row.Seq,
							"evidence": row.Evidence,
							"Reg_id":   row.RegID,
							"source":   []string{sourceTag},
						},
					},
				},
				Edges: []graph.EdgeSpec{
					{From: graph.NewNode(0), Type: relPartOf, To: graph.Existing(im.chromosome)},
				},
			})
			if err != nil {
				return nil, err
			}
			terminator = created[0]
			res.Created++

		case ResolutionUnique:
			terminator = matches[0]
			err := im.mergeEntity(ctx, terminator, map[string]any{
				"seq":      row.Seq,
				"evidence": row.Evidence,
				"Reg_id":   row.RegID,
			}, "")
			if err != nil {
				if recordTagFailure(err, res, map[string]any{
					"start": row.Start, "end": row.End, "strand": row.Strand,
				}) {
					continue
				}
				return nil, err
			}
			res.Updated++

		case ResolutionAmbiguous:
			res.Problems++
			res.warn("multiple terminators at location, record skipped", map[string]any{
				"start": row.Start, "end": row.End, "strand": row.Strand, "count": len(matches),
			})
			continue
		}

		wired, err := im.containInTU(ctx, row.TU, terminator, res)
		if err != nil {
			return nil, err
		}
		if !wired {
			res.Problems++
		}
	}
	return res, nil
}
