package regulondb

import (
	"context"

	"github.com/yungbote/biograph/internal/graph"
)

// importRBSs reconciles RBSs.txt. An RBS belongs to the gene named in the
// record, looked up by strand and name Term within the organism; when
// several genes share that name the candidate nearest to the site (by the
// smaller of start+center and end+center) wins deterministically instead of
// skipping. Re-runs match the RBS itself by its Reg_id.
func (im *Importer) importRBSs(ctx context.Context) (*PassResult, error) {
	res := newPassResult("rbss")
	rows, err := readTable(im.cfg.TablePath(im.cfg.Files.RBSs))
	if err != nil {
		return nil, err
	}

	for _, fields := range rows {
		row, ok := parseRBSRow(fields)
		if !ok {
			res.Skipped++
			continue
		}

		existing, err := im.store.Find(ctx, "RBS", "Reg_id", row.RegID)
		if err != nil {
			return nil, err
		}
		switch classify(len(existing)) {
		case ResolutionUnique:
			err := im.mergeEntity(ctx, existing[0], map[string]any{
				"start":           row.Start,
				"end":             row.End,
				"strand":          row.Strand,
				"seq":             row.Seq,
				"evidence":        row.Evidence,
				"center_from_tss": row.Center,
			}, "")
			if err != nil {
				if recordTagFailure(err, res, map[string]any{"reg_id": row.RegID}) {
					continue
				}
				return nil, err
			}
			res.Updated++
			continue
		case ResolutionAmbiguous:
			res.Problems++
			res.warn("multiple RBSs for Reg_id, record skipped", map[string]any{
				"reg_id": row.RegID, "count": len(existing),
			})
			continue
		}

		candidates, err := im.resolver.GenesByStrandAndName(ctx, row.Strand, row.Gene)
		if err != nil {
			return nil, err
		}

		var gene graph.Node
		switch classify(len(candidates)) {
		case ResolutionNone:
			res.Skipped++
			continue
		case ResolutionUnique:
			gene = candidates[0]
		case ResolutionAmbiguous:
			gene = nearestGene(candidates, row.Center)
		}

		_, err = im.store.Create(ctx, graph.CreateSpec{
			Nodes: []graph.NodeSpec{
				{
					Labels: []string{"RBS", "Feature"},
					Props: map[string]any{
						"evidence":        row.Evidence,
						"Reg_id":          row.RegID,
						"start":           row.Start,
						"end":             row.End,
						"strand":          row.Strand,
						"seq":             row.Seq,
						"center_from_tss": row.Center,
						"source":          []string{sourceTag},
					},
				},
			},
			Edges: []graph.EdgeSpec{
				{From: graph.NewNode(0), Type: relPartOf, To: graph.Existing(im.chromosome)},
				{From: graph.Existing(gene), Type: relContains, To: graph.NewNode(0)},
			},
		})
		if err != nil {
			return nil, err
		}
		res.Created++
	}
	return res, nil
}
