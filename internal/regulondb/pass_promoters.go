package regulondb

import (
	"context"

	"github.com/yungbote/biograph/internal/graph"
)

// importPromoters reconciles All Promoters.txt. Promoters are keyed by their
// transcription start site on the configured chromosome; the TSS doubles as
// both coordinates of the feature.
func (im *Importer) importPromoters(ctx context.Context) (*PassResult, error) {
	res := newPassResult("promoters")
	rows, err := readTable(im.cfg.TablePath(im.cfg.Files.Promoters))
	if err != nil {
		return nil, err
	}

	for _, fields := range rows {
		row, ok := parsePromoterRow(fields)
		if !ok {
			res.Skipped++
			continue
		}

		matches, err := im.resolver.PromoterByTSS(ctx, row.TSS)
		if err != nil {
			return nil, err
		}

		switch classify(len(matches)) {
		case ResolutionNone:
			_, err := im.store.Create(ctx, graph.CreateSpec{
				Nodes: []graph.NodeSpec{
					{
						Labels: []string{"Promoter", "Feature", "BioEntity", "DNA"},
						Props: map[string]any{
							"name":     row.Name,
							"start":    row.TSS,
							"end":      row.TSS,
							"strand":   row.Strand,
							"tss":      row.TSS,
							"seq":      row.Seq,
							"evidence": row.Evidence,
							"Reg_id":   row.RegID,
							"source":   []string{sourceTag},
						},
					},
					{Labels: []string{labelTerm}, Props: map[string]any{"text": row.Name}},
				},
				Edges: []graph.EdgeSpec{
					{From: graph.NewNode(0), Type: relPartOf, To: graph.Existing(im.organism)},
					{From: graph.NewNode(0), Type: relPartOf, To: graph.Existing(im.chromosome)},
					{From: graph.NewNode(0), Type: relHasName, To: graph.NewNode(1)},
				},
			})
			if err != nil {
				return nil, err
			}
			res.Created++

		case ResolutionUnique:
			err := im.mergeEntity(ctx, matches[0], map[string]any{
				"seq":      row.Seq,
				"evidence": row.Evidence,
				"Reg_id":   row.RegID,
			}, row.Name)
			if err != nil {
				if recordTagFailure(err, res, map[string]any{"promoter": row.Name, "tss": row.TSS}) {
					continue
				}
				return nil, err
			}
			res.Updated++

		case ResolutionAmbiguous:
			res.Problems++
			res.warn("multiple promoters at tss, record skipped", map[string]any{
				"tss": row.TSS, "count": len(matches),
			})
		}
	}
	return res, nil
}
