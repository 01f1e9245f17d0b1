package regulondb

import (
	"context"

	"github.com/yungbote/biograph/internal/graph"
)

// importUTRs reconciles the UTR table. Each row can carry a 5' end, a 3'
// end, or both; the two are independent features, each placed under the TU
// that the (promoter tss, promoter name) context identifies and associated
// with the promoter itself.
func (im *Importer) importUTRs(ctx context.Context) (*PassResult, error) {
	res := newPassResult("utrs")
	rows, err := readTable(im.cfg.TablePath(im.cfg.Files.UTRs))
	if err != nil {
		return nil, err
	}

	for _, fields := range rows {
		row, ok := parseUTRRow(fields)
		if !ok {
			res.Skipped++
			continue
		}

		contexts, err := im.resolver.PromoterTUByTSS(ctx, row.TSS, row.Promoter)
		if err != nil {
			return nil, err
		}

		switch classify(len(contexts)) {
		case ResolutionNone:
			res.Skipped++
			continue
		case ResolutionAmbiguous:
			res.Problems++
			res.warn("multiple promoter/TU contexts for UTR, record skipped", map[string]any{
				"promoter": row.Promoter, "tu": row.TU, "count": len(contexts),
			})
			continue
		}
		promoter, tu := contexts[0][0], contexts[0][1]

		if row.Loc5 != nil {
			if err := im.upsertUTR(ctx, labelUTR5, *row.Loc5, row.Strand, row.Seq5, promoter, tu, res); err != nil {
				return nil, err
			}
		}
		if row.Loc3 != nil {
			if err := im.upsertUTR(ctx, labelUTR3, *row.Loc3, row.Strand, row.Seq3, promoter, tu, res); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

func (im *Importer) upsertUTR(ctx context.Context, label string, loc SpanLoc, strand, seq string, promoter, tu graph.Node, res *PassResult) error {
	existing, err := im.resolver.UTRChild(ctx, tu, label, loc.Start, loc.End, strand)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		if err := im.mergeEntity(ctx, existing[0], map[string]any{"seq": seq}, ""); err != nil {
			if recordTagFailure(err, res, map[string]any{
				"utr": label, "start": loc.Start, "end": loc.End,
			}) {
				return nil
			}
			return err
		}
		res.Updated++
		return nil
	}

	_, err = im.store.Create(ctx, graph.CreateSpec{
		Nodes: []graph.NodeSpec{
			{
				Labels: []string{label, "Feature"},
				Props: map[string]any{
					"start":  loc.Start,
					"end":    loc.End,
					"strand": strand,
					"seq":    seq,
					"source": []string{sourceTag},
				},
			},
		},
		Edges: []graph.EdgeSpec{
			{From: graph.NewNode(0), Type: relPartOf, To: graph.Existing(im.chromosome)},
			{From: graph.NewNode(0), Type: relIsAssociatedWith, To: graph.Existing(promoter)},
			{From: graph.Existing(tu), Type: relContains, To: graph.NewNode(0)},
		},
	})
	if err != nil {
		return err
	}
	res.Created++
	return nil
}
