package regulondb

import (
	"context"

	"github.com/yungbote/biograph/internal/graph"
)

// importBindingSites reconciles TF binding sites.txt. A binding-site record
// is first situated in its (TU, promoter) context by names; within that
// context an existing site matches on exact start-or-midpoint plus strand.
// Every processed record then gets a fresh TranscriptionRegulation event
// connecting the site, the promoter (typed by the regulatory effect) and the
// transcription factor.
func (im *Importer) importBindingSites(ctx context.Context) (*PassResult, error) {
	res := newPassResult("binding_sites")
	rows, err := readTable(im.cfg.TablePath(im.cfg.Files.BindingSites))
	if err != nil {
		return nil, err
	}

	for _, fields := range rows {
		row, ok := parseBindingSiteRow(fields)
		if !ok {
			res.Skipped++
			continue
		}

		contexts, err := im.resolver.BindingSiteContext(ctx, row.TUName, row.Promoter)
		if err != nil {
			return nil, err
		}

		var promoter, tu graph.Node
		switch classify(len(contexts)) {
		case ResolutionNone:
			res.Problems++
			im.log.Debug("no TU/promoter context for binding site",
				"tu", row.TUName, "promoter", row.Promoter)
			continue
		case ResolutionUnique:
			promoter, tu = contexts[0][0], contexts[0][1]
		case ResolutionAmbiguous:
			res.Problems++
			res.warn("cannot identify TU for binding site, record skipped", map[string]any{
				"start": row.Start, "end": row.End, "strand": row.Strand, "count": len(contexts),
			})
			continue
		}

		mid := (row.Start + row.End) / 2
		matches, err := im.resolver.BindingSiteByPosition(ctx, row.TUName, row.Promoter, row.Strand, row.Start, row.End, mid)
		if err != nil {
			return nil, err
		}

		var bs graph.Node
		switch classify(len(matches)) {
		case ResolutionNone:
			created, err := im.store.Create(ctx, graph.CreateSpec{
				Nodes: []graph.NodeSpec{
					{
						Labels: []string{"BS", "Feature", "DNA"},
						Props: map[string]any{
							"start":    row.Start,
							"end":      row.End,
							"strand":   row.Strand,
							"seq":      row.Seq,
							"evidence": row.Evidence,
							"Reg_id":   row.SiteID,
							"center":   row.Center,
							"source":   []string{sourceTag},
						},
					},
				},
				Edges: []graph.EdgeSpec{
					{From: graph.NewNode(0), Type: relPartOf, To: graph.Existing(im.chromosome)},
					{From: graph.Existing(tu), Type: relContains, To: graph.NewNode(0)},
				},
			})
			if err != nil {
				return nil, err
			}
			bs = created[0]
			res.Created++

		case ResolutionUnique:
			bs = matches[0]
			err := im.mergeEntity(ctx, bs, map[string]any{
				"seq":      row.Seq,
				"start":    row.Start,
				"end":      row.End,
				"evidence": row.Evidence,
				"Reg_id":   row.SiteID,
				"center":   row.Center,
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
			res.warn("multiple binding sites at location, record skipped", map[string]any{
				"start": row.Start, "end": row.End, "strand": row.Strand, "count": len(matches),
			})
			continue
		}

		if err := im.wireRegulation(ctx, row, bs, promoter, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// wireRegulation creates the TranscriptionRegulation event for one record.
// Events are deliberately created fresh per record rather than matched: each
// (site, effect) observation is its own event.
func (im *Importer) wireRegulation(ctx context.Context, row BindingSiteRow, bs, promoter graph.Node, res *PassResult) error {
	created, err := im.store.Create(ctx, graph.CreateSpec{
		Nodes: []graph.NodeSpec{
			{
				Labels: []string{"TranscriptionRegulation", "RegulationEvent", "Binding"},
				Props: map[string]any{
					"Reg_id": row.InterID,
					"source": []string{sourceTag},
				},
			},
		},
		Edges: []graph.EdgeSpec{
			{From: graph.Existing(bs), Type: relParticipatesIn, To: graph.NewNode(0)},
			{From: graph.NewNode(0), Type: tfEffect(row.Effect), To: graph.Existing(promoter)},
		},
	})
	if err != nil {
		return err
	}
	event := created[0]

	proteins, err := im.store.Find(ctx, "Protein", "Reg_id", row.RegID)
	if err != nil {
		return err
	}
	switch classify(len(proteins)) {
	case ResolutionNone:
		made, err := im.store.Create(ctx, graph.CreateSpec{
			Nodes: []graph.NodeSpec{
				{
					Labels: []string{"Protein", "BioEntity"},
					Props: map[string]any{
						"Reg_id": row.RegID,
						"name":   row.TFName,
						"source": []string{sourceTag},
					},
				},
			},
		})
		if err != nil {
			return err
		}
		proteins = made
	case ResolutionAmbiguous:
		res.warn("multiple proteins for Reg_id, participation edge skipped", map[string]any{
			"reg_id": row.RegID, "name": row.TFName, "count": len(proteins),
		})
		return nil
	}
	return im.relate(ctx, proteins[0], event, relParticipatesIn)
}
