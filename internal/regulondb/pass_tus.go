package regulondb

import (
	"context"

	"github.com/yungbote/biograph/internal/graph"
)

// importTUs reconciles Transcription Units.txt. A TU's natural key is
// indirect: the Term text of the promoter it is linked to, within the
// organism. A freshly created TU is wired under its promoter here; the
// operon containment edge is wired independently, so either anchor may be
// missing without failing the record.
func (im *Importer) importTUs(ctx context.Context) (*PassResult, error) {
	res := newPassResult("transcription_units")
	rows, err := readTable(im.cfg.TablePath(im.cfg.Files.TUs))
	if err != nil {
		return nil, err
	}

	for _, fields := range rows {
		row, ok := parseTURow(fields)
		if !ok {
			res.Skipped++
			continue
		}

		matches, err := im.resolver.TUByPromoterTerm(ctx, row.Promoter)
		if err != nil {
			return nil, err
		}

		var tu graph.Node
		switch classify(len(matches)) {
		case ResolutionNone:
			created, err := im.store.Create(ctx, graph.CreateSpec{
				Nodes: []graph.NodeSpec{
					{
						Labels: []string{"TU", "BioEntity", "DNA"},
						Props: map[string]any{
							"name":     row.Name,
							"evidence": row.Evidence,
							"Reg_id":   row.RegID,
							"source":   []string{sourceTag},
						},
					},
					{Labels: []string{labelTerm}, Props: map[string]any{"text": row.Name}},
				},
				Edges: []graph.EdgeSpec{
					{From: graph.NewNode(0), Type: relPartOf, To: graph.Existing(im.organism)},
					{From: graph.NewNode(0), Type: relHasName, To: graph.NewNode(1)},
				},
			})
			if err != nil {
				return nil, err
			}
			tu = created[0]
			res.Created++

			if err := im.wireTUPromoter(ctx, tu, row.Promoter, res); err != nil {
				return nil, err
			}

		case ResolutionUnique:
			tu = matches[0]
			err := im.mergeEntity(ctx, tu, map[string]any{
				"evidence": row.Evidence,
				"Reg_id":   row.RegID,
			}, row.Name)
			if err != nil {
				if recordTagFailure(err, res, map[string]any{"tu": row.Name}) {
					continue
				}
				return nil, err
			}
			res.Updated++

		case ResolutionAmbiguous:
			res.Problems++
			res.warn("multiple TUs share the promoter, record skipped", map[string]any{
				"tu": row.Name, "promoter": row.Promoter, "count": len(matches),
			})
			continue
		}

		if err := im.wireOperonTU(ctx, row.Operon, tu, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// wireTUPromoter puts the promoter named by the record under a new TU. Zero
// or several matching promoters leave the edge out with a warning.
func (im *Importer) wireTUPromoter(ctx context.Context, tu graph.Node, promoterName string, res *PassResult) error {
	promoters, err := im.resolver.PromoterByTerm(ctx, promoterName)
	if err != nil {
		return err
	}
	switch classify(len(promoters)) {
	case ResolutionNone:
		res.warn("no promoter for name, containment edge skipped", map[string]any{
			"promoter": promoterName,
		})
	case ResolutionAmbiguous:
		res.warn("multiple promoters for name, containment edge skipped", map[string]any{
			"promoter": promoterName, "count": len(promoters),
		})
	case ResolutionUnique:
		return im.relate(ctx, tu, promoters[0], relContains)
	}
	return nil
}

// wireOperonTU puts the TU under its operon, found by the operon's name
// property. Tolerates a missing or duplicated operon.
func (im *Importer) wireOperonTU(ctx context.Context, operonName string, tu graph.Node, res *PassResult) error {
	operons, err := im.store.Find(ctx, "Operon", "name", operonName)
	if err != nil {
		return err
	}
	switch classify(len(operons)) {
	case ResolutionNone:
		res.warn("no operon for name, containment edge skipped", map[string]any{
			"operon": operonName,
		})
	case ResolutionAmbiguous:
		res.warn("multiple operons for name, containment edge skipped", map[string]any{
			"operon": operonName, "count": len(operons),
		})
	case ResolutionUnique:
		return im.relate(ctx, operons[0], tu, relContains)
	}
	return nil
}
