package regulondb

import (
	"context"
	"strings"
)

// linkGenesToTUs is the reconciliation post-pass: genes that no TU contains
// after the name-based passes are matched back against the raw TU table. A
// TU row is a candidate when the gene's name occurs anywhere in the row
// text; each candidate's Reg_id is then looked up and the containment edge
// wired, skipping Reg_ids that match zero or several TUs.
func (im *Importer) linkGenesToTUs(ctx context.Context) (*PassResult, error) {
	res := newPassResult("gene_tu_links")
	rows, err := readTable(im.cfg.TablePath(im.cfg.Files.TUs))
	if err != nil {
		return nil, err
	}

	genes, err := im.resolver.GenesWithoutTU(ctx)
	if err != nil {
		return nil, err
	}

	for _, gene := range genes {
		name := gene.StringProp("name")
		if name == "" {
			res.Skipped++
			continue
		}

		for _, fields := range rows {
			if !strings.Contains(strings.Join(fields, "\t"), name) {
				continue
			}
			regID := fields[0]
			if regID == "" {
				continue
			}

			tus, err := im.store.Find(ctx, "TU", "Reg_id", regID)
			if err != nil {
				return nil, err
			}
			switch classify(len(tus)) {
			case ResolutionNone:
				res.Problems++
				res.warn("no TU for Reg_id, gene link skipped", map[string]any{
					"reg_id": regID, "gene": name,
				})
			case ResolutionAmbiguous:
				res.Problems++
				res.warn("multiple TUs for Reg_id, gene link skipped", map[string]any{
					"reg_id": regID, "gene": name, "count": len(tus),
				})
			case ResolutionUnique:
				if err := im.relate(ctx, tus[0], gene, relContains); err != nil {
					return nil, err
				}
				res.Updated++
			}
		}
	}
	return res, nil
}
