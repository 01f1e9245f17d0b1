package regulondb

import (
	"context"

	"github.com/yungbote/biograph/internal/graph"
)

// importGenesAndProducts reconciles All gene products.txt. A gene's key is
// its exact (start, end, strand) location; its product is created alongside
// it. A matched gene that lacks an ENCODES edge still gets a fresh product,
// whether or not the gene itself needed updating. The product's subtype
// depends on whether the gene name appears in the sRNA gene table.
func (im *Importer) importGenesAndProducts(ctx context.Context) (*PassResult, error) {
	res := newPassResult("genes_and_products")

	srna, err := im.loadSRNANames()
	if err != nil {
		return nil, err
	}
	rows, err := readTable(im.cfg.TablePath(im.cfg.Files.GeneProducts))
	if err != nil {
		return nil, err
	}

	for _, fields := range rows {
		row, ok := parseGeneProductRow(fields)
		if !ok {
			res.Skipped++
			continue
		}

		pairs, err := im.resolver.GeneWithProduct(ctx, row.Start, row.End, row.Strand)
		if err != nil {
			return nil, err
		}

		switch classify(len(pairs)) {
		case ResolutionNone:
			if err := im.upsertGeneWithoutProduct(ctx, row, srna, res); err != nil {
				return nil, err
			}

		case ResolutionUnique:
			gene, product := pairs[0][0], pairs[0][1]
			if err := im.tagSource(ctx, gene); err != nil {
				if recordTagFailure(err, res, map[string]any{"gene": row.Name}) {
					continue
				}
				return nil, err
			}
			if err := im.tagSource(ctx, product); err != nil {
				if recordTagFailure(err, res, map[string]any{"product": row.Product}) {
					continue
				}
				return nil, err
			}
			res.Updated++

		case ResolutionAmbiguous:
			res.Problems++
			res.warn("multiple genes with products at location, record skipped", map[string]any{
				"start": row.Start, "end": row.End, "strand": row.Strand, "count": len(pairs),
			})
		}
	}
	return res, nil
}

// upsertGeneWithoutProduct handles the record when no (gene, product) pair
// exists yet: either the gene is missing entirely, or it exists without a
// product.
func (im *Importer) upsertGeneWithoutProduct(ctx context.Context, row GeneProductRow, srna map[string]bool, res *PassResult) error {
	genes, err := im.resolver.GeneByLocation(ctx, row.Start, row.End, row.Strand)
	if err != nil {
		return err
	}

	var product graph.Node
	switch classify(len(genes)) {
	case ResolutionNone:
		created, err := im.store.Create(ctx, graph.CreateSpec{
			Nodes: []graph.NodeSpec{
				{
					Labels: []string{"Gene", "BioEntity", "Feature", "DNA"},
					Props: map[string]any{
						"name":     row.Name,
						"evidence": row.Evidence,
						"start":    row.Start,
						"end":      row.End,
						"strand":   row.Strand,
						"bcode":    row.BCode,
						"product":  row.Product,
						"Reg_id":   row.RegID,
						"source":   []string{sourceTag},
					},
				},
				{Labels: []string{labelTerm}, Props: map[string]any{"text": row.Name}},
				{
					Labels: []string{"BioEntity"},
					Props: map[string]any{
						"name":   row.Product,
						"source": []string{sourceTag},
					},
				},
				{Labels: []string{labelTerm}, Props: map[string]any{"text": row.Product}},
			},
			Edges: []graph.EdgeSpec{
				{From: graph.NewNode(0), Type: relPartOf, To: graph.Existing(im.organism)},
				{From: graph.NewNode(2), Type: relPartOf, To: graph.Existing(im.organism)},
				{From: graph.NewNode(0), Type: relPartOf, To: graph.Existing(im.chromosome)},
				{From: graph.NewNode(0), Type: relHasName, To: graph.NewNode(1)},
				{From: graph.NewNode(2), Type: relHasName, To: graph.NewNode(3)},
				{From: graph.NewNode(0), Type: relEncodes, To: graph.NewNode(2)},
			},
		})
		if err != nil {
			return err
		}
		product = created[2]
		res.Created++

	case ResolutionUnique:
		gene := genes[0]
		err := im.mergeEntity(ctx, gene, map[string]any{
			"bcode":    row.BCode,
			"Reg_id":   row.RegID,
			"evidence": row.Evidence,
		}, row.Name)
		if err != nil {
			if recordTagFailure(err, res, map[string]any{"gene": row.Name}) {
				return nil
			}
			return err
		}
		created, err := im.store.Create(ctx, graph.CreateSpec{
			Nodes: []graph.NodeSpec{
				{
					Labels: []string{"BioEntity"},
					Props: map[string]any{
						"name":   row.Product,
						"source": []string{sourceTag},
					},
				},
				{Labels: []string{labelTerm}, Props: map[string]any{"text": row.Product}},
			},
			Edges: []graph.EdgeSpec{
				{From: graph.NewNode(0), Type: relHasName, To: graph.NewNode(1)},
				{From: graph.NewNode(0), Type: relPartOf, To: graph.Existing(im.organism)},
				{From: graph.Existing(gene), Type: relEncodes, To: graph.NewNode(0)},
			},
		})
		if err != nil {
			return err
		}
		product = created[0]
		res.Updated++

	case ResolutionAmbiguous:
		res.Problems++
		res.warn("multiple genes at location, record skipped", map[string]any{
			"start": row.Start, "end": row.End, "strand": row.Strand, "count": len(genes),
		})
		return nil
	}

	if srna[row.Name] {
		return im.store.AddLabels(ctx, product, "sRNA", "RNA")
	}
	return im.store.AddLabels(ctx, product, "Polypeptide", "Peptide")
}

// loadSRNANames reads the sRNA gene table into the name set that decides a
// product's subtype.
func (im *Importer) loadSRNANames() (map[string]bool, error) {
	rows, err := readTable(im.cfg.TablePath(im.cfg.Files.SRNAGenes))
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(rows))
	for _, fields := range rows {
		if len(fields) > 1 && fields[1] != "" {
			names[fields[1]] = true
		}
	}
	return names, nil
}
