package regulondb

import (
	"context"

	"github.com/yungbote/biograph/internal/graph"
)

// Resolver runs the kind-specific natural-key lookups. All lookups are
// read-only pattern matches scoped to the configured organism and
// chromosome; a lookup that finds no intermediate entity simply returns no
// rows.
type Resolver struct {
	store      graph.Store
	organism   string
	chromosome string
}

func NewResolver(store graph.Store, organism, chromosome string) *Resolver {
	return &Resolver{store: store, organism: organism, chromosome: chromosome}
}

const (
	operonByNameQuery = `MATCH (o:Organism {name: $organism})<-[:PART_OF]-(op:Operon)-[:HAS_NAME]->(:Term {text: $name}) RETURN op`

	promoterByTSSQuery = `MATCH (ch:Chromosome {name: $chromosome})<-[:PART_OF]-(p:Promoter {tss: $tss})-[:PART_OF]->(o:Organism {name: $organism}) RETURN p`

	tuByPromoterTermQuery = `MATCH (t:Term {text: $promoter})<-[:HAS_NAME]-(p:Promoter)<-[:CONTAINS]-(tu:TU)-[:PART_OF]->(o:Organism {name: $organism}) RETURN tu`

	promoterByTermQuery = `MATCH (t:Term {text: $promoter})<-[:HAS_NAME]-(p:Promoter)-[:PART_OF]->(o:Organism {name: $organism}) RETURN p`

	tuByNameTermQuery = `MATCH (o:Organism {name: $organism})<-[:PART_OF]-(tu:TU)-[:HAS_NAME]->(:Term {text: $name}) RETURN tu`

	terminatorByLocationQuery = `MATCH (ch:Chromosome {name: $chromosome})<-[:PART_OF]-(t:Terminator {start: $start, end: $end, strand: $strand}) RETURN t`

	geneWithProductQuery = `MATCH (ch:Chromosome {name: $chromosome})<-[:PART_OF]-(g:Gene {start: $start, end: $end, strand: $strand})-[:ENCODES]->(p) RETURN g, p`

	geneByLocationQuery = `MATCH (ch:Chromosome {name: $chromosome})<-[:PART_OF]-(g:Gene {start: $start, end: $end, strand: $strand}) RETURN g`

	bindingSiteContextQuery = `MATCH (o:Organism {name: $organism})<-[:PART_OF]-(tu:TU)-[:HAS_NAME]-(t1:Term {text: $tu}), (tu)-[:CONTAINS]->(p:Promoter)-[:HAS_NAME]-(t2:Term {text: $promoter}) RETURN p, tu`

	// The start/end predicate keeps the precedence of the historical import
	// rule: a candidate matches on the midpoint alone, or on both exact
	// bounds.
	bindingSiteByPositionQuery = `MATCH (o:Organism {name: $organism})<-[:PART_OF]-(tu:TU)-[:HAS_NAME]-(t1:Term {text: $tu}), (tu)-[:CONTAINS]->(p:Promoter)-[:HAS_NAME]->(t2:Term {text: $promoter}), (tu)-[:CONTAINS]->(bs:BS {strand: $strand}) WHERE bs.start = $mid OR bs.start = $start AND bs.end = $end RETURN bs`

	genesWithoutTUQuery = `MATCH (g:Gene) WHERE NOT (g)<-[:CONTAINS]-(:TU) RETURN g`

	genesByStrandAndNameQuery = `MATCH (o:Organism {name: $organism})<-[:PART_OF]-(g:Gene {strand: $strand})-[:HAS_NAME]-(t:Term {text: $gene}) RETURN g`

	promoterTUByTSSQuery = `MATCH (o:Organism {name: $organism})<-[:PART_OF]-(p:Promoter {tss: $tss})-[:HAS_NAME]->(t1:Term {text: $promoter}), (p)--(tu:TU) RETURN p, tu`

	attachedNameTermQuery = `MATCH (e) WHERE elementId(e) = $id MATCH (e)-[:HAS_NAME]->(t:Term {text: $text}) RETURN t`

	utr5ChildQuery = "MATCH (tu) WHERE elementId(tu) = $id MATCH (tu)-[:CONTAINS]->(u:`5'UTR` {start: $start, end: $end, strand: $strand}) RETURN u"

	utr3ChildQuery = "MATCH (tu) WHERE elementId(tu) = $id MATCH (tu)-[:CONTAINS]->(u:`3'UTR` {start: $start, end: $end, strand: $strand}) RETURN u"
)

func firstColumn(rows [][]graph.Node) []graph.Node {
	nodes := make([]graph.Node, 0, len(rows))
	for _, row := range rows {
		nodes = append(nodes, row[0])
	}
	return nodes
}

func (r *Resolver) OperonByName(ctx context.Context, name string) ([]graph.Node, error) {
	rows, err := r.store.Query(ctx, operonByNameQuery, map[string]any{
		"organism": r.organism, "name": name,
	})
	return firstColumn(rows), err
}

func (r *Resolver) PromoterByTSS(ctx context.Context, tss int) ([]graph.Node, error) {
	rows, err := r.store.Query(ctx, promoterByTSSQuery, map[string]any{
		"chromosome": r.chromosome, "organism": r.organism, "tss": tss,
	})
	return firstColumn(rows), err
}

// TUByPromoterTerm finds transcription units through the Term text of their
// linked Promoter; the TU's own name is not part of the key.
func (r *Resolver) TUByPromoterTerm(ctx context.Context, promoterName string) ([]graph.Node, error) {
	rows, err := r.store.Query(ctx, tuByPromoterTermQuery, map[string]any{
		"organism": r.organism, "promoter": promoterName,
	})
	return firstColumn(rows), err
}

func (r *Resolver) PromoterByTerm(ctx context.Context, promoterName string) ([]graph.Node, error) {
	rows, err := r.store.Query(ctx, promoterByTermQuery, map[string]any{
		"organism": r.organism, "promoter": promoterName,
	})
	return firstColumn(rows), err
}

func (r *Resolver) TUByNameTerm(ctx context.Context, name string) ([]graph.Node, error) {
	rows, err := r.store.Query(ctx, tuByNameTermQuery, map[string]any{
		"organism": r.organism, "name": name,
	})
	return firstColumn(rows), err
}

func (r *Resolver) TerminatorByLocation(ctx context.Context, start, end int, strand string) ([]graph.Node, error) {
	rows, err := r.store.Query(ctx, terminatorByLocationQuery, map[string]any{
		"chromosome": r.chromosome, "start": start, "end": end, "strand": strand,
	})
	return firstColumn(rows), err
}

// GeneWithProduct returns (gene, product) pairs at an exact location.
func (r *Resolver) GeneWithProduct(ctx context.Context, start, end int, strand string) ([][]graph.Node, error) {
	return r.store.Query(ctx, geneWithProductQuery, map[string]any{
		"chromosome": r.chromosome, "start": start, "end": end, "strand": strand,
	})
}

func (r *Resolver) GeneByLocation(ctx context.Context, start, end int, strand string) ([]graph.Node, error) {
	rows, err := r.store.Query(ctx, geneByLocationQuery, map[string]any{
		"chromosome": r.chromosome, "start": start, "end": end, "strand": strand,
	})
	return firstColumn(rows), err
}

// BindingSiteContext returns (promoter, tu) pairs for the named TU/promoter
// combination a binding-site record refers to.
func (r *Resolver) BindingSiteContext(ctx context.Context, tuName, promoterName string) ([][]graph.Node, error) {
	return r.store.Query(ctx, bindingSiteContextQuery, map[string]any{
		"organism": r.organism, "tu": tuName, "promoter": promoterName,
	})
}

func (r *Resolver) BindingSiteByPosition(ctx context.Context, tuName, promoterName, strand string, start, end, mid int) ([]graph.Node, error) {
	rows, err := r.store.Query(ctx, bindingSiteByPositionQuery, map[string]any{
		"organism": r.organism, "tu": tuName, "promoter": promoterName,
		"strand": strand, "start": start, "end": end, "mid": mid,
	})
	return firstColumn(rows), err
}

func (r *Resolver) GenesWithoutTU(ctx context.Context) ([]graph.Node, error) {
	rows, err := r.store.Query(ctx, genesWithoutTUQuery, nil)
	return firstColumn(rows), err
}

func (r *Resolver) GenesByStrandAndName(ctx context.Context, strand, geneName string) ([]graph.Node, error) {
	rows, err := r.store.Query(ctx, genesByStrandAndNameQuery, map[string]any{
		"organism": r.organism, "strand": strand, "gene": geneName,
	})
	return firstColumn(rows), err
}

// PromoterTUByTSS returns (promoter, tu) pairs for the UTR context: a
// promoter at the given TSS carrying the given name Term, together with any
// TU it is connected to.
func (r *Resolver) PromoterTUByTSS(ctx context.Context, tss int, promoterName string) ([][]graph.Node, error) {
	return r.store.Query(ctx, promoterTUByTSSQuery, map[string]any{
		"organism": r.organism, "tss": tss, "promoter": promoterName,
	})
}

// UTRChild finds an existing UTR of one transcript end under a TU at an
// exact location.
func (r *Resolver) UTRChild(ctx context.Context, tu graph.Node, label string, start, end int, strand string) ([]graph.Node, error) {
	query := utr5ChildQuery
	if label == labelUTR3 {
		query = utr3ChildQuery
	}
	rows, err := r.store.Query(ctx, query, map[string]any{
		"id": tu.ID, "start": start, "end": end, "strand": strand,
	})
	return firstColumn(rows), err
}

// AttachedNameTerm reports whether the entity already carries a name Term
// with exactly this text.
func (r *Resolver) AttachedNameTerm(ctx context.Context, n graph.Node, text string) (bool, error) {
	rows, err := r.store.Query(ctx, attachedNameTermQuery, map[string]any{
		"id": n.ID, "text": text,
	})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
