package regulondb

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/biograph/internal/config"
	"github.com/yungbote/biograph/internal/graph"
	"github.com/yungbote/biograph/internal/platform/logger"
)

// Importer drives the reconciliation run: it bootstraps the root Organism
// and Chromosome entities and sequences the table passes in dependency
// order. One record is processed start-to-finish before the next; there is
// no concurrent pass execution.
type Importer struct {
	store    graph.Store
	cfg      *config.Config
	log      *logger.Logger
	resolver *Resolver

	organism   graph.Node
	chromosome graph.Node
}

func NewImporter(store graph.Store, cfg *config.Config, log *logger.Logger) *Importer {
	return &Importer{
		store:    store,
		cfg:      cfg,
		log:      log.With("component", "regulondb_importer", "run_id", uuid.NewString()),
		resolver: NewResolver(store, cfg.Organism, cfg.Chromosome),
	}
}

// bootstrap looks up the root entities every pass anchors on. Both must
// pre-exist; a missing one or an unreachable store aborts before any pass
// runs.
func (im *Importer) bootstrap(ctx context.Context) error {
	organisms, err := im.store.Find(ctx, "Organism", "name", im.cfg.Organism)
	if err != nil {
		return fmt.Errorf("regulondb: organism lookup: %w", err)
	}
	if len(organisms) == 0 {
		return fmt.Errorf("regulondb: no organism node named %q", im.cfg.Organism)
	}
	im.organism = organisms[0]

	chromosomes, err := im.store.Find(ctx, "Chromosome", "name", im.cfg.Chromosome)
	if err != nil {
		return fmt.Errorf("regulondb: chromosome lookup: %w", err)
	}
	if len(chromosomes) == 0 {
		return fmt.Errorf("regulondb: no chromosome node named %q", im.cfg.Chromosome)
	}
	im.chromosome = chromosomes[0]
	return nil
}

// Run executes the full pass sequence. The order is dictated by
// cross-references between the tables: operons and promoters before
// transcription units, transcription units before terminators and binding
// sites, genes before the gene-TU post-pass and RBSs.
func (im *Importer) Run(ctx context.Context) (*Report, error) {
	if err := im.bootstrap(ctx); err != nil {
		return nil, err
	}
	im.log.Info("starting RegulonDB import",
		"organism", im.cfg.Organism,
		"data_dir", im.cfg.DataDir)

	passes := []func(context.Context) (*PassResult, error){
		im.importOperons,
		im.importPromoters,
		im.importTUs,
		im.importTerminators,
		im.importGenesAndProducts,
		im.importBindingSites,
		im.linkGenesToTUs,
		im.importRBSs,
		im.importUTRs,
	}

	report := &Report{}
	for _, pass := range passes {
		res, err := pass(ctx)
		if err != nil {
			return report, err
		}
		report.add(res)
		im.logPass(res)
	}

	im.log.Info("import finished",
		"created", report.TotalCreated(),
		"updated", report.TotalUpdated(),
		"problems", report.TotalProblems())
	return report, nil
}

func (im *Importer) logPass(res *PassResult) {
	for _, w := range res.Warnings {
		kvs := make([]any, 0, 2*len(w.Fields)+2)
		kvs = append(kvs, "table", res.Table)
		for k, v := range w.Fields {
			kvs = append(kvs, k, v)
		}
		im.log.Warn(w.Message, kvs...)
	}
	im.log.Info("pass complete",
		"table", res.Table,
		"created", res.Created,
		"updated", res.Updated,
		"skipped", res.Skipped,
		"problems", res.Problems)
}
