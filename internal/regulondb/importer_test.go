package regulondb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/biograph/internal/config"
	"github.com/yungbote/biograph/internal/graph"
	"github.com/yungbote/biograph/internal/platform/logger"
)

// Table file names as the default config expects them.
const (
	operonsFile      = "Operons.txt"
	promotersFile    = "All Promoters.txt"
	tusFile          = "Transcription Units.txt"
	terminatorsFile  = "Terminators.txt"
	geneProductsFile = "All gene products.txt"
	srnaGenesFile    = "sRNA genes.txt"
	bindingSitesFile = "TF binding sites.txt"
	rbssFile         = "RBSs.txt"
	utrsFile         = "5' and 3' UTR sequence of TUs.txt"
)

func testImporter(t *testing.T, fs *fakeStore, files map[string]string) *Importer {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write table %s: %v", name, err)
		}
	}
	cfg := config.Default()
	cfg.DataDir = dir
	return &Importer{
		store:    fs,
		cfg:      cfg,
		log:      logger.Nop(),
		resolver: NewResolver(fs, cfg.Organism, cfg.Chromosome),
		organism: graph.Node{
			ID:    "org-1",
			Props: map[string]any{"name": cfg.Organism},
		},
		chromosome: graph.Node{
			ID:    "chr-1",
			Props: map[string]any{"name": cfg.Chromosome},
		},
	}
}

func TestBootstrapMissingOrganism(t *testing.T) {
	fs := newFakeStore()
	im := testImporter(t, fs, nil)

	if err := im.bootstrap(context.Background()); err == nil {
		t.Fatalf("expected error for missing organism node")
	}
}

func TestBootstrapFindsRootNodes(t *testing.T) {
	fs := newFakeStore()
	im := testImporter(t, fs, nil)
	fs.stubFind("Organism", "name", im.cfg.Organism, graph.Node{ID: "org-9"})
	fs.stubFind("Chromosome", "name", im.cfg.Chromosome, graph.Node{ID: "chr-9"})

	if err := im.bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if im.organism.ID != "org-9" || im.chromosome.ID != "chr-9" {
		t.Fatalf("bootstrap resolved wrong nodes: %s, %s", im.organism.ID, im.chromosome.ID)
	}
}
