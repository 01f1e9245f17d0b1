package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Organism == "" || cfg.Chromosome == "" {
		t.Fatalf("defaults must name the organism and chromosome")
	}
	if cfg.Files.Promoters != "All Promoters.txt" {
		t.Fatalf("unexpected default promoters file: %q", cfg.Files.Promoters)
	}
	if cfg.Neo4j.URI == "" {
		t.Fatalf("neo4j uri default missing")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
data_dir: /var/data/regulondb
organism: "Salmonella enterica"
files:
  operons: "operons.tsv"
neo4j:
  uri: "bolt://db:7687"
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/var/data/regulondb" {
		t.Fatalf("data_dir not applied: %q", cfg.DataDir)
	}
	if cfg.Organism != "Salmonella enterica" {
		t.Fatalf("organism not applied: %q", cfg.Organism)
	}
	if cfg.Files.Operons != "operons.tsv" {
		t.Fatalf("file override not applied: %q", cfg.Files.Operons)
	}
	if cfg.Neo4j.URI != "bolt://db:7687" {
		t.Fatalf("neo4j override not applied: %q", cfg.Neo4j.URI)
	}
	// Untouched keys keep their defaults.
	if cfg.Files.Promoters != "All Promoters.txt" {
		t.Fatalf("unrelated default lost: %q", cfg.Files.Promoters)
	}
	if cfg.Chromosome == "" {
		t.Fatalf("chromosome default lost")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("missing config file must fail")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("empty data_dir must fail validation")
	}

	cfg.DataDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	cfg.Organism = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("empty organism must fail validation")
	}
}

func TestTablePath(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/data"
	if got := cfg.TablePath("Operons.txt"); got != filepath.Join("/data", "Operons.txt") {
		t.Fatalf("TablePath: %q", got)
	}
}
