package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/biograph/internal/platform/envutil"
)

// Files names the RegulonDB export tables inside the data directory. The
// defaults match the file names of the RegulonDB download bundle.
type Files struct {
	Operons      string `yaml:"operons"`
	Promoters    string `yaml:"promoters"`
	TUs          string `yaml:"transcription_units"`
	Terminators  string `yaml:"terminators"`
	GeneProducts string `yaml:"gene_products"`
	SRNAGenes    string `yaml:"srna_genes"`
	BindingSites string `yaml:"binding_sites"`
	RBSs         string `yaml:"rbss"`
	UTRs         string `yaml:"utrs"`
}

type Neo4j struct {
	URI            string `yaml:"uri"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	Database       string `yaml:"database"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxPoolSize    int    `yaml:"max_pool_size"`
}

type Config struct {
	DataDir    string `yaml:"data_dir"`
	Organism   string `yaml:"organism"`
	Chromosome string `yaml:"chromosome"`
	LogMode    string `yaml:"log_mode"`
	Neo4j      Neo4j  `yaml:"neo4j"`
	Files      Files  `yaml:"files"`
}

func Default() *Config {
	return &Config{
		Organism:   "Escherichia coli str. K-12 substr. MG1655",
		Chromosome: "Escherichia coli str. K-12 substr. MG1655, complete genome.",
		LogMode:    "development",
		Neo4j: Neo4j{
			URI:            envutil.Str("NEO4J_URI", "bolt://localhost:7687"),
			User:           envutil.Str("NEO4J_USER", "neo4j"),
			Password:       envutil.Str("NEO4J_PASSWORD", ""),
			Database:       envutil.Str("NEO4J_DATABASE", ""),
			TimeoutSeconds: envutil.Int("NEO4J_TIMEOUT_SECONDS", 10),
			MaxPoolSize:    envutil.Int("NEO4J_MAX_POOL_SIZE", 50),
		},
		Files: Files{
			Operons:      "Operons.txt",
			Promoters:    "All Promoters.txt",
			TUs:          "Transcription Units.txt",
			Terminators:  "Terminators.txt",
			GeneProducts: "All gene products.txt",
			SRNAGenes:    "sRNA genes.txt",
			BindingSites: "TF binding sites.txt",
			RBSs:         "RBSs.txt",
			UTRs:         "5' and 3' UTR sequence of TUs.txt",
		},
	}
}

// Load reads an optional YAML file over the defaults. Missing path means
// defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir is required")
	}
	info, err := os.Stat(c.DataDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("config: data_dir %q is not a directory", c.DataDir)
	}
	if c.Organism == "" {
		return fmt.Errorf("config: organism name is required")
	}
	if c.Chromosome == "" {
		return fmt.Errorf("config: chromosome name is required")
	}
	return nil
}

// TablePath resolves a table file name inside the data directory.
func (c *Config) TablePath(name string) string {
	return filepath.Join(c.DataDir, name)
}
