// Package main provides the regulonload binary: it reconciles a directory of
// RegulonDB export tables into an existing Neo4j biological knowledge graph.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/biograph/internal/config"
	"github.com/yungbote/biograph/internal/graph"
	"github.com/yungbote/biograph/internal/platform/logger"
	"github.com/yungbote/biograph/internal/platform/neo4jdb"
	"github.com/yungbote/biograph/internal/regulondb"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		dataDir    string
		organism   string
		chromosome string
	)

	cmd := &cobra.Command{
		Use:   "regulonload",
		Short: "Load RegulonDB export tables into the knowledge graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if organism != "" {
				cfg.Organism = organism
			}
			if chromosome != "" {
				cfg.Chromosome = chromosome
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().StringVarP(&dataDir, "dir", "d", "", "directory with RegulonDB export tables")
	cmd.Flags().StringVar(&organism, "organism", "", "organism node name override")
	cmd.Flags().StringVar(&chromosome, "chromosome", "", "chromosome node name override")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := neo4jdb.New(ctx, neo4jdb.Config{
		URI:            cfg.Neo4j.URI,
		User:           cfg.Neo4j.User,
		Password:       cfg.Neo4j.Password,
		Database:       cfg.Neo4j.Database,
		TimeoutSeconds: cfg.Neo4j.TimeoutSeconds,
		MaxPoolSize:    cfg.Neo4j.MaxPoolSize,
	}, log)
	if err != nil {
		return err
	}
	defer client.Close(context.Background())

	store := graph.NewNeo4jStore(client, log)
	importer := regulondb.NewImporter(store, cfg, log)

	report, err := importer.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("created %d, updated %d, problems %d\n",
		report.TotalCreated(), report.TotalUpdated(), report.TotalProblems())
	return nil
}
