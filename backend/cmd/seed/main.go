package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"friend-network/backend/internal/graph"
	"friend-network/backend/internal/network"
	"friend-network/backend/pkg/config"
	"friend-network/backend/pkg/logger"
)

func main() {
	force := flag.Bool("force", false, "Reset the graph before seeding even if people exist")
	resetOnly := flag.Bool("reset", false, "Remove every person and exit")
	relationships := flag.String("relationships", "", "Semicolon-separated \"A knows B\" entries (default SEED_RELATIONSHIPS)")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting graph seeding...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	entries := cfg.Relationships
	if *relationships != "" {
		entries = config.SplitList(*relationships)
	}

	ctx := context.Background()
	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	repo := graph.NewRepository(driver)
	defer repo.Close(ctx)

	log.Info("Creating constraints...")
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to create constraints", zap.Error(err))
	}

	if *resetOnly {
		if err := repo.Reset(ctx); err != nil {
			log.Fatal("Failed to reset graph", zap.Error(err))
		}
		log.Info("Graph reset complete")
		return
	}

	count, err := repo.Count(ctx)
	if err != nil {
		log.Fatal("Failed to count people", zap.Error(err))
	}
	if count > 0 && !*force {
		log.Info("Graph already populated, skipping seed (use -force to reseed)",
			zap.Int("people", count),
		)
		os.Exit(0)
	}
	if count > 0 {
		log.Info("Resetting graph", zap.Int("people", count))
		if err := repo.Reset(ctx); err != nil {
			log.Fatal("Failed to reset graph", zap.Error(err))
		}
	}

	svc := network.NewService(repo, logger.For("network"))
	if err := svc.Seed(ctx, entries); err != nil {
		log.Fatal("Failed to seed graph", zap.Error(err))
	}

	people, err := svc.Network(ctx)
	if err != nil {
		log.Fatal("Failed to read seeded graph", zap.Error(err))
	}
	for _, p := range people {
		log.Info("Person",
			zap.Int("id", p.ID),
			zap.String("name", p.Name),
			zap.Strings("friends", p.Friends),
		)
	}

	log.Info("Seeding complete", zap.Int("people", len(people)))
}
