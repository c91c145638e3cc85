package main

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"rolemenu-service/internal/config"
	"rolemenu-service/internal/repository"
	"rolemenu-service/internal/seed"
)

// Writes the role groups of a YAML document to the configured store.
func main() {
	file := pflag.String("file", "groups.yaml", "YAML document of guild role groups")

	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		log.Fatal("failed to load config", err)
	}

	unsugared, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	logger := unsugared.Sugar()

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatalw("failed to open seed file", "error", err, "file", *file)
	}
	doc, err := seed.Load(f)
	_ = f.Close()
	if err != nil {
		logger.Fatalw("failed to load seed file", "error", err, "file", *file)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	repo, err := repository.NewRepository(ctx, logger, wg, cfg.Store)
	if err != nil {
		logger.Fatalw("failed to create repository", "error", err, "backend", cfg.Store.Backend)
	}

	err = seed.Apply(ctx, logger, repo, doc)

	cancel()
	wg.Wait()

	if err != nil {
		logger.Fatalw("failed to seed groups", "error", err)
	}
	logger.Infow("seeded groups", "guilds", len(doc.Guilds))
}
