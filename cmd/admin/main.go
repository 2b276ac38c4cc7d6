// Command admin runs one-off maintenance jobs against the configured database.
//
//	admin -config config.yaml seed
//	admin -config config.yaml reindex
//	admin -config config.yaml purge-tokens
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/config"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/search"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/services"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/logger"
	"gorm.io/gorm"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: admin [-config path] seed|reindex|purge-tokens\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(logger.Options{Level: cfg.Log.Level})

	if err := models.InitDB(&cfg.Database, false); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	db := models.GetDB()
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, flag.Arg(0), cfg, db); err != nil {
		logger.Errorf("[Admin] Job %s failed: %v", flag.Arg(0), err)
		os.Exit(1)
	}
}

func run(ctx context.Context, job string, cfg *config.Config, db *gorm.DB) error {
	switch job {
	case "seed":
		if err := models.Migrate(db); err != nil {
			return err
		}
		if err := models.SeedDefaultData(db); err != nil {
			return err
		}
		var count int64
		db.Model(&models.Skill{}).Count(&count)
		logger.Infof("[Admin] Database migrated and seeded (%d skills)", count)

	case "reindex":
		if len(cfg.Elasticsearch.Addresses) == 0 {
			return fmt.Errorf("elasticsearch is not configured")
		}
		es, err := search.NewElastic(cfg.Elasticsearch)
		if err != nil {
			return err
		}
		if err := es.EnsureIndex(ctx); err != nil {
			return err
		}
		if err := services.NewProjectService(db, es).ReindexAll(ctx); err != nil {
			return err
		}
		logger.Infof("[Admin] Projects reindexed into %s", cfg.Elasticsearch.Index)

	case "purge-tokens":
		auth := services.NewAuthService(db, &cfg.JWT, cfg.App.ClientURL, services.NewSyncQueue())
		n, err := auth.PurgeExpiredResetTokens(ctx)
		if err != nil {
			return err
		}
		logger.Infof("[Admin] Purged %d expired reset tokens", n)

	default:
		return fmt.Errorf("unknown job %q", job)
	}
	return nil
}
