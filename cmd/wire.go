package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/omnivector-solutions/license-manager-sub000/core/archive"
	"github.com/omnivector-solutions/license-manager-sub000/core/backend"
	"github.com/omnivector-solutions/license-manager-sub000/core/config"
	"github.com/omnivector-solutions/license-manager-sub000/core/database"
	"github.com/omnivector-solutions/license-manager-sub000/core/history"
	"github.com/omnivector-solutions/license-manager-sub000/core/logger"
	"github.com/omnivector-solutions/license-manager-sub000/core/reconcile"
	"github.com/omnivector-solutions/license-manager-sub000/core/slurm"
	"github.com/omnivector-solutions/license-manager-sub000/core/storage"
	"github.com/omnivector-solutions/license-manager-sub000/feature/licenses"
)

// buildEngine assembles the reconciliation engine from configuration.
// History and archival are optional and only warn when unavailable.
func buildEngine(cfg *config.Config, log *zap.Logger) *reconcile.Engine {
	engine := &reconcile.Engine{
		Backend:             backend.NewClient(cfg.Backend),
		Slurm:               slurm.NewClient(cfg.Slurm),
		Source:              licenses.NewCmdUsageSource(cfg.License),
		Log:                 log,
		Cluster:             cfg.Agent.ClusterName,
		ReservationDuration: cfg.Agent.ReservationDuration,
	}

	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			log.Warn("tick history disabled, database unavailable", zap.Error(err))
		} else if recorder, err := history.NewRecorder(db); err != nil {
			log.Warn("tick history disabled, migration failed", zap.Error(err))
		} else {
			engine.History = recorder
			log.Info("tick history enabled", zap.String("driver", cfg.Database.Driver))
		}
	}

	if cfg.Storage.Enabled {
		if store, err := storage.NewClient(cfg.Storage); err != nil {
			log.Warn("output archive disabled, storage unavailable", zap.Error(err))
		} else {
			archiver := archive.NewArchiver(store, cfg.Storage, log)
			if err := archiver.EnsureBucket(context.Background()); err != nil {
				log.Warn("output archive disabled, bucket unavailable", zap.Error(err))
			} else {
				engine.Archive = archiver
				log.Info("output archive enabled", zap.String("bucket", cfg.Storage.Bucket))
			}
		}
	}

	return engine
}

// loadAgent loads configuration and the logger for a command.
func loadAgent() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
