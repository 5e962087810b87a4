package cmd

import (
	"fmt"
	"strings"

	"timingcfg/core/config"
	"timingcfg/core/document"
	"timingcfg/core/history"
	"timingcfg/core/logger"
	"timingcfg/core/reconcile"
	"timingcfg/core/release"
	"timingcfg/core/storage"
	"timingcfg/feature/timing"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// app is everything a file command needs, built from config and flags.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	recorder history.Recorder
	svc      *timing.Service
}

// loadConfig loads configuration and applies flag overrides. debug forces
// debug logging.
func loadConfig(debug bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if releaseLocation != "" {
		cfg.Release.Location = releaseLocation
	}
	if suffix != "" {
		cfg.Document.Suffix = suffix
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newApp(debug bool) (*app, error) {
	cfg, err := loadConfig(debug)
	if err != nil {
		return nil, err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	runID := logger.NewRunID()
	l = logger.WithRunID(l, runID)

	fs := afero.NewOsFs()
	lister, err := newLister(cfg, fs)
	if err != nil {
		return nil, err
	}

	store := document.NewStore(fs, l, cfg.Document.Indent)
	recorder := history.Open(cfg.Database, l)
	engine := reconcile.NewEngine(lister, store, l)

	svc := timing.NewService(store, engine, recorder, l, timing.Options{
		Release:         cfg.Release,
		Overwrite:       overwrite,
		Suffix:          cfg.Document.Suffix,
		RoundtripSuffix: cfg.Document.RoundtripSuffix,
		NoiseDir:        noiseDir,
		DryRun:          dryRun,
		RunID:           runID,
	})

	l.Debug("configuration loaded",
		zap.String("release", cfg.Release.Location),
		zap.Bool("overwrite", overwrite),
		zap.Bool("dry_run", dryRun),
		zap.Bool("history", cfg.Database.Enabled))

	return &app{cfg: cfg, log: l, recorder: recorder, svc: svc}, nil
}

// newLister lists local releases from fs and, when the release lives in
// object storage, s3:// releases through the storage client.
func newLister(cfg *config.Config, fs afero.Fs) (release.Lister, error) {
	router := &release.Router{Files: release.NewFSLister(fs)}
	if strings.HasPrefix(cfg.Release.Location, storage.Scheme) {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		router.Objects = release.NewObjectLister(client)
	}
	return router, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}
