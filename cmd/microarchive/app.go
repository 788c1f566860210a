package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"microarchive/internal/config"
	"microarchive/internal/handlers"
	"microarchive/internal/iiif"
	"microarchive/internal/publish"
	"microarchive/internal/site"
	"microarchive/internal/storage"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg          *config.Config
	db           *sql.DB
	lister       *storage.CachedLister
	sites        *storage.SiteRepo
	publications *storage.PublicationRepo
	host         *site.RegistryHost
	service      publish.Service
}

// newApp opens the registry and the object store described by cfg.
func newApp(cfg *config.Config) (*app, error) {
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Database initialized", "path", cfg.DBPath)

	store, err := newObjectStore(cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	lister := storage.NewCachedLister(store, cfg.ListingCacheTTL)

	sites := storage.NewSiteRepo(db)
	publications := storage.NewPublicationRepo(db)
	host := site.NewRegistryHost(sites, lister, cfg.S3Prefix, cfg.SiteDomain)

	service := publish.NewService(lister, host, publications, publish.Config{
		Prefix:      cfg.S3Prefix,
		ImageFormat: cfg.IIIFImageFormat,
		Manifest: iiif.Config{
			ServiceURL:  cfg.IIIFServerURL,
			Attribution: cfg.IIIFAttribution,
			Rights:      cfg.IIIFRights,
		},
	})

	return &app{
		cfg:          cfg,
		db:           db,
		lister:       lister,
		sites:        sites,
		publications: publications,
		host:         host,
		service:      service,
	}, nil
}

func newObjectStore(cfg *config.Config) (storage.ObjectStore, error) {
	if cfg.LocalStoreDir != "" {
		store, err := storage.NewDirStore(cfg.LocalStoreDir, cfg.IIIFServerURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open local store: %w", err)
		}
		slog.Debug("Using local object store", "dir", cfg.LocalStoreDir)
		return store, nil
	}

	store, err := storage.NewS3Store(storage.S3Config{
		Endpoint:       cfg.S3Endpoint,
		Region:         cfg.S3Region,
		AccessKey:      cfg.S3AccessKey,
		SecretKey:      cfg.S3SecretKey,
		Bucket:         cfg.S3Bucket,
		UseSSL:         cfg.S3UseSSL,
		ImageServerURL: cfg.IIIFServerURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	slog.Debug("Using S3 object store", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	return store, nil
}

// healthChecks lists the dependencies reported by the health endpoint.
func (a *app) healthChecks() map[string]handlers.Pinger {
	return map[string]handlers.Pinger{
		"registry":     handlers.PingerFunc(a.db.PingContext),
		"object_store": a.lister,
	}
}

func (a *app) Close() error {
	return a.db.Close()
}

// loadApp loads configuration, sends logs to w and wires the app.
func loadApp(w io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogging(cfg, w)
	return newApp(cfg)
}
