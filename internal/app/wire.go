package app

import (
	"context"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"keyshare/internal/directory"
	"keyshare/internal/domain"
	"keyshare/internal/observability/logging"
	"keyshare/internal/observability/metrics"
	sharesvc "keyshare/internal/services/share"
	"keyshare/internal/store"
	"keyshare/internal/store/sqlstore"
	"keyshare/internal/trustcache"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config    Config
	Directory domain.KeyQuerier // nil without a directory URL
	Snapshots domain.SnapshotStore
	Share     *sharesvc.Service
	Registry  *prometheus.Registry // resolution metrics of this process
}

// NewWire constructs the dependency graph from cfg.
func NewWire(ctx context.Context, cfg Config) (*Wire, error) {
	home, err := cfg.HomeDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(home, 0o700); err != nil {
		return nil, err
	}
	cfg.Home = home

	log := logging.NewLogger(logging.Config{
		ServiceName: "trustctl",
		Environment: cfg.Env,
		Level:       cfg.LogLevel,
		Output:      os.Stderr,
	})
	reg := prometheus.NewRegistry()
	m := metrics.New()
	m.MustRegister(reg)

	// Snapshot store: SQL when configured, files otherwise
	var snaps domain.SnapshotStore
	if cfg.DatabaseURL != "" {
		db, err := sqlstore.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		st := sqlstore.New(db)
		if err := st.Migrate(ctx); err != nil {
			return nil, err
		}
		snaps = st
	} else {
		snaps = store.NewSnapshotFileStore(home)
	}

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var dir domain.KeyQuerier
	if cfg.DirectoryURL != "" {
		dir = directory.NewHTTP(cfg.DirectoryURL, httpClient)
	}

	return &Wire{
		Config:    cfg,
		Directory: dir,
		Snapshots: snaps,
		Share:     sharesvc.New(dir, snaps, trustcache.New(cfg.CacheSize), log, m),
		Registry:  reg,
	}, nil
}

// WriteMetrics dumps the registry to path in the Prometheus text format.
func (w *Wire) WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, w.Registry)
}
