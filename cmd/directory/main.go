package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"keyshare/internal/directory"
	"keyshare/internal/observability/logging"
	"keyshare/internal/observability/metrics"
	"keyshare/internal/observability/middleware"
	"keyshare/internal/store"
)

func main() {
	addr := flag.String("addr", getenv("KEYSHARE_DIRECTORY_ADDR", ":8008"), "listen address")
	snapshotPath := flag.String("snapshot", getenv("KEYSHARE_DIRECTORY_SNAPSHOT", "snapshot.json"), "snapshot file to serve")
	level := flag.String("log-level", getenv("KEYSHARE_LOG_LEVEL", "info"), "debug, info, warn or error")
	flag.Parse()

	log := logging.NewLogger(logging.Config{
		ServiceName: "directory",
		Environment: getenv("KEYSHARE_ENV", "dev"),
		Level:       *level,
	})

	snap, err := store.ReadSnapshot(*snapshotPath)
	if err != nil {
		log.Error("load snapshot", "err", err)
		os.Exit(1)
	}
	keys := directory.NewServer(snap, log)

	m := metrics.NewHTTP()
	m.MustRegister(prometheus.DefaultRegisterer)

	mux := http.NewServeMux()
	mux.Handle(directory.QueryPath, keys)
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           middleware.WithMetrics(m, log, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go reloadOnHUP(ctx, *snapshotPath, keys, log)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("directory listening", "addr", *addr, "snapshot", *snapshotPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("listen", "err", err)
		os.Exit(1)
	}
}

func reloadOnHUP(ctx context.Context, path string, keys *directory.Server, log *slog.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			snap, err := store.ReadSnapshot(path)
			if err != nil {
				log.Error("reload snapshot", "err", err)
				continue
			}
			keys.Replace(snap)
			log.Info("snapshot reloaded", "snapshot", path)
		}
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
