// Package server parses server command flags and launches the HTTP API.
package server

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/louisbranch/tempo/internal/auth/grant"
	entrypoint "github.com/louisbranch/tempo/internal/platform/cmd"
	"github.com/louisbranch/tempo/internal/timer/service"
	timersqlite "github.com/louisbranch/tempo/internal/timer/storage/sqlite"
	"github.com/louisbranch/tempo/internal/web"
)

// Config holds server command configuration.
type Config struct {
	HTTPAddr string `env:"TEMPO_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath   string `env:"TEMPO_DB_PATH"   envDefault:"data/tempo.db"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database file path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the timer HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceServer, func(ctx context.Context) error {
		store, err := timersqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open timer store: %w", err)
		}
		defer store.Close()

		svc, err := service.New(service.Config{Store: store})
		if err != nil {
			return fmt.Errorf("build timer service: %w", err)
		}

		grants, err := grant.LoadConfigFromEnv(time.Now)
		if err != nil {
			return fmt.Errorf("load access grant config: %w", err)
		}

		srv, err := web.NewServer(web.Config{
			HTTPAddr: cfg.HTTPAddr,
			Service:  svc,
			Grants:   grants,
		})
		if err != nil {
			return fmt.Errorf("build web server: %w", err)
		}
		return srv.ListenAndServe(ctx)
	})
}
