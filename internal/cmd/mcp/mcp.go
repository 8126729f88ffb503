// Package mcp parses MCP command flags and launches the stdio adapter.
package mcp

import (
	"context"
	"flag"
	"fmt"

	mcpservice "github.com/louisbranch/tempo/internal/mcp/service"
	entrypoint "github.com/louisbranch/tempo/internal/platform/cmd"
	"github.com/louisbranch/tempo/internal/timer/service"
	timersqlite "github.com/louisbranch/tempo/internal/timer/storage/sqlite"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath  string `env:"TEMPO_DB_PATH"      envDefault:"data/tempo.db"`
	OwnerID string `env:"TEMPO_MCP_OWNER_ID"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database file path")
	fs.StringVar(&cfg.OwnerID, "owner-id", cfg.OwnerID, "Owner identity MCP operations run under")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter on stdio.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		store, err := timersqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open timer store: %w", err)
		}
		defer store.Close()

		svc, err := service.New(service.Config{Store: store})
		if err != nil {
			return fmt.Errorf("build timer service: %w", err)
		}

		return mcpservice.Run(ctx, mcpservice.Config{
			Service: svc,
			OwnerID: cfg.OwnerID,
		})
	})
}
