package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.DBPath != "data/tempo.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "data/tempo.db")
	}
	if cfg.OwnerID != "" {
		t.Fatalf("OwnerID = %q, want empty", cfg.OwnerID)
	}
}

func TestParseConfigOverrideOwnerID(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-owner-id", "owner-1"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.OwnerID != "owner-1" {
		t.Fatalf("OwnerID = %q, want %q", cfg.OwnerID, "owner-1")
	}
}

func TestParseConfigEnvOwnerID(t *testing.T) {
	t.Setenv("TEMPO_MCP_OWNER_ID", "owner-env")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.OwnerID != "owner-env" {
		t.Fatalf("OwnerID = %q, want %q", cfg.OwnerID, "owner-env")
	}
}
