package config

import (
	"testing"
	"time"
)

func TestServerConfigDefaults(t *testing.T) {
	var cfg ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.Addr() != "localhost:5000" {
		t.Errorf("addr = %q", cfg.Addr())
	}
	if cfg.ReadTimeoutDuration() != 15*time.Second {
		t.Errorf("read timeout = %v", cfg.ReadTimeoutDuration())
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.ShutdownTimeoutDuration())
	}
}

func TestServerConfigValidate(t *testing.T) {
	cfg := ServerConfig{Port: 700000}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected invalid port error")
	}

	cfg = ServerConfig{ReadTimeout: "soon"}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected invalid duration error")
	}
}

func TestServerConfigMerge(t *testing.T) {
	base := ServerConfig{Host: "localhost", Port: 5000, ReadTimeout: "15s"}
	base.Merge(&ServerConfig{Port: 8080})

	if base.Port != 8080 {
		t.Errorf("port = %d, want 8080", base.Port)
	}
	if base.Host != "localhost" || base.ReadTimeout != "15s" {
		t.Error("merge overwrote fields with zero values")
	}
}

func TestDatabaseConfigRequiresNameAndUser(t *testing.T) {
	var cfg DatabaseConfig
	if err := cfg.Finalize(); err == nil {
		t.Error("expected validation error for missing name")
	}

	cfg = DatabaseConfig{Name: "caresign"}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected validation error for missing user")
	}
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{Name: "caresign", User: "svc", Password: "pw"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	want := "host=localhost port=5432 dbname=caresign user=svc password=pw sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}
}

func TestStorageConfigUploadSize(t *testing.T) {
	var cfg StorageConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.BasePath != ".data/blobs" {
		t.Errorf("base path = %q", cfg.BasePath)
	}
	// go-units parses SI sizes: 20MB is 20 * 1000 * 1000.
	if got := cfg.MaxUploadSizeBytes(); got != 20_000_000 {
		t.Errorf("max upload = %d", got)
	}

	cfg = StorageConfig{MaxUploadSize: "lots"}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected invalid size error")
	}
}

func TestSigningConfigDefaults(t *testing.T) {
	var cfg SigningConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.RedirectDelayDuration() != 2*time.Second {
		t.Errorf("redirect delay = %v", cfg.RedirectDelayDuration())
	}
}
