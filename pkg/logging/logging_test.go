package logging

import (
	"log/slog"
	"testing"
)

func TestLevelToSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level("mystery"), slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := tt.level.ToSlogLevel(); got != tt.want {
			t.Errorf("ToSlogLevel(%s) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	for _, l := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		if err := l.Validate(); err != nil {
			t.Errorf("level %s: %v", l, err)
		}
	}
	if err := Level("loud").Validate(); err == nil {
		t.Error("unknown level accepted")
	}

	for _, f := range []Format{FormatText, FormatJSON} {
		if err := f.Validate(); err != nil {
			t.Errorf("format %s: %v", f, err)
		}
	}
	if err := Format("xml").Validate(); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if cfg.Level != LevelInfo || cfg.Format != FormatJSON {
		t.Errorf("defaults = %s/%s, want info/json", cfg.Level, cfg.Format)
	}
}
