package config

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"flipmind/internal/deck"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Difficulty != deck.Medium {
		t.Errorf("Expected medium, got %s", cfg.Difficulty)
	}
	if cfg.ScoreBackend != "json" {
		t.Errorf("Expected json backend, got %q", cfg.ScoreBackend)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected info log level, got %q", cfg.LogLevel)
	}
	if cfg.Seed != 0 || len(cfg.Symbols) != 0 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestParse_Env(t *testing.T) {
	t.Setenv("FLIPMIND_DIFFICULTY", "hard")
	t.Setenv("FLIPMIND_SCORES", "sqlite")
	t.Setenv("FLIPMIND_SYMBOLS", "a.txt,b.txt")
	t.Setenv("FLIPMIND_SEED", "99")

	cfg, err := Parse(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Difficulty != deck.Hard {
		t.Errorf("Expected hard, got %s", cfg.Difficulty)
	}
	if cfg.ScoreBackend != "sqlite" {
		t.Errorf("Expected sqlite, got %q", cfg.ScoreBackend)
	}
	if !slices.Equal(cfg.Symbols, []string{"a.txt", "b.txt"}) {
		t.Errorf("Unexpected symbols %q", cfg.Symbols)
	}
	if cfg.Seed != 99 {
		t.Errorf("Expected seed 99, got %d", cfg.Seed)
	}
}

func TestParse_InvalidEnvDifficulty(t *testing.T) {
	t.Setenv("FLIPMIND_DIFFICULTY", "impossible")
	if _, err := Parse(nil, &bytes.Buffer{}); err == nil {
		t.Error("Expected error for invalid difficulty")
	}
}

func TestParse_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("FLIPMIND_DIFFICULTY", "hard")
	t.Setenv("FLIPMIND_SYMBOLS", "env.txt")

	cfg, err := Parse([]string{"-d", "easy", "-symbols", "x.txt", "-symbols", "y.txt", "-scores", "memory"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Difficulty != deck.Easy {
		t.Errorf("Expected easy, got %s", cfg.Difficulty)
	}
	if !slices.Equal(cfg.Symbols, []string{"x.txt", "y.txt"}) {
		t.Errorf("Flags should replace env symbols, got %q", cfg.Symbols)
	}
	if cfg.ScoreBackend != "memory" {
		t.Errorf("Expected memory, got %q", cfg.ScoreBackend)
	}
}

func TestParse_LongDifficulty(t *testing.T) {
	cfg, err := Parse([]string{"--difficulty=Hard"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Difficulty != deck.Hard {
		t.Errorf("Expected hard, got %s", cfg.Difficulty)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad difficulty", []string{"-d", "nightmare"}},
		{"unknown flag", []string{"-x"}},
		{"positional args", []string{"extra"}},
		{"empty symbols", []string{"-symbols", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.args, &bytes.Buffer{}); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}

func TestParse_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := Parse([]string{"-h"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "--difficulty") {
		t.Errorf("Usage not printed: %q", out.String())
	}
}

func TestSetupLogger(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "logs", "test.log")
	closer, err := SetupLogger("debug", path)
	if err != nil {
		t.Fatalf("SetupLogger failed: %v", err)
	}
	log.Debug().Str("k", "v").Msg("hello")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"message":"hello"`) {
		t.Errorf("Log line missing: %q", data)
	}
}

func TestSetupLogger_BadLevel(t *testing.T) {
	if _, err := SetupLogger("loud", filepath.Join(t.TempDir(), "x.log")); err == nil {
		t.Error("Expected error for bad level")
	}
}
