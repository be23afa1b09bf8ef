package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"flipmind/internal/scoring"
)

// SetupLogger points the global zerolog logger at a file, since stdout
// belongs to the terminal UI. An empty path logs to flipmind.log in the
// default config directory. The returned closer releases the file.
func SetupLogger(level, path string) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if path == "" {
		dir, err := scoring.DefaultDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "flipmind.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// DisableLogging discards all log output.
func DisableLogging() {
	log.Logger = zerolog.Nop()
}
