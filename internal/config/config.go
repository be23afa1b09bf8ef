package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"flipmind/internal/deck"
)

// Config holds startup settings. Environment variables (optionally from a
// .env file) set the defaults and command-line flags override them.
type Config struct {
	Difficulty   deck.Difficulty `env:"FLIPMIND_DIFFICULTY" envDefault:"medium"`
	ScoreBackend string          `env:"FLIPMIND_SCORES" envDefault:"json"`
	ScorePath    string          `env:"FLIPMIND_SCORE_PATH"`
	Symbols      []string        `env:"FLIPMIND_SYMBOLS" envSeparator:","`
	Seed         int64           `env:"FLIPMIND_SEED"`
	LogLevel     string          `env:"FLIPMIND_LOG_LEVEL" envDefault:"info"`
	LogFile      string          `env:"FLIPMIND_LOG_FILE"`
}

// LoadDotenv loads a .env file from the working directory if there is one.
func LoadDotenv() {
	_ = godotenv.Load()
}

// Parse reads the environment, then applies command-line args on top.
// A -h request returns flag.ErrHelp after printing usage to output.
func Parse(args []string, output io.Writer) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("flipmind", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.TextVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "Difficulty: easy, medium or hard")
	fs.TextVar(&cfg.Difficulty, "d", cfg.Difficulty, "Difficulty (shorthand)")
	fs.StringVar(&cfg.ScoreBackend, "scores", cfg.ScoreBackend, "Best score store: json, sqlite or memory")
	fs.StringVar(&cfg.ScorePath, "score-path", cfg.ScorePath, "Best score file (default under ~/.config/flipmind)")
	fs.Var(&symbolPaths{paths: &cfg.Symbols}, "symbols", "Symbol catalog file or directory (repeatable)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Shuffle seed, 0 for random")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file (default under ~/.config/flipmind)")

	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: flipmind [options]\n")
		fmt.Fprintf(output, "\nOptions:\n")
		fmt.Fprintf(output, "   -d, --difficulty=LEVEL    easy, medium or hard (default medium)\n")
		fmt.Fprintf(output, "       --scores=BACKEND      json, sqlite or memory (default json)\n")
		fmt.Fprintf(output, "       --score-path=PATH     Best score file\n")
		fmt.Fprintf(output, "       --symbols=PATH        Symbol catalog file or directory (repeatable)\n")
		fmt.Fprintf(output, "       --seed=N              Shuffle seed, 0 for random\n")
		fmt.Fprintf(output, "       --log-level=LEVEL     trace, debug, info, warn, error\n")
		fmt.Fprintf(output, "       --log-file=PATH       Log file\n")
		fmt.Fprintf(output, "   -h, --help                Show this help message\n")
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return cfg, nil
}

// symbolPaths collects repeated -symbols flags. The first flag on the
// command line replaces paths that came from the environment.
type symbolPaths struct {
	paths *[]string
	set   bool
}

func (s *symbolPaths) String() string {
	if s == nil || s.paths == nil {
		return ""
	}
	return strings.Join(*s.paths, ",")
}

func (s *symbolPaths) Set(v string) error {
	if v == "" {
		return fmt.Errorf("symbol path must not be empty")
	}
	if !s.set {
		*s.paths = nil
		s.set = true
	}
	*s.paths = append(*s.paths, v)
	return nil
}
