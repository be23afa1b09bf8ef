package deck

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrDuplicateSymbol = errors.New("duplicate symbol in catalog")

// Catalog is the ordered list of symbols boards are drawn from.
type Catalog []string

// DefaultCatalog returns the built-in symbol set.
func DefaultCatalog() Catalog {
	return Catalog{
		"🎮", "🎯", "🎨", "🎭", "🎪", "🎸", "🎺", "🎻", "🎲", "🎰",
		"🏀", "⚽", "🎾", "🏐", "🏈", "⚾", "🎳", "🏓", "🏸", "🥊",
	}
}

// Validate checks that the catalog can supply every given difficulty.
func (c Catalog) Validate(ds []Difficulty) error {
	seen := make(map[string]struct{}, len(c))
	for _, s := range c {
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateSymbol, s)
		}
		seen[s] = struct{}{}
	}
	if need := MaxPairCount(ds); need > len(c) {
		return fmt.Errorf("%w: need %d symbols, have %d", ErrCatalogTooSmall, need, len(c))
	}
	return nil
}

// LoadCatalog loads symbols from a list of paths (files or directories).
// Each non-empty line is a symbol; lines starting with '#' are comments.
func LoadCatalog(paths []string) (Catalog, error) {
	var catalog Catalog
	seen := make(map[string]string)

	add := func(symbols []string, source string) error {
		for _, s := range symbols {
			if prev, dup := seen[s]; dup {
				return fmt.Errorf("%w: %q in %s (first seen in %s)", ErrDuplicateSymbol, s, source, prev)
			}
			seen[s] = source
			catalog = append(catalog, s)
		}
		return nil
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access path %s: %w", path, err)
		}

		if !info.IsDir() {
			symbols, err := loadFile(path)
			if err != nil {
				return nil, err
			}
			if err := add(symbols, path); err != nil {
				return nil, err
			}
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read dir %s: %w", path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			file := filepath.Join(path, entry.Name())
			symbols, err := loadFile(file)
			if err != nil {
				return nil, err
			}
			if err := add(symbols, file); err != nil {
				return nil, err
			}
		}
	}

	return catalog, nil
}

func loadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	var symbols []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		symbols = append(symbols, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan file %s: %w", path, err)
	}
	return symbols, nil
}
