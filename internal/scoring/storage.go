package scoring

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"flipmind/internal/deck"
)

var ErrUnknownBackend = errors.New("unknown score backend")

// BestScoreStore defines the interface for loading and saving best scores.
// This allows for swapping the persistence layer and mocking it in tests.
type BestScoreStore interface {
	// Get returns the best score for d, with ok=false when none is stored.
	Get(d deck.Difficulty) (score int, ok bool, err error)
	// Set stores score as the best for d.
	Set(d deck.Difficulty, score int) error
}

// Open creates the store named by backend ("json", "sqlite" or "memory").
// An empty path selects the backend's default location.
func Open(backend, path string) (BestScoreStore, error) {
	switch backend {
	case "", "json":
		if path == "" {
			return NewJSONFileStorage()
		}
		return NewJSONFileStorageAt(path), nil
	case "sqlite":
		if path == "" {
			dir, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "scores.db")
		}
		return OpenSQLiteStorage(path)
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// DefaultDir returns the per-user directory scores and logs live in.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "flipmind"), nil
}

// JSONFileStorage is an implementation of BestScoreStore that uses a JSON file.
type JSONFileStorage struct {
	mu   sync.Mutex
	path string
}

// NewJSONFileStorage creates a new instance of JSONFileStorage,
// automatically determining the path for the scores file.
func NewJSONFileStorage() (*JSONFileStorage, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewJSONFileStorageAt(filepath.Join(dir, "scores.json")), nil
}

// NewJSONFileStorageAt creates a JSONFileStorage backed by the given file.
func NewJSONFileStorageAt(path string) *JSONFileStorage {
	return &JSONFileStorage{path: path}
}

// Get reads the record file and returns the best score for d.
func (jfs *JSONFileStorage) Get(d deck.Difficulty) (int, bool, error) {
	jfs.mu.Lock()
	defer jfs.mu.Unlock()

	rec, err := jfs.load()
	if err != nil {
		return 0, false, err
	}
	score, ok := rec.Get(d)
	return score, ok, nil
}

// Set rewrites the record file with score stored for d.
func (jfs *JSONFileStorage) Set(d deck.Difficulty, score int) error {
	jfs.mu.Lock()
	defer jfs.mu.Unlock()

	rec, err := jfs.load()
	if err != nil {
		return err
	}
	rec[d] = score
	return jfs.save(rec)
}

func (jfs *JSONFileStorage) load() (BestScoreRecord, error) {
	file, err := os.Open(jfs.path)
	// If the file doesn't exist, it's not an error; return an empty record.
	if os.IsNotExist(err) {
		return NewBestScoreRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error opening scores file for reading: %w", err)
	}
	defer file.Close()

	rec := NewBestScoreRecord()
	if err := json.NewDecoder(file).Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return NewBestScoreRecord(), nil
		}
		return nil, fmt.Errorf("error decoding scores file: %w", err)
	}
	return rec, nil
}

func (jfs *JSONFileStorage) save(rec BestScoreRecord) error {
	dir := filepath.Dir(jfs.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating scores directory: %w", err)
	}

	file, err := os.OpenFile(jfs.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening scores file for writing: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := json.NewEncoder(writer).Encode(rec); err != nil {
		return fmt.Errorf("error encoding scores: %w", err)
	}
	return writer.Flush()
}
