package scoring

import (
	"sync"

	"flipmind/internal/deck"
)

// MemoryStorage keeps best scores in a map. State is lost on exit.
type MemoryStorage struct {
	mu  sync.RWMutex
	rec BestScoreRecord
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{rec: NewBestScoreRecord()}
}

func (m *MemoryStorage) Get(d deck.Difficulty) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	score, ok := m.rec.Get(d)
	return score, ok, nil
}

func (m *MemoryStorage) Set(d deck.Difficulty, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec[d] = score
	return nil
}
