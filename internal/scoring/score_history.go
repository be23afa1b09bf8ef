package scoring

import (
	"encoding/json"

	"flipmind/internal/deck"
)

// BestScoreRecord holds the best (lowest) score for each difficulty.
// A missing entry means no game on that difficulty has been won yet.
type BestScoreRecord map[deck.Difficulty]int

// NewBestScoreRecord returns an empty record.
func NewBestScoreRecord() BestScoreRecord {
	return BestScoreRecord{}
}

// Get returns the stored best score for d.
func (r BestScoreRecord) Get(d deck.Difficulty) (int, bool) {
	score, ok := r[d]
	return score, ok
}

// Improves reports whether score beats the stored best for d.
// An absent record counts as +∞.
func (r BestScoreRecord) Improves(d deck.Difficulty, score int) bool {
	best, ok := r[d]
	return !ok || score < best
}

// MarshalJSON writes a flat object keyed by difficulty name, with null for
// difficulties that have no score yet: {"easy":null,"medium":30,"hard":null}.
func (r BestScoreRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]*int, len(deck.Difficulties()))
	for _, d := range deck.Difficulties() {
		if score, ok := r[d]; ok {
			out[d.String()] = &score
		} else {
			out[d.String()] = nil
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the flat object produced by MarshalJSON. Unknown
// difficulty keys are ignored.
func (r *BestScoreRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]*int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rec := NewBestScoreRecord()
	for key, score := range raw {
		d, err := deck.ParseDifficulty(key)
		if err != nil || score == nil {
			continue
		}
		rec[d] = *score
	}
	*r = rec
	return nil
}
