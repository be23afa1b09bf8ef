package scoring

import (
	"fmt"

	"flipmind/internal/deck"
)

// Calculate returns the score for a won game: moves plus elapsed seconds.
// Lower is better.
func Calculate(moves, timeLimitSeconds, timeRemaining int) int {
	return moves + (timeLimitSeconds - timeRemaining)
}

// Result describes the outcome of recording a finished game's score.
type Result struct {
	Difficulty   deck.Difficulty
	Score        int
	PreviousBest int
	HadPrevious  bool
	NewBest      bool
}

// Best returns the best score after recording.
func (r Result) Best() int {
	if r.NewBest || !r.HadPrevious {
		return r.Score
	}
	return r.PreviousBest
}

// RecordBest stores score as the best for d when there is no previous best
// or score is strictly lower than it.
func RecordBest(store BestScoreStore, d deck.Difficulty, score int) (Result, error) {
	res := Result{Difficulty: d, Score: score}

	best, ok, err := store.Get(d)
	if err != nil {
		return res, fmt.Errorf("could not load best score: %w", err)
	}
	res.PreviousBest, res.HadPrevious = best, ok

	if ok && score >= best {
		return res, nil
	}

	if err := store.Set(d, score); err != nil {
		return res, fmt.Errorf("could not save best score: %w", err)
	}
	res.NewBest = true
	return res, nil
}
