package state

import (
	"slices"

	"flipmind/internal/scoring"
)

func (s *State) Phase() string {
	return s.FSM.Current()
}

func (s *State) IsOver() bool {
	return s.FSM.Is(Won) || s.FSM.Is(Lost)
}

func (s *State) IsMatched(id int) bool {
	_, ok := s.Matched[id]
	return ok
}

func (s *State) IsFlipped(id int) bool {
	return slices.Contains(s.Flipped, id)
}

// CanFlip reports whether a flip of id would be accepted. A full buffer,
// a card already face up or matched, an unknown id or a finished game all
// make the request a no-op.
func (s *State) CanFlip(id int) bool {
	if s.IsOver() {
		return false
	}
	if _, ok := s.Board.Card(id); !ok {
		return false
	}
	return len(s.Flipped) < 2 && !s.IsFlipped(id) && !s.IsMatched(id)
}

// AddFlip puts id in the flip buffer and reports whether it completed a
// pair. Completing a pair counts as one move. Callers check CanFlip first.
func (s *State) AddFlip(id int) bool {
	s.Flipped = append(s.Flipped, id)
	if len(s.Flipped) == 2 {
		s.Moves++
		return true
	}
	return false
}

// PendingPair returns the two flipped ids once the buffer is full.
func (s *State) PendingPair() (int, int, bool) {
	if len(s.Flipped) != 2 {
		return 0, 0, false
	}
	return s.Flipped[0], s.Flipped[1], true
}

// CommitMatch marks both cards matched and empties the flip buffer.
func (s *State) CommitMatch(first, second int) {
	for _, id := range []int{first, second} {
		if s.IsMatched(id) {
			continue
		}
		s.Matched[id] = struct{}{}
		s.Board[id].Matched = true
	}
	s.ClearFlips()
}

// ClearFlips empties the flip buffer and returns the ids that were in it.
func (s *State) ClearFlips() []int {
	cleared := slices.Clone(s.Flipped)
	s.Flipped = s.Flipped[:0]
	return cleared
}

func (s *State) AllMatched() bool {
	return len(s.Matched) == len(s.Board)
}

func (s *State) Elapsed() int {
	return s.Level.TimeLimitSeconds - s.TimeRemaining
}

// Score is only meaningful at the instant of winning.
func (s *State) Score() int {
	return scoring.Calculate(s.Moves, s.Level.TimeLimitSeconds, s.TimeRemaining)
}
