package game

import "flipmind/internal/deck"

// Renderer consumes game events for display. Calls happen on the session's
// control thread.
type Renderer interface {
	BoardCreated(board deck.Board)
	CardFlipped(id int)
	CardUnflipped(id int)
	CardMatched(id int)
	TimeUpdated(remaining int)
	MovesUpdated(count int)
	GameWon(moves, timeRemaining, score int)
	GameLost()
	// BestScoreChanged reports the best score to display; ok is false when
	// there is none or it could not be read.
	BestScoreChanged(d deck.Difficulty, score int, ok bool)
}

// NopRenderer ignores every event.
type NopRenderer struct{}

func (NopRenderer) BoardCreated(deck.Board)                     {}
func (NopRenderer) CardFlipped(int)                             {}
func (NopRenderer) CardUnflipped(int)                           {}
func (NopRenderer) CardMatched(int)                             {}
func (NopRenderer) TimeUpdated(int)                             {}
func (NopRenderer) MovesUpdated(int)                            {}
func (NopRenderer) GameWon(int, int, int)                       {}
func (NopRenderer) GameLost()                                   {}
func (NopRenderer) BestScoreChanged(deck.Difficulty, int, bool) {}
