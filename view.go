package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flipmind/internal/deck"
)

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Width(4).Align(lipgloss.Center)
	cursorColor = lipgloss.Color("12")
)

// boardView mirrors game events into what the terminal draws.
type boardView struct {
	board      deck.Board
	difficulty deck.Difficulty
	faceUp     map[int]bool
	matched    map[int]bool
	remaining  int
	moves      int
	best       int
	hasBest    bool

	won            bool
	lost           bool
	finalMoves     int
	finalRemaining int
	finalScore     int
}

func newBoardView() *boardView {
	return &boardView{
		faceUp:  map[int]bool{},
		matched: map[int]bool{},
	}
}

func (v *boardView) BoardCreated(board deck.Board) {
	v.board = board
	v.faceUp = map[int]bool{}
	v.matched = map[int]bool{}
	v.moves = 0
	v.won = false
	v.lost = false
}

func (v *boardView) CardFlipped(id int)   { v.faceUp[id] = true }
func (v *boardView) CardUnflipped(id int) { delete(v.faceUp, id) }

func (v *boardView) CardMatched(id int) {
	delete(v.faceUp, id)
	v.matched[id] = true
}

func (v *boardView) TimeUpdated(remaining int) { v.remaining = remaining }
func (v *boardView) MovesUpdated(count int)    { v.moves = count }

func (v *boardView) GameWon(moves, timeRemaining, score int) {
	v.won = true
	v.finalMoves = moves
	v.finalRemaining = timeRemaining
	v.finalScore = score
}

func (v *boardView) GameLost() { v.lost = true }

func (v *boardView) BestScoreChanged(d deck.Difficulty, score int, ok bool) {
	v.difficulty = d
	v.best = score
	v.hasBest = ok
}

// renderGrid lays the cards out columns wide, highlighting the cursor.
func (v *boardView) renderGrid(columns, cursor int, showCursor bool) string {
	var rows []string
	for start := 0; start < len(v.board); start += columns {
		end := min(start+columns, len(v.board))
		cells := make([]string, 0, end-start)
		for _, c := range v.board[start:end] {
			style := cardStyle
			face := "?"
			switch {
			case v.matched[c.ID]:
				face = c.Symbol
				style = style.Faint(true)
			case v.faceUp[c.ID]:
				face = c.Symbol
				style = style.Bold(true)
			}
			if showCursor && c.ID == cursor {
				style = style.BorderForeground(cursorColor)
			}
			cells = append(cells, style.Render(face))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *boardView) statusLine() string {
	timeStyle := scoreStyle
	if v.remaining <= 10 {
		timeStyle = redStyle
	}
	timeStr := fmt.Sprintf("%02d:%02d", v.remaining/60, v.remaining%60)

	best := "--"
	if v.hasBest {
		best = fmt.Sprint(v.best)
	}
	return scoreStyle.Render("MOVES: "+fmt.Sprint(v.moves)+" | BEST: "+best+" | TIME: ") +
		timeStyle.Render(timeStr)
}

func (m *model) View() string {
	var b strings.Builder
	level := m.session.Difficulty.Level()

	b.WriteString(boldStyle.Render("FLIPMIND") + " " + mutedStyle.Render(level.DisplayName) + "\n\n")
	over := m.view.won || m.view.lost
	b.WriteString(m.view.renderGrid(level.Columns, m.cursor, !over))
	b.WriteString("\n\n" + m.view.statusLine() + "\n")

	switch {
	case m.view.won:
		b.WriteString("\n" + greenStyle.Render(fmt.Sprintf(
			"You completed the game in %d moves with %d seconds remaining!",
			m.view.finalMoves, m.view.finalRemaining)))
		b.WriteString("\n" + greenStyle.Render(fmt.Sprintf("Final Score: %d", m.view.finalScore)))
		if res := m.session.CurrentGame.Result; res != nil && res.NewBest {
			b.WriteString("\n" + boldStyle.Render("New best score!"))
		}
		b.WriteString("\n")
	case m.view.lost:
		b.WriteString("\n" + redStyle.Render("Time's up!") + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + redStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("\nWins: %d | Losses: %d", m.session.Wins, m.session.Losses)) + "\n")
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}
