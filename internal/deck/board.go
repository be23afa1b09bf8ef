package deck

import (
	"errors"
	"fmt"
)

var (
	ErrCatalogTooSmall  = errors.New("symbol catalog too small")
	ErrInvalidPairCount = errors.New("pair count must be positive")
)

// Card is a single face-down symbol on the board. ID is its board position.
type Card struct {
	ID      int
	Symbol  string
	Matched bool
}

// Board is the positionally fixed set of cards for one game.
type Board []Card

// Card returns the card with the given id.
func (b Board) Card(id int) (Card, bool) {
	if id < 0 || id >= len(b) {
		return Card{}, false
	}
	return b[id], true
}

// Generate builds a shuffled board holding two cards for each of the first
// pairCount symbols in the catalog.
func Generate(catalog Catalog, pairCount int, shuffler Shuffler) (Board, error) {
	if pairCount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPairCount, pairCount)
	}
	if pairCount > len(catalog) {
		return nil, fmt.Errorf("%w: need %d symbols, have %d", ErrCatalogTooSmall, pairCount, len(catalog))
	}

	symbols := catalog[:pairCount]
	pairs := make([]string, 0, pairCount*2)
	pairs = append(pairs, symbols...)
	pairs = append(pairs, symbols...)

	shuffled := shuffler.Shuffle(pairs)

	board := make(Board, len(shuffled))
	for i, symbol := range shuffled {
		board[i] = Card{ID: i, Symbol: symbol}
	}
	return board, nil
}
