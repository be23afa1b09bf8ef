package deck

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty selects the board size and time limit for a game.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Level holds the immutable attributes of a difficulty.
type Level struct {
	Key              string
	DisplayName      string
	PairCount        int
	TimeLimitSeconds int
	Columns          int // grid width used by renderers
}

var levels = map[Difficulty]Level{
	Easy:   {Key: "easy", DisplayName: "Easy", PairCount: 6, TimeLimitSeconds: 60, Columns: 4},
	Medium: {Key: "medium", DisplayName: "Medium", PairCount: 10, TimeLimitSeconds: 90, Columns: 5},
	Hard:   {Key: "hard", DisplayName: "Hard", PairCount: 16, TimeLimitSeconds: 120, Columns: 8},
}

// Difficulties lists every difficulty in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// Level returns the attributes of d. Unknown values panic.
func (d Difficulty) Level() Level {
	l, ok := levels[d]
	if !ok {
		panic(fmt.Sprintf("deck: invalid difficulty %d", int(d)))
	}
	return l
}

func (d Difficulty) String() string {
	if l, ok := levels[d]; ok {
		return l.Key
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty maps a name such as "easy" or "Hard" to a Difficulty.
func ParseDifficulty(name string) (Difficulty, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range Difficulties() {
		if levels[d].Key == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
}

// MaxPairCount returns the largest pair count across the given difficulties.
func MaxPairCount(ds []Difficulty) int {
	max := 0
	for _, d := range ds {
		if n := d.Level().PairCount; n > max {
			max = n
		}
	}
	return max
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if _, ok := levels[d]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
