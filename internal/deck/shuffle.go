package deck

import "math/rand"

// Shuffler returns a random ordering of a sequence without touching the input.
type Shuffler interface {
	Shuffle(seq []string) []string
}

// FisherYates is a Knuth shuffle over an injectable random source.
type FisherYates struct {
	rng *rand.Rand
}

// NewShuffler creates a FisherYates shuffler drawing from src.
func NewShuffler(src rand.Source) *FisherYates {
	return &FisherYates{rng: rand.New(src)}
}

// Shuffle copies seq and permutes the copy in place, walking from the last
// index down and swapping each element with a uniformly chosen j in [0, i].
func (f *FisherYates) Shuffle(seq []string) []string {
	shuffled := make([]string, len(seq))
	copy(shuffled, seq)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := f.rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
