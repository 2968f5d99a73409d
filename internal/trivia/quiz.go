package trivia

import "math/rand/v2"

// Selector picks quiz questions uniformly at random.
type Selector struct {
	intn func(n int) int
}

// NewSelector returns a Selector drawing from intn, which must return a value in [0, n).
// A nil intn uses math/rand/v2.
func NewSelector(intn func(n int) int) *Selector {
	if intn == nil {
		intn = rand.IntN
	}
	return &Selector{intn: intn}
}

// Candidates returns the questions of pool whose id is not in previous, preserving order.
func Candidates(pool []Question, previous []int64) []Question {
	if len(previous) == 0 {
		return pool
	}
	seen := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}
	out := make([]Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; !ok {
			out = append(out, q)
		}
	}
	return out
}

// Pick returns one element of pool, or false when pool is empty.
func (s *Selector) Pick(pool []Question) (Question, bool) {
	if len(pool) == 0 {
		return Question{}, false
	}
	return pool[s.intn(len(pool))], true
}

// Next picks an unseen question from pool.
func (s *Selector) Next(pool []Question, previous []int64) (Question, bool) {
	return s.Pick(Candidates(pool, previous))
}
