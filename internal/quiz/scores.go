package quiz

import (
	"sort"

	"github.com/lashpop/stylematch/internal/style"
)

// Scores holds one non-negative score per category.
type Scores map[style.Category]int

// NewScores returns zeroed scores for every category.
func NewScores(categories []style.Category) Scores {
	s := make(Scores, len(categories))
	for _, c := range categories {
		s[c] = 0
	}
	return s
}

// Clone returns an independent copy.
func (s Scores) Clone() Scores {
	out := make(Scores, len(s))
	for c, v := range s {
		out[c] = v
	}
	return out
}

// Rank orders categories by descending score. Equal scores keep the order
// of the categories slice.
func Rank(s Scores, categories []style.Category) []style.Category {
	ranked := make([]style.Category, len(categories))
	copy(ranked, categories)
	sort.SliceStable(ranked, func(i, j int) bool {
		return s[ranked[i]] > s[ranked[j]]
	})
	return ranked
}

// PairKey identifies an unordered pair of distinct categories.
type PairKey struct {
	A style.Category
	B style.Category
}

// NewPairKey builds the canonical key for x and y in either order.
func NewPairKey(x, y style.Category) PairKey {
	if y < x {
		x, y = y, x
	}
	return PairKey{A: x, B: y}
}

func (k PairKey) String() string {
	return string(k.A) + "-" + string(k.B)
}

// PairCount returns the number of unordered pairs over n categories.
func PairCount(n int) int {
	return n * (n - 1) / 2
}
