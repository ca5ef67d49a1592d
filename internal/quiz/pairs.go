package quiz

import "github.com/lashpop/stylematch/internal/style"

// PairSelector picks the two categories compared in the next round.
type PairSelector struct {
	Categories []style.Category
	Extremes   [2]style.Category
	// Rand drives the exhausted-pairs fallback. nil uses an unseeded
	// generator.
	Rand Rand
}

// Select returns the next pair to compare. first is true only for the
// session's opening round.
//
// Selection order:
//  1. opening round: the extremes pair
//  2. the two current leaders, if not yet compared
//  3. the first uncompared pair scanning in rank order
//  4. a uniformly random pair, repeats allowed
func (p PairSelector) Select(scores Scores, used map[PairKey]bool, first bool) (style.Category, style.Category, bool) {
	if len(p.Categories) < 2 {
		return "", "", false
	}

	if first {
		a, b := p.Extremes[0], p.Extremes[1]
		if !used[NewPairKey(a, b)] {
			return a, b, true
		}
	}

	ranked := Rank(scores, p.Categories)
	if !used[NewPairKey(ranked[0], ranked[1])] {
		return ranked[0], ranked[1], true
	}

	for i := 0; i < len(ranked); i++ {
		for j := i + 1; j < len(ranked); j++ {
			if !used[NewPairKey(ranked[i], ranked[j])] {
				return ranked[i], ranked[j], true
			}
		}
	}

	rng := p.Rand
	if rng == nil {
		rng = newUnseededRand()
	}
	n := len(p.Categories)
	i := rng.IntN(n)
	j := rng.IntN(n - 1)
	if j >= i {
		j++
	}
	return p.Categories[i], p.Categories[j], true
}
