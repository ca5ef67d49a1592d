package quiz

import (
	"fmt"

	"github.com/lashpop/stylematch/internal/style"
)

// Side is a slot of a comparison round.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// ParseSide converts "left"/"right" into a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

// Slot is one half of a round.
type Slot struct {
	Category style.Category
	Photo    Photo
}

// Round is one A-vs-B comparison presented to the user.
type Round struct {
	// Number is 1-based.
	Number int
	Key    PairKey
	Left   Slot
	Right  Slot
}

// Slot returns the slot on side.
func (r Round) Slot(side Side) Slot {
	if side == Right {
		return r.Right
	}
	return r.Left
}

// SideOf returns the side holding category c.
func (r Round) SideOf(c style.Category) (Side, bool) {
	switch c {
	case r.Left.Category:
		return Left, true
	case r.Right.Category:
		return Right, true
	}
	return 0, false
}

// RoundOutcome is a resolved round.
type RoundOutcome struct {
	Round  Round
	Chosen Side
}

// Winner returns the category picked in the round.
func (o RoundOutcome) Winner() style.Category {
	return o.Round.Slot(o.Chosen).Category
}
