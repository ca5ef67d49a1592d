package style

import "fmt"

// Category is one of the fixed lash styles the quiz can recommend.
type Category string

const (
	Classic  Category = "classic"
	Hybrid   Category = "hybrid"
	WetAngel Category = "wetAngel"
	Volume   Category = "volume"
)

// All returns every category in enumeration order. The order is used to
// break score ties, so it must stay stable.
func All() []Category {
	return []Category{Classic, Hybrid, WetAngel, Volume}
}

// Spectrum returns the categories ordered from most natural to most dramatic.
func Spectrum() []Category {
	return []Category{Classic, WetAngel, Hybrid, Volume}
}

// Extremes returns the two ends of the spectrum, compared in round 1.
func Extremes() (Category, Category) {
	s := Spectrum()
	return s[0], s[len(s)-1]
}

// Parse converts a string into a known Category.
func Parse(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown style category %q", s)
	}
	return c, nil
}

// Valid reports whether c is part of the enumeration.
func (c Category) Valid() bool {
	switch c {
	case Classic, Hybrid, WetAngel, Volume:
		return true
	}
	return false
}

// SpectrumIndex returns the position of c on the spectrum, or -1.
func (c Category) SpectrumIndex() int {
	for i, s := range Spectrum() {
		if s == c {
			return i
		}
	}
	return -1
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	if d, ok := details[c]; ok {
		return d.Name
	}
	return string(c)
}

func (c Category) String() string {
	return string(c)
}
