package quiz

import "github.com/lashpop/stylematch/internal/style"

// Photo is a catalog entry that can be shown in a comparison round.
type Photo struct {
	ID        string
	Category  style.Category
	Enabled   bool
	AssetID   string
	FilePath  string
	CropURL   string
	SortOrder int
}

// DisplayPath returns the crop URL when set, the file path otherwise.
func (p Photo) DisplayPath() string {
	if p.CropURL != "" {
		return p.CropURL
	}
	return p.FilePath
}

// PhotoPool supplies the candidate photos for a category.
type PhotoPool interface {
	Photos(c style.Category) []Photo
}

// StaticPool is an in-memory PhotoPool.
type StaticPool map[style.Category][]Photo

// Photos implements PhotoPool.
func (p StaticPool) Photos(c style.Category) []Photo {
	return p[c]
}

// EnabledCount returns the number of enabled photos in photos.
func EnabledCount(photos []Photo) int {
	n := 0
	for _, ph := range photos {
		if ph.Enabled {
			n++
		}
	}
	return n
}

// CheckPool verifies that every category has at least MinEnabledPhotos
// enabled photos. The first failing category in enumeration order is
// reported.
func CheckPool(pool PhotoPool, categories []style.Category) error {
	for _, c := range categories {
		n := EnabledCount(pool.Photos(c))
		if n < MinEnabledPhotos {
			return &ConfigurationError{Category: c, Enabled: n, Required: MinEnabledPhotos}
		}
	}
	return nil
}

// SamplePhoto picks an enabled photo not in used, uniformly at random.
// When every enabled photo has been shown it picks among all enabled
// photos. It returns false only when no photo is enabled.
func SamplePhoto(photos []Photo, used map[string]bool, rng Rand) (Photo, bool) {
	var fresh, enabled []Photo
	for _, ph := range photos {
		if !ph.Enabled {
			continue
		}
		enabled = append(enabled, ph)
		if !used[ph.ID] {
			fresh = append(fresh, ph)
		}
	}

	candidates := fresh
	if len(candidates) == 0 {
		candidates = enabled
	}
	if len(candidates) == 0 {
		return Photo{}, false
	}
	return candidates[rng.IntN(len(candidates))], true
}
