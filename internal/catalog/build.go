package catalog

import (
	"math"

	"github.com/valyala/fastrand"

	"github.com/litescript/ls-skydome/internal/astro"
	"github.com/litescript/ls-skydome/internal/starfield"
)

// Size bounds for named stars; the brightest star in the sky maps near MaxStarSize.
const (
	MinStarSize = 0.8
	MaxStarSize = 4.0
)

// SizeForMagnitude maps apparent magnitude to a base point size. Brighter
// (lower) magnitudes give larger sizes.
func SizeForMagnitude(mag float64) float64 {
	return math.Max(MinStarSize, math.Min(MaxStarSize, 3.2-0.55*mag))
}

// BuildOptions controls conversion of a catalog into a star field.
type BuildOptions struct {
	Seed  uint32                 // twinkle phase seed for named stars
	Field starfield.FieldOptions // procedural filler; Count 0 disables
}

// Build converts catalog stars into starfield stars followed by the procedural
// field. Named stars keep catalog order.
func Build(cat astro.StarCatalog, opts BuildOptions) ([]starfield.Star, error) {
	var field []starfield.Star
	if opts.Field.Count > 0 {
		var err error
		if field, err = starfield.GenerateField(opts.Field); err != nil {
			return nil, err
		}
	}

	var rng fastrand.RNG
	rng.Seed(opts.Seed)

	stars := make([]starfield.Star, 0, len(cat.Stars)+len(field))
	for _, s := range cat.Stars {
		stars = append(stars, starfield.Star{
			Name:         s.Name,
			Dir:          astro.Direction(s.RAdeg, s.DecDeg),
			Size:         SizeForMagnitude(s.Mag),
			ColorIndex:   s.BV,
			TwinklePhase: 2 * math.Pi * float64(rng.Uint32()) / (1 << 32),
		})
	}
	return append(stars, field...), nil
}
