package starfield

import (
	"fmt"
	"math"

	"github.com/valyala/fastrand"
	"gonum.org/v1/gonum/spatial/r3"
)

// FieldOptions controls procedural background star generation.
type FieldOptions struct {
	Count   int     `yaml:"count" validate:"gte=0"`
	Seed    uint32  `yaml:"seed"`
	MinSize float64 `yaml:"min_size" validate:"gt=0"`
	MaxSize float64 `yaml:"max_size" validate:"gtefield=MinSize"`
}

// FieldNamePrefix starts the name of every generated star.
const FieldNamePrefix = "field-"

// DefaultFieldOptions fills the sky with faint filler stars.
func DefaultFieldOptions() FieldOptions {
	return FieldOptions{Count: 2000, Seed: 1, MinSize: 0.4, MaxSize: 2.0}
}

// GenerateField returns Count stars spread uniformly over the sphere. Output is
// deterministic for a given seed. Sizes skew toward MinSize and color indices
// cluster around solar-type values.
func GenerateField(opts FieldOptions) ([]Star, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("generate field: negative count %d", opts.Count)
	}
	if opts.MinSize <= 0 || opts.MaxSize < opts.MinSize {
		return nil, fmt.Errorf("generate field: bad size range [%v, %v]", opts.MinSize, opts.MaxSize)
	}

	var rng fastrand.RNG
	rng.Seed(opts.Seed)
	unit := func() float64 { return float64(rng.Uint32()) / (1 << 32) }

	stars := make([]Star, opts.Count)
	for i := range stars {
		y := 2*unit() - 1
		phi := 2 * math.Pi * unit()
		r := math.Sqrt(1 - y*y)

		u := unit()
		size := opts.MinSize + (opts.MaxSize-opts.MinSize)*u*u*u

		// Sum of three uniforms, roughly bell-shaped over [-0.4, 2.0].
		ci := -0.4 + 0.8*(unit()+unit()+unit())

		stars[i] = Star{
			Name:         fmt.Sprintf("%s%d", FieldNamePrefix, i),
			Dir:          r3.Vec{X: r * math.Cos(phi), Y: y, Z: r * math.Sin(phi)},
			Size:         size,
			ColorIndex:   ci,
			TwinklePhase: 2 * math.Pi * unit(),
		}
	}
	return stars, nil
}
