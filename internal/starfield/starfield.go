// Package starfield projects catalog stars into screen-space point sprites.
//
// For every star and frame the projector rotates the catalog position by the
// diurnal angle and the observer latitude, derives camera-space depth and a
// perspective point size, applies twinkle, and decides whether the star is
// culled below the horizon or on the far side of the sky sphere. The same code
// backs the terminal view, the software renderer and shader uniform setup.
package starfield

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/litescript/ls-skydome/internal/skyerr"
	"github.com/litescript/ls-skydome/internal/spectral"
)

// Star is a catalog entry. Dir is a unit vector in the catalog frame: Y is the
// polar axis with the north celestial pole at -Y, so the latitude tilt in Local
// lifts the pole to an altitude equal to the observer latitude. Stars are
// read-only to the projector.
type Star struct {
	Name         string
	Dir          r3.Vec
	Size         float64 // base point size
	ColorIndex   float64 // B-V
	TwinklePhase float64 // radians
}

// ObserverFrame is the per-frame observer orientation. Angles are not assumed
// to be normalized.
type ObserverFrame struct {
	LatitudeRad float64
	DiurnalRad  float64
}

// Validate rejects non-finite angles.
func (f ObserverFrame) Validate() error {
	return skyerr.RequireAllFinite([]string{"latitude", "diurnal angle"}, f.LatitudeRad, f.DiurnalRad)
}

// StarRenderAttributes is the per-frame output for a visible star.
type StarRenderAttributes struct {
	Name         string
	Screen       [2]float64 // normalized device coordinates, -1..1
	Depth        float64    // camera-space distance along the view axis
	PointSize    float64
	Color        colorful.Color
	Class        spectral.Class
	TwinklePhase float64
	Local        r3.Vec // normalized position in the observer's horizon frame
}

// Config holds the tuning constants of the projection model.
type Config struct {
	SphereRadius float64 `yaml:"sphere_radius" validate:"gt=0"`

	TwinkleFrequency float64 `yaml:"twinkle_frequency"`
	TwinkleAmplitude float64 `yaml:"twinkle_amplitude" validate:"gte=0"`
	AttenuationScale float64 `yaml:"attenuation_scale" validate:"gt=0"`

	// Stars whose normalized local height is below HorizonMargin are culled.
	HorizonMargin float64 `yaml:"horizon_margin"`

	// Back-face threshold: BackFaceNumerator/|origin| + clamp(aspect, AspectMin, AspectMax)*AspectWeight.
	// Empirically tuned against the reference scene; kept as an opaque formula.
	BackFaceNumerator float64 `yaml:"back_face_numerator"`
	AspectMin         float64 `yaml:"aspect_min"`
	AspectMax         float64 `yaml:"aspect_max"`
	AspectWeight      float64 `yaml:"aspect_weight"`
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		SphereRadius:      10,
		TwinkleFrequency:  10,
		TwinkleAmplitude:  0.15,
		AttenuationScale:  0.01,
		HorizonMargin:     0.2,
		BackFaceNumerator: 11,
		AspectMin:         10,
		AspectMax:         20,
		AspectWeight:      0.02,
	}
}

// Validate reports malformed tuning as a DomainError.
func (c Config) Validate() error {
	names := []string{
		"sphere radius", "twinkle frequency", "twinkle amplitude", "attenuation scale",
		"horizon margin", "back-face numerator", "aspect min", "aspect max", "aspect weight",
	}
	if err := skyerr.RequireAllFinite(names,
		c.SphereRadius, c.TwinkleFrequency, c.TwinkleAmplitude, c.AttenuationScale,
		c.HorizonMargin, c.BackFaceNumerator, c.AspectMin, c.AspectMax, c.AspectWeight,
	); err != nil {
		return skyerr.Domain("starfield", "%v", err)
	}
	if c.SphereRadius <= 0 {
		return skyerr.Domain("starfield", "sphere radius must be positive, got %v", c.SphereRadius)
	}
	if c.AttenuationScale <= 0 {
		return skyerr.Domain("starfield", "attenuation scale must be positive, got %v", c.AttenuationScale)
	}
	if c.AspectMin > c.AspectMax {
		return skyerr.Domain("starfield", "aspect clamp [%v, %v] is empty", c.AspectMin, c.AspectMax)
	}
	return nil
}

// BackFaceThreshold is the camera-space z offset beyond the origin's z at which
// stars are treated as facing away. originLen is the length of the camera-space
// origin as a homogeneous 4-vector.
func (c Config) BackFaceThreshold(originLen, aspect float64) float64 {
	return c.BackFaceNumerator/originLen + clampf(aspect, c.AspectMin, c.AspectMax)*c.AspectWeight
}

// BelowHorizon reports whether a normalized local height is culled by the
// horizon margin. The margin itself is visible.
func (c Config) BelowHorizon(localY float64) bool {
	return localY < c.HorizonMargin
}

// Attenuation is the perspective size factor for a camera-space depth. It
// decreases monotonically with depth.
func (c Config) Attenuation(depth, viewportHeight float64) float64 {
	return viewportHeight / (2 * depth) * c.AttenuationScale
}

// Twinkle returns the additive size modulation at timeScalar.
func (c Config) Twinkle(baseSize, phase, timeScalar float64) float64 {
	return math.Sin(timeScalar*c.TwinkleFrequency+phase) * c.TwinkleAmplitude * baseSize
}

func clampf(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
