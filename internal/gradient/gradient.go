// Package gradient composes a blended sky color set into a vertical sky
// gradient and a radial ground glow.
//
// Both evaluators are plain functions of their inputs so they can back a
// software renderer or be translated directly into shader uniforms.
package gradient

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-skydome/internal/palette"
	"github.com/litescript/ls-skydome/internal/skyerr"
	"github.com/litescript/ls-skydome/internal/threshold"
)

// Window is a smoothstep transition over [Edge0, Edge1] of the vertical
// coordinate.
type Window struct {
	Edge0 float64 `yaml:"edge0"`
	Edge1 float64 `yaml:"edge1"`
}

// Windows are the four cascaded transitions, each folding in one more stop:
// ground->horizon, ->low, ->mid, ->upper.
type Windows [4]Window

// DefaultWindows reproduces the reference sky shader. Lower transitions are
// narrow and the highest is the widest.
func DefaultWindows() Windows {
	return Windows{
		{Edge0: 0.50, Edge1: 0.55},
		{Edge0: 0.50, Edge1: 0.65},
		{Edge0: 0.50, Edge1: 0.80},
		{Edge0: 0.70, Edge1: 1.00},
	}
}

// Validate checks that every window is finite and non-empty.
func (w Windows) Validate() error {
	for i, win := range w {
		if err := skyerr.RequireAllFinite([]string{"edge0", "edge1"}, win.Edge0, win.Edge1); err != nil {
			return skyerr.Domain("gradient", "window %d: %v", i, err)
		}
		if win.Edge0 >= win.Edge1 {
			return skyerr.Domain("gradient", "window %d: edge0 %v >= edge1 %v", i, win.Edge0, win.Edge1)
		}
	}
	return nil
}

// GlowRadius is the distance from the plane center at which the ground glow
// reaches zero alpha.
const GlowRadius = 0.4

// RGBA is a color with straight (non-premultiplied) alpha.
type RGBA struct {
	Color colorful.Color
	Alpha float64
}

// Compositor evaluates sky gradients and ground glow.
type Compositor struct {
	windows    Windows
	glowRadius float64
}

// New builds a compositor; malformed windows are a DomainError.
func New(windows Windows) (*Compositor, error) {
	if err := windows.Validate(); err != nil {
		return nil, err
	}
	return &Compositor{windows: windows, glowRadius: GlowRadius}, nil
}

// Default returns a compositor with the reference windows.
func Default() *Compositor {
	c, err := New(DefaultWindows())
	if err != nil {
		panic(err)
	}
	return c
}

// Windows returns the compositor's transition windows.
func (c *Compositor) Windows() Windows { return c.windows }

// GradientAt returns the sky color at normalized vertical coordinate v, where
// 0 is the bottom of the sky surface and 1 the top. Values outside [0, 1] are
// accepted and saturate through the smoothstep windows.
func (c *Compositor) GradientAt(v float64, set palette.BlendedColorSet) (colorful.Color, error) {
	if err := skyerr.RequireFinite("v", v); err != nil {
		return colorful.Color{}, err
	}
	stops := [4]colorful.Color{set.Horizon, set.Low, set.Mid, set.Upper}

	col := set.Ground
	for i, w := range c.windows {
		col = mix(col, stops[i], threshold.Smoothstep(w.Edge0, w.Edge1, v))
	}
	return col, nil
}

// GroundGlowAt returns the glow color at plane coordinates (u, v) in [0, 1].
// RGB is constant; alpha falls off radially from the plane center.
func (c *Compositor) GroundGlowAt(u, v float64, glow colorful.Color) (RGBA, error) {
	if err := skyerr.RequireAllFinite([]string{"u", "v"}, u, v); err != nil {
		return RGBA{}, err
	}
	du, dv := u-0.5, v-0.5
	d := math.Hypot(du, dv)
	return RGBA{Color: glow, Alpha: 1 - threshold.Smoothstep(0, c.glowRadius, d)}, nil
}

// Stops samples the gradient at n evenly spaced coordinates from 0 to 1
// inclusive, e.g. to precompute texture rows or terminal lines.
func (c *Compositor) Stops(set palette.BlendedColorSet, n int) ([]colorful.Color, error) {
	if n < 2 {
		return nil, fmt.Errorf("gradient stops: need at least 2 samples, got %d", n)
	}
	out := make([]colorful.Color, n)
	for i := range out {
		v := float64(i) / float64(n-1)
		col, err := c.GradientAt(v, set)
		if err != nil {
			return nil, err
		}
		out[i] = col
	}
	return out, nil
}

func mix(a, b colorful.Color, t float64) colorful.Color {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return colorful.Color{
		R: threshold.Lerp(a.R, b.R, t),
		G: threshold.Lerp(a.G, b.G, t),
		B: threshold.Lerp(a.B, b.B, t),
	}
}
