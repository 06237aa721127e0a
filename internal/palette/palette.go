// Package palette maps the sun's altitude to a blended set of sky colors.
//
// Each breakpoint of the descending sun threshold table anchors a named palette.
// An altitude between two breakpoints blends the two anchors with an eased
// fraction, so the sky changes gradually through twilight instead of stepping.
package palette

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-skydome/internal/skyerr"
	"github.com/litescript/ls-skydome/internal/threshold"
)

// StopCount is the number of sky color stops per palette.
const StopCount = 6

// Stop indexes a palette's sky colors.
type Stop int

const (
	StopGround Stop = iota
	StopHorizon
	StopLow
	StopMid
	StopUpper
	StopFloor
)

func (s Stop) String() string {
	switch s {
	case StopGround:
		return "ground"
	case StopHorizon:
		return "horizon"
	case StopLow:
		return "low"
	case StopMid:
		return "mid"
	case StopUpper:
		return "upper"
	case StopFloor:
		return "floor"
	default:
		return fmt.Sprintf("stop(%d)", int(s))
	}
}

// Palette is a named set of sky colors plus the ambient light color.
type Palette struct {
	Name    Name
	Sky     [StopCount]colorful.Color
	Ambient colorful.Color
}

// BlendedColorSet is the sky color set for one altitude.
type BlendedColorSet struct {
	Ground  colorful.Color
	Horizon colorful.Color
	Low     colorful.Color
	Mid     colorful.Color
	Upper   colorful.Color
	Floor   colorful.Color
	Ambient colorful.Color

	// Diagnostics: the bracket anchors and eased blend weight toward To.
	From Name
	To   Name
	T    float64
}

// Stops returns the six sky colors in palette order.
func (s BlendedColorSet) Stops() [StopCount]colorful.Color {
	return [StopCount]colorful.Color{s.Ground, s.Horizon, s.Low, s.Mid, s.Upper, s.Floor}
}

// Stop returns one sky color.
func (s BlendedColorSet) Stop(i Stop) colorful.Color {
	return s.Stops()[i]
}

// Dominant returns the anchor palette the set is closest to.
func (s BlendedColorSet) Dominant() Name {
	if s.T > 0.5 {
		return s.To
	}
	return s.From
}

// Interpolator blends anchored palettes for a given sun altitude.
// It is immutable and safe for concurrent use.
type Interpolator struct {
	table    *threshold.Table[*Palette]
	palettes map[Name]*Palette
	order    []Name
}

// NewInterpolator builds an interpolator. breakpoints must be strictly
// descending and anchors must name one defined palette per breakpoint.
func NewInterpolator(breakpoints []float64, anchors []Name, palettes []Palette) (*Interpolator, error) {
	byName := make(map[Name]*Palette, len(palettes))
	order := make([]Name, 0, len(palettes))
	for i := range palettes {
		p := palettes[i]
		if p.Name == "" {
			return nil, skyerr.Domain("palette", "palette %d has no name", i)
		}
		if _, dup := byName[p.Name]; dup {
			return nil, skyerr.Domain("palette", "duplicate palette %q", p.Name)
		}
		byName[p.Name] = &p
		order = append(order, p.Name)
	}

	values := make([]*Palette, len(anchors))
	for i, name := range anchors {
		p, ok := byName[name]
		if !ok {
			return nil, skyerr.Domain("palette", "anchor %d names undefined palette %q", i, name)
		}
		values[i] = p
	}
	if len(values) != len(breakpoints) {
		return nil, skyerr.Domain("palette", "%d anchors for %d breakpoints", len(values), len(breakpoints))
	}

	table, err := threshold.New(breakpoints, values, threshold.Descending)
	if err != nil {
		return nil, fmt.Errorf("sun threshold table: %w", err)
	}

	return &Interpolator{table: table, palettes: byName, order: order}, nil
}

// Blend returns the color set for a sun altitude in degrees.
// Altitudes at or above the top breakpoint return the top anchor exactly, and
// at or below the bottom breakpoint the bottom anchor exactly.
func (ip *Interpolator) Blend(altitudeDeg float64) (BlendedColorSet, error) {
	if err := skyerr.RequireFinite("sun altitude", altitudeDeg); err != nil {
		return BlendedColorSet{}, err
	}

	bracket, frac := ip.table.Locate(altitudeDeg)
	from, to := ip.table.Anchors(bracket)
	t := threshold.Ease(frac)

	mix := func(i int) colorful.Color { return mixColor(from.Sky[i], to.Sky[i], t) }
	return BlendedColorSet{
		Ground:  mix(int(StopGround)),
		Horizon: mix(int(StopHorizon)),
		Low:     mix(int(StopLow)),
		Mid:     mix(int(StopMid)),
		Upper:   mix(int(StopUpper)),
		Floor:   mix(int(StopFloor)),
		Ambient: mixColor(from.Ambient, to.Ambient, t),
		From:    from.Name,
		To:      to.Name,
		T:       t,
	}, nil
}

// Exact returns a palette's colors as an unblended color set.
func (ip *Interpolator) Exact(name Name) (BlendedColorSet, error) {
	p, ok := ip.palettes[name]
	if !ok {
		return BlendedColorSet{}, fmt.Errorf("unknown palette %q", name)
	}
	return BlendedColorSet{
		Ground:  p.Sky[StopGround],
		Horizon: p.Sky[StopHorizon],
		Low:     p.Sky[StopLow],
		Mid:     p.Sky[StopMid],
		Upper:   p.Sky[StopUpper],
		Floor:   p.Sky[StopFloor],
		Ambient: p.Ambient,
		From:    p.Name,
		To:      p.Name,
	}, nil
}

// Lookup returns a palette by name.
func (ip *Interpolator) Lookup(name Name) (Palette, bool) {
	p, ok := ip.palettes[name]
	if !ok {
		return Palette{}, false
	}
	return *p, true
}

// Names returns the defined palette names in declaration order.
func (ip *Interpolator) Names() []Name {
	return append([]Name(nil), ip.order...)
}

// Breakpoints returns the sun altitude breakpoints, highest first.
func (ip *Interpolator) Breakpoints() []float64 {
	return ip.table.Breakpoints()
}

// AnchorAt returns the palette anchored at breakpoint i.
func (ip *Interpolator) AnchorAt(i int) Name {
	return ip.table.Value(i).Name
}

// Bracket returns the index of the bracket containing the altitude.
func (ip *Interpolator) Bracket(altitudeDeg float64) (int, error) {
	if err := skyerr.RequireFinite("sun altitude", altitudeDeg); err != nil {
		return 0, err
	}
	b, _ := ip.table.Locate(altitudeDeg)
	return b, nil
}

// mixColor interpolates component-wise in RGB. The endpoints are returned
// untouched so breakpoint altitudes reproduce palettes exactly.
func mixColor(a, b colorful.Color, t float64) colorful.Color {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return a.BlendRgb(b, t)
}

var defaultInterpolator = mustDefault()

func mustDefault() *Interpolator {
	palettes := make([]Palette, 0, len(paletteOrder))
	for _, name := range paletteOrder {
		p := Palette{Name: name, Ambient: FromHex(ambientHex[name])}
		for i, h := range skyHex[name] {
			p.Sky[i] = FromHex(h)
		}
		palettes = append(palettes, p)
	}
	ip, err := NewInterpolator(SunThresholds, sunAnchors, palettes)
	if err != nil {
		panic(err)
	}
	return ip
}

// Default returns the interpolator built from the reference palettes.
func Default() *Interpolator {
	return defaultInterpolator
}
