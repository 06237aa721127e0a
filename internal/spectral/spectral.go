// Package spectral maps a star's color index to the base color of its spectral
// class.
//
// The mapping is a discrete step function: stellar class is categorical in the
// catalog, so colors are never blended between classes.
package spectral

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-skydome/internal/skyerr"
	"github.com/litescript/ls-skydome/internal/threshold"
)

// Class is a stellar spectral class.
type Class string

const (
	O Class = "O"
	B Class = "B"
	A Class = "A"
	F Class = "F"
	G Class = "G"
	K Class = "K"
	M Class = "M"
)

// Classes lists spectral classes from hottest to coolest.
var Classes = []Class{O, B, A, F, G, K, M}

// ColorIndexThresholds are the ascending color index breakpoints.
var ColorIndexThresholds = []float64{-0.33, -0.30, -0.02, 0.30, 0.58, 0.81, 1.40}

// bucketClasses assigns a class to each of the len(thresholds)+1 buckets.
// Seven breakpoints give eight buckets for seven classes: the open tail below
// -0.33 joins the [-0.33, -0.30) bucket as class O.
var bucketClasses = []Class{O, O, B, A, F, G, K, M}

var classHex = map[Class]uint32{
	O: 0xc8c7ff,
	B: 0xbbdaff,
	A: 0xe7ecff,
	F: 0xedffff,
	G: 0xfafff1,
	K: 0xffffca,
	M: 0xffcdcd,
}

// Mapper resolves color indices to spectral classes. It is immutable.
type Mapper struct {
	table  *threshold.Table[Class]
	colors map[Class]colorful.Color
}

// NewMapper builds a mapper from ascending thresholds, one class per bucket
// (len(thresholds)+1 entries), and a color per class.
func NewMapper(thresholds []float64, buckets []Class, colors map[Class]colorful.Color) (*Mapper, error) {
	if len(buckets) != len(thresholds)+1 {
		return nil, skyerr.Domain("spectral", "%d classes for %d buckets", len(buckets), len(thresholds)+1)
	}
	for _, c := range buckets {
		if _, ok := colors[c]; !ok {
			return nil, skyerr.Domain("spectral", "class %s has no color", c)
		}
	}
	table, err := threshold.New(thresholds, buckets, threshold.Ascending)
	if err != nil {
		return nil, err
	}
	cp := make(map[Class]colorful.Color, len(colors))
	for k, v := range colors {
		cp[k] = v
	}
	return &Mapper{table: table, colors: cp}, nil
}

// ClassFor returns the spectral class of a color index. A value equal to a
// breakpoint belongs to the cooler class above it.
func (m *Mapper) ClassFor(colorIndex float64) (Class, error) {
	if err := skyerr.RequireFinite("color index", colorIndex); err != nil {
		return "", err
	}
	return m.table.At(colorIndex), nil
}

// ColorFor returns the base color of the class containing colorIndex.
func (m *Mapper) ColorFor(colorIndex float64) (colorful.Color, error) {
	c, err := m.ClassFor(colorIndex)
	if err != nil {
		return colorful.Color{}, err
	}
	return m.colors[c], nil
}

// ClassColor returns the base color of a class.
func (m *Mapper) ClassColor(c Class) (colorful.Color, bool) {
	col, ok := m.colors[c]
	return col, ok
}

var defaultMapper = mustDefault()

func mustDefault() *Mapper {
	colors := make(map[Class]colorful.Color, len(classHex))
	for c, h := range classHex {
		colors[c] = colorful.Color{
			R: float64((h>>16)&0xff) / 255,
			G: float64((h>>8)&0xff) / 255,
			B: float64(h&0xff) / 255,
		}
	}
	m, err := NewMapper(ColorIndexThresholds, bucketClasses, colors)
	if err != nil {
		panic(err)
	}
	return m
}

// Default returns the mapper built from the reference class table.
func Default() *Mapper {
	return defaultMapper
}
