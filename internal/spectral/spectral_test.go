package spectral

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-skydome/internal/skyerr"
)

func TestClassFor(t *testing.T) {
	tests := []struct {
		ci   float64
		want Class
	}{
		{-2.0, O},  // open tail below first breakpoint
		{-0.33, O}, // first breakpoint
		{-0.31, O},
		{-0.30, B}, // boundary belongs to the cooler class
		{-0.10, B},
		{-0.02, A},
		{0.00, A}, // Vega
		{0.30, F},
		{0.42, F}, // Procyon
		{0.58, G},
		{0.65, G}, // Sun
		{0.81, K},
		{1.23, K}, // Arcturus
		{1.40, M},
		{1.85, M}, // Betelgeuse
		{9.0, M},  // open tail above last breakpoint
	}

	for _, tt := range tests {
		got, err := Default().ClassFor(tt.ci)
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("ClassFor(%v) = %s, want %s", tt.ci, got, tt.want)
		}
	}
}

func TestColorFor_StepFunction(t *testing.T) {
	m := Default()

	// Same bucket -> identical color.
	a, _ := m.ColorFor(0.31)
	b, _ := m.ColorFor(0.57)
	assert.Equal(t, a, b)

	// Crossing a breakpoint -> exactly the adjacent class color.
	below, _ := m.ColorFor(math.Nextafter(0.58, 0))
	at, _ := m.ColorFor(0.58)
	fColor, _ := m.ClassColor(F)
	gColor, _ := m.ClassColor(G)
	assert.Equal(t, fColor, below)
	assert.Equal(t, gColor, at)
}

func TestColorFor_ReferenceColors(t *testing.T) {
	c, err := Default().ColorFor(-1)
	require.NoError(t, err)
	assert.Equal(t, "#c8c7ff", c.Hex())

	c, err = Default().ColorFor(3)
	require.NoError(t, err)
	assert.Equal(t, "#ffcdcd", c.Hex())
}

func TestColorFor_InvalidInput(t *testing.T) {
	_, err := Default().ColorFor(math.NaN())
	require.Error(t, err)
	assert.True(t, skyerr.IsInvalidInput(err))

	_, err = Default().ClassFor(math.Inf(-1))
	assert.True(t, skyerr.IsInvalidInput(err))
}

func TestNewMapper_Malformed(t *testing.T) {
	colors := map[Class]colorful.Color{O: {}, B: {}}

	_, err := NewMapper([]float64{0, 1}, []Class{O, B}, colors)
	assert.True(t, skyerr.IsDomain(err), "bucket count mismatch")

	_, err = NewMapper([]float64{0, 1}, []Class{O, B, M}, colors)
	assert.True(t, skyerr.IsDomain(err), "missing class color")

	_, err = NewMapper([]float64{1, 0}, []Class{O, B, B}, colors)
	assert.True(t, skyerr.IsDomain(err), "descending thresholds")
}
