package theme

import (
	"bytes"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-skydome/internal/palette"
)

func TestRGBTriplet(t *testing.T) {
	tests := []struct {
		name string
		c    colorful.Color
		want string
	}{
		{"black", colorful.Color{}, "0, 0, 0"},
		{"white", colorful.Color{R: 1, G: 1, B: 1}, "255, 255, 255"},
		{"hex", palette.FromHex(0x09090b), "9, 9, 11"},
		{"out of gamut clamps", colorful.Color{R: 1.2, G: -0.1, B: 0.5}, "255, 0, 128"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RGBTriplet(tt.c))
		})
	}
}

func TestCSSVariables(t *testing.T) {
	set := palette.BlendedColorSet{
		Ground:  palette.FromHex(0x010203),
		Horizon: palette.FromHex(0x102030),
		Low:     palette.FromHex(0x405060),
		Mid:     palette.FromHex(0x708090),
		Upper:   palette.FromHex(0xa0b0c0),
	}
	vars := CSSVariables(set)
	require.Len(t, vars, 5)

	want := []Variable{
		{"--ground-color", "1, 2, 3"},
		{"--horizon-color", "16, 32, 48"},
		{"--low-sky-color", "64, 80, 96"},
		{"--mid-sky-color", "112, 128, 144"},
		{"--upper-sky-color", "160, 176, 192"},
	}
	assert.Equal(t, want, vars)
}

func TestWriteCSS(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSS(&buf, "", []Variable{{"--a", "1, 2, 3"}, {"--b", "4, 5, 6"}})
	require.NoError(t, err)
	assert.Equal(t, ":root {\n  --a: 1, 2, 3;\n  --b: 4, 5, 6;\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteCSS(&buf, "body.sky", nil))
	assert.Equal(t, "body.sky {\n}\n", buf.String())
}

func TestShaderUniforms(t *testing.T) {
	set, err := palette.Default().Blend(-12)
	require.NoError(t, err)

	u := ShaderUniforms(set)
	assert.Equal(t, []string{"u_ambient", "u_ground", "u_ground_glow", "u_horizon", "u_low", "u_mid", "u_upper"}, u.Names())
	assert.Equal(t, float32(set.Upper.B), u["u_upper"][2])
	assert.Equal(t, float32(set.Floor.R), u["u_ground_glow"][0])
}
