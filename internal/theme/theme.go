// Package theme publishes a blended sky color set to consumers outside the
// renderer: CSS custom properties for page chrome and shader uniforms.
package theme

import (
	"fmt"
	"io"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-skydome/internal/palette"
)

// Variable is one CSS custom property.
type Variable struct {
	Name  string
	Value string
}

// CSS property names, in ground-to-zenith order.
const (
	VarGround  = "--ground-color"
	VarHorizon = "--horizon-color"
	VarLowSky  = "--low-sky-color"
	VarMidSky  = "--mid-sky-color"
	VarUpper   = "--upper-sky-color"
)

// RGBTriplet formats a color as "r, g, b" with 0-255 channels, suitable for
// rgb(var(--x)) and rgba(var(--x), a) in CSS.
func RGBTriplet(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("%d, %d, %d", r, g, b)
}

// CSSVariables returns the five sky variables for set.
func CSSVariables(set palette.BlendedColorSet) []Variable {
	return []Variable{
		{VarGround, RGBTriplet(set.Ground)},
		{VarHorizon, RGBTriplet(set.Horizon)},
		{VarLowSky, RGBTriplet(set.Low)},
		{VarMidSky, RGBTriplet(set.Mid)},
		{VarUpper, RGBTriplet(set.Upper)},
	}
}

// WriteCSS writes the variables as a rule for selector (":root" if empty).
func WriteCSS(w io.Writer, selector string, vars []Variable) error {
	if selector == "" {
		selector = ":root"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s {\n", selector)
	for _, v := range vars {
		fmt.Fprintf(&b, "  %s: %s;\n", v.Name, v.Value)
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Uniforms maps sky shader uniform names to linear 0..1 RGB triples.
type Uniforms map[string][3]float32

// ShaderUniforms returns the sky and ground shader inputs for set.
func ShaderUniforms(set palette.BlendedColorSet) Uniforms {
	vec := func(c colorful.Color) [3]float32 {
		return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
	}
	return Uniforms{
		"u_ground":      vec(set.Ground),
		"u_horizon":     vec(set.Horizon),
		"u_low":         vec(set.Low),
		"u_mid":         vec(set.Mid),
		"u_upper":       vec(set.Upper),
		"u_ground_glow": vec(set.Floor),
		"u_ambient":     vec(set.Ambient),
	}
}

// Names returns uniform names in sorted order.
func (u Uniforms) Names() []string {
	names := make([]string, 0, len(u))
	for k := range u {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
