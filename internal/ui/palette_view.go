package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-skydome/internal/palette"
	"github.com/litescript/ls-skydome/internal/state"
)

// PaletteViewModel lists every named palette as swatches and marks the pair
// currently being blended.
type PaletteViewModel struct {
	width  int
	height int

	interp *palette.Interpolator
	frame  *state.FrameState
}

// NewPaletteViewModel creates the palette view.
func NewPaletteViewModel(interp *palette.Interpolator) PaletteViewModel {
	if interp == nil {
		interp = palette.Default()
	}
	return PaletteViewModel{interp: interp}
}

// SetSize updates the view size.
func (m PaletteViewModel) SetSize(width, height int) PaletteViewModel {
	m.width = width
	m.height = height
	return m
}

// SetFrame updates the frame whose blend is highlighted.
func (m PaletteViewModel) SetFrame(f *state.FrameState) PaletteViewModel {
	m.frame = f
	return m
}

func swatch(c colorful.Color) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Clamped().Hex())).Render("   ")
}

// View renders the palette table.
func (m PaletteViewModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Palettes"))
	b.WriteString(dimStyle.Render("   ground horizon low mid upper floor | ambient"))
	b.WriteString("\n\n")

	var from, to palette.Name
	if m.frame != nil {
		from, to = m.frame.Colors.From, m.frame.Colors.To
	}

	anchors := m.anchorAltitudes()
	for _, name := range m.interp.Names() {
		p, _ := m.interp.Lookup(name)
		marker := "  "
		switch name {
		case from:
			marker = accentStyle.Render("▶ ")
		case to:
			marker = accentStyle.Render("▷ ")
		}
		b.WriteString(marker)
		b.WriteString(fmt.Sprintf("%-15s", name))
		for _, c := range p.Sky {
			b.WriteString(swatch(c))
		}
		b.WriteString(" ")
		b.WriteString(swatch(p.Ambient))
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(anchors[name]))
		b.WriteString("\n")
	}

	if m.frame != nil {
		set := m.frame.Colors
		b.WriteString("\n")
		b.WriteString(accentStyle.Render(fmt.Sprintf("  %-15s", "now")))
		for _, c := range set.Stops() {
			b.WriteString(swatch(c))
		}
		b.WriteString(" ")
		b.WriteString(swatch(set.Ambient))
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(fmt.Sprintf("sun %+.2f°  t=%.3f", m.frame.SunAltDeg, set.T)))
		b.WriteString("\n")
	}
	return b.String()
}

// anchorAltitudes describes where each palette is anchored, e.g. "at -5°".
func (m PaletteViewModel) anchorAltitudes() map[palette.Name]string {
	out := make(map[palette.Name]string)
	for i, bp := range m.interp.Breakpoints() {
		name := m.interp.AnchorAt(i)
		if prev, ok := out[name]; ok {
			out[name] = fmt.Sprintf("%s, %g°", prev, bp)
			continue
		}
		out[name] = fmt.Sprintf("at %g°", bp)
	}
	for _, name := range m.interp.Names() {
		if _, ok := out[name]; !ok {
			out[name] = "unanchored"
		}
	}
	return out
}
