package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-skydome/internal/gradient"
	"github.com/litescript/ls-skydome/internal/render"
	"github.com/litescript/ls-skydome/internal/starfield"
	"github.com/litescript/ls-skydome/internal/state"
)

const (
	// Star glyphs by projected point size
	glyphStarBright = '✶' // size >= 3
	glyphStarMedium = '✸' // size >= 2
	glyphStarDim    = '•' // size >= 1
	glyphStarFaint  = '·'

	// Named stars at least this large get a label in LabelBright mode.
	brightLabelSize = 2.5

	colorLabel = "#c8c8d8"
)

// LabelMode controls which star names are drawn.
type LabelMode int

const (
	LabelNone   LabelMode = iota // No labels
	LabelBright                  // Named stars above brightLabelSize
	LabelAll                     // Every named star
)

func (l LabelMode) String() string {
	switch l {
	case LabelBright:
		return "bright"
	case LabelAll:
		return "all"
	}
	return "off"
}

// cell is one terminal character of the sky canvas.
type cell struct {
	r     rune
	fg    colorful.Color
	bg    colorful.Color
	hasFg bool
	size  float64 // point size of the star drawn here, 0 if none
}

// SkyViewModel paints the current frame: gradient background, ground glow
// and stars, one terminal cell per sample.
type SkyViewModel struct {
	width  int
	height int

	comp      *gradient.Compositor
	frame     *state.FrameState
	labelMode LabelMode
}

// NewSkyViewModel creates a sky view using comp for the background.
func NewSkyViewModel(comp *gradient.Compositor) SkyViewModel {
	if comp == nil {
		comp = gradient.Default()
	}
	return SkyViewModel{comp: comp, labelMode: LabelBright}
}

// SetSize updates the view size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// CanvasSize returns the canvas dimensions in cells.
func (m SkyViewModel) CanvasSize() (int, int) {
	return m.width, max(m.height-2, 0)
}

// CanvasViewport is the projection viewport matching the canvas. Terminal
// cells are about twice as tall as wide.
func (m SkyViewModel) CanvasViewport() starfield.Viewport {
	w, h := m.CanvasSize()
	return starfield.Viewport{Width: float64(max(w, 1)), Height: float64(max(h, 1) * 2)}
}

// SetFrame updates the frame being shown.
func (m SkyViewModel) SetFrame(f *state.FrameState) SkyViewModel {
	m.frame = f
	return m
}

func (m SkyViewModel) cycleLabelMode() SkyViewModel {
	m.labelMode = (m.labelMode + 1) % 3
	return m
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 8 {
		return "Sky view requires larger terminal"
	}
	if m.frame == nil {
		return "Waiting for first frame..."
	}

	w, h := m.CanvasSize()
	canvas, err := m.canvas(w, h)
	if err != nil {
		return "Render error: " + err.Error()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(paint(canvas))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	f := m.frame
	title := titleStyle.Render("Sky")
	sun := accentStyle.Render(fmt.Sprintf("Sun %+.1f°", f.SunAltDeg))
	blend := dimStyle.Render(fmt.Sprintf("%s → %s %3.0f%%", f.Colors.From, f.Colors.To, f.Colors.T*100))
	labels := dimStyle.Render("Labels: " + m.labelMode.String())
	return fmt.Sprintf("%s | %s | %s | %s", title, sun, blend, labels)
}

func (m SkyViewModel) renderStatus() string {
	f := m.frame
	moon := fmt.Sprintf("Moon %s %.0f%%", f.Moon.Phase, f.Moon.Illumination*100)
	counts := fmt.Sprintf("%d visible · %d culled", len(f.Stars.Visible), f.Stars.Culled)
	if f.Stars.Skipped > 0 {
		counts += fmt.Sprintf(" · %d skipped", f.Stars.Skipped)
	}
	return dimStyle.Render(moon + " | " + counts)
}

// canvas shades every cell and draws stars and labels.
func (m SkyViewModel) canvas(w, h int) ([][]cell, error) {
	grid := make([][]cell, h)
	row := make([]colorful.Color, w)
	for y := 0; y < h; y++ {
		if err := render.ShadeRow(m.comp, m.frame.Colors, y, h, row); err != nil {
			return nil, err
		}
		grid[y] = make([]cell, w)
		for x, c := range row {
			grid[y][x] = cell{r: ' ', bg: c}
		}
	}

	var labels []starfield.StarRenderAttributes
	for _, s := range m.frame.Stars.Visible {
		x, y, ok := cellFor(s.Screen, w, h)
		if !ok || s.PointSize <= grid[y][x].size {
			continue
		}
		grid[y][x].r = starGlyph(s.PointSize)
		grid[y][x].fg = s.Color
		grid[y][x].hasFg = true
		grid[y][x].size = s.PointSize
		if m.wantsLabel(s) {
			labels = append(labels, s)
		}
	}

	fg, _ := colorful.Hex(colorLabel)
	for _, s := range labels {
		x, y, _ := cellFor(s.Screen, w, h)
		for i, r := range []rune(s.Name) {
			lx := x + 2 + i
			if lx >= w || grid[y][lx].size > 0 {
				break
			}
			grid[y][lx].r = r
			grid[y][lx].fg = fg
			grid[y][lx].hasFg = true
		}
	}
	return grid, nil
}

func (m SkyViewModel) wantsLabel(s starfield.StarRenderAttributes) bool {
	if s.Name == "" || strings.HasPrefix(s.Name, starfield.FieldNamePrefix) {
		return false
	}
	switch m.labelMode {
	case LabelAll:
		return true
	case LabelBright:
		return s.PointSize >= brightLabelSize
	}
	return false
}

// cellFor maps NDC to a canvas cell.
func cellFor(ndc [2]float64, w, h int) (int, int, bool) {
	px, py := render.ScreenToPixel(ndc, w, h)
	if px < 0 || py < 0 {
		return 0, 0, false
	}
	x, y := int(px), int(py)
	if x >= w || y >= h {
		return 0, 0, false
	}
	return x, y, true
}

// starGlyph picks a glyph for a projected point size.
func starGlyph(size float64) rune {
	switch {
	case size >= 3:
		return glyphStarBright
	case size >= 2:
		return glyphStarMedium
	case size >= 1:
		return glyphStarDim
	default:
		return glyphStarFaint
	}
}

// paint renders the grid, merging runs of identically styled blank cells.
func paint(grid [][]cell) string {
	var b strings.Builder
	for y, row := range grid {
		for x := 0; x < len(row); {
			c := row[x]
			style := lipgloss.NewStyle().Background(lipgloss.Color(c.bg.Clamped().Hex()))
			if c.hasFg {
				style = style.Foreground(lipgloss.Color(c.fg.Clamped().Hex()))
				b.WriteString(style.Render(string(c.r)))
				x++
				continue
			}
			end := x + 1
			for end < len(row) && !row[end].hasFg && row[end].bg.Clamped().Hex() == c.bg.Clamped().Hex() {
				end++
			}
			b.WriteString(style.Render(strings.Repeat(" ", end-x)))
			x = end
		}
		if y < len(grid)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
