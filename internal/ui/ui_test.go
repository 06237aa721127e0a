package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-skydome/internal/astro"
	"github.com/litescript/ls-skydome/internal/palette"
	"github.com/litescript/ls-skydome/internal/starfield"
	"github.com/litescript/ls-skydome/internal/state"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testFrame(t *testing.T) *state.FrameState {
	t.Helper()
	colors, err := palette.Default().Blend(-7.5)
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}
	white, _ := colorful.Hex("#ffffff")
	return &state.FrameState{
		Number:    3,
		SkyTime:   time.Date(2026, 3, 20, 18, 30, 0, 0, time.UTC),
		SunAltDeg: -7.5,
		Colors:    colors,
		Stars: &starfield.Frame{
			Visible: []starfield.StarRenderAttributes{
				{Name: "Sirius", Screen: [2]float64{0, 0}, PointSize: 3.2, Color: white},
				{Name: "field-9", Screen: [2]float64{0.5, 0.5}, PointSize: 3.5, Color: white},
			},
			Culled: 10,
		},
		Moon: astro.MoonState{Phase: astro.WaxingCrescent, Illumination: 0.2},
	}
}

func sizedModel(t *testing.T) Model {
	t.Helper()
	var tm tea.Model = New(Options{Observer: "Greenwich"})
	tm, _ = tm.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return tm.(Model)
}

func TestModel_NotReady(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before resize = %q", got)
	}
}

func TestModel_ViewSwitching(t *testing.T) {
	m := sizedModel(t)
	if m.viewMode != ViewSky {
		t.Fatalf("initial view = %d, want ViewSky", m.viewMode)
	}

	steps := []struct {
		msg  tea.KeyMsg
		want ViewMode
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, ViewPalettes},
		{tea.KeyMsg{Type: tea.KeyTab}, ViewEvents},
		{tea.KeyMsg{Type: tea.KeyTab}, ViewSky},
		{runeKey("3"), ViewEvents},
		{runeKey("p"), ViewPalettes},
		{runeKey("1"), ViewSky},
	}
	for i, s := range steps {
		tm, _ := m.Update(s.msg)
		m = tm.(Model)
		if m.viewMode != s.want {
			t.Errorf("step %d: view = %d, want %d", i, m.viewMode, s.want)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	m := sizedModel(t)
	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should produce tea.QuitMsg")
	}
}

func TestModel_FrameMsg(t *testing.T) {
	m := sizedModel(t)
	f := testFrame(t)
	tm, _ := m.Update(FrameMsg{Snapshot: state.Snapshot{Frame: f, Frames: 3}})
	m = tm.(Model)

	view := m.View()
	for _, want := range []string{"ls-skydome", "Greenwich", "Sirius", string(glyphStarBright), "golden → twilight", "2026-03-20 18:30"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "field-9") {
		t.Error("generated field stars should not be labeled")
	}
}

func TestModel_ErrorMsg(t *testing.T) {
	m := sizedModel(t)
	tm, _ := m.Update(ErrorMsg{Error: errTest("boom")})
	if !strings.Contains(tm.View(), "ERROR: boom") {
		t.Error("footer should show the error")
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestModel_TimeControls(t *testing.T) {
	clock := state.NewClock(time.Date(2026, 6, 21, 12, 0, 0, 0, time.UTC), 1)
	var tm tea.Model = New(Options{Clock: clock})

	tm, _ = tm.Update(runeKey("+"))
	if got := clock.Scale(); got != 10 {
		t.Errorf("scale after + = %v, want 10", got)
	}
	for i := 0; i < 6; i++ {
		tm, _ = tm.Update(runeKey("+"))
	}
	if got := clock.Scale(); got != maxTimeScale {
		t.Errorf("scale = %v, want clamp at %v", got, maxTimeScale)
	}
	for i := 0; i < 8; i++ {
		tm, _ = tm.Update(runeKey("-"))
	}
	if got := clock.Scale(); got != minTimeScale {
		t.Errorf("scale = %v, want clamp at %v", got, minTimeScale)
	}

	before, _ := clock.Now()
	tm, _ = tm.Update(runeKey("]"))
	after, _ := clock.Now()
	if d := after.Sub(before); d < timeStep || d > timeStep+time.Second {
		t.Errorf("] shifted by %v, want about %v", d, timeStep)
	}
	_, _ = tm.Update(runeKey("["))
	back, _ := clock.Now()
	if d := back.Sub(before); d < 0 || d > time.Second {
		t.Errorf("[ should undo ], got offset %v", d)
	}
}

func TestModel_LabelCycle(t *testing.T) {
	m := sizedModel(t)
	want := []LabelMode{LabelAll, LabelNone, LabelBright}
	for i, w := range want {
		tm, _ := m.Update(runeKey("l"))
		m = tm.(Model)
		if m.sky.labelMode != w {
			t.Errorf("press %d: label mode = %v, want %v", i, m.sky.labelMode, w)
		}
	}
}

func TestSkyView_SmallTerminal(t *testing.T) {
	m := NewSkyViewModel(nil).SetSize(10, 5)
	if got := m.View(); got != "Sky view requires larger terminal" {
		t.Errorf("View() = %q", got)
	}
	m = m.SetSize(80, 20)
	if got := m.View(); got != "Waiting for first frame..." {
		t.Errorf("View() = %q", got)
	}
}

func TestSkyView_CanvasPlacement(t *testing.T) {
	m := NewSkyViewModel(nil).SetSize(41, 23).SetFrame(testFrame(t))
	w, h := m.CanvasSize()
	if w != 41 || h != 21 {
		t.Fatalf("CanvasSize = %dx%d, want 41x21", w, h)
	}
	grid, err := m.canvas(w, h)
	if err != nil {
		t.Fatalf("canvas: %v", err)
	}
	if got := grid[10][20].r; got != glyphStarBright {
		t.Errorf("center cell = %q, want %q", got, glyphStarBright)
	}
	if got := string([]rune{grid[10][22].r, grid[10][23].r}); got != "Si" {
		t.Errorf("label start = %q, want %q", got, "Si")
	}
	if grid[0][0].hasFg {
		t.Error("corner cell should be background only")
	}

	vp := m.CanvasViewport()
	if vp.Width != 41 || vp.Height != 42 {
		t.Errorf("CanvasViewport = %+v", vp)
	}
}

func TestSkyView_LargestStarWins(t *testing.T) {
	f := testFrame(t)
	white, _ := colorful.Hex("#ffffff")
	f.Stars.Visible = []starfield.StarRenderAttributes{
		{Name: "big", Screen: [2]float64{0, 0}, PointSize: 3, Color: white},
		{Name: "small", Screen: [2]float64{0, 0}, PointSize: 0.5, Color: white},
	}
	m := NewSkyViewModel(nil).SetFrame(f)
	grid, err := m.canvas(21, 11)
	if err != nil {
		t.Fatal(err)
	}
	if got := grid[5][10].r; got != glyphStarBright {
		t.Errorf("cell = %q, want the larger star's glyph", got)
	}
}

func TestCellFor(t *testing.T) {
	tests := []struct {
		ndc    [2]float64
		x, y   int
		inside bool
	}{
		{[2]float64{0, 0}, 10, 5, true},
		{[2]float64{-1, 1}, 0, 0, true},
		{[2]float64{1, 0}, 0, 0, false},
		{[2]float64{0, -1.2}, 0, 0, false},
	}
	for _, tt := range tests {
		x, y, ok := cellFor(tt.ndc, 20, 10)
		if ok != tt.inside || (ok && (x != tt.x || y != tt.y)) {
			t.Errorf("cellFor(%v) = (%d, %d, %v), want (%d, %d, %v)", tt.ndc, x, y, ok, tt.x, tt.y, tt.inside)
		}
	}
}

func TestStarGlyph(t *testing.T) {
	tests := []struct {
		size float64
		want rune
	}{
		{4, glyphStarBright},
		{3, glyphStarBright},
		{2.5, glyphStarMedium},
		{1, glyphStarDim},
		{0.3, glyphStarFaint},
	}
	for _, tt := range tests {
		if got := starGlyph(tt.size); got != tt.want {
			t.Errorf("starGlyph(%v) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestPaint(t *testing.T) {
	bg, _ := colorful.Hex("#000000")
	fg, _ := colorful.Hex("#ffffff")
	grid := [][]cell{
		{{r: ' ', bg: bg}, {r: ' ', bg: bg}, {r: '*', bg: bg, fg: fg, hasFg: true}},
		{{r: ' ', bg: bg}, {r: ' ', bg: bg}, {r: ' ', bg: bg}},
	}
	out := paint(grid)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("paint produced %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "*") {
		t.Errorf("first row missing star: %q", lines[0])
	}
}

func TestPaletteView(t *testing.T) {
	m := NewPaletteViewModel(nil).SetSize(100, 30)
	view := m.View()
	for _, name := range palette.Default().Names() {
		if !strings.Contains(view, string(name)) {
			t.Errorf("palette view missing %q", name)
		}
	}
	if strings.Contains(view, "now") {
		t.Error("no frame yet, blend row should be absent")
	}

	view = m.SetFrame(testFrame(t)).View()
	if !strings.Contains(view, "▶ golden") {
		t.Error("from palette should be marked")
	}
	if !strings.Contains(view, "▷ twilight") {
		t.Error("to palette should be marked")
	}
	if !strings.Contains(view, "sun -7.50°") {
		t.Error("blend row should show the sun altitude")
	}
}

func TestEventsView(t *testing.T) {
	m := NewEventsViewModel().SetSize(100, 20)
	if !strings.Contains(m.View(), "No events yet") {
		t.Error("empty view should say so")
	}

	ts := time.Date(2026, 3, 20, 18, 0, 0, 0, time.UTC)
	m = m.SetEvents([]state.Event{
		{Type: state.EventSunset, Timestamp: ts, SunAltDeg: -0.9, FrameNumber: 4},
		{Type: state.EventPaletteChange, Timestamp: ts.Add(time.Minute), SunAltDeg: -7.6,
			OldPalette: palette.Golden, NewPalette: palette.Twilight, FrameNumber: 9},
	})
	view := m.View()
	for _, want := range []string{"2 logged", "PALETTE_CHANGE", "golden → twilight", "SUNSET", "frame 4"} {
		if !strings.Contains(view, want) {
			t.Errorf("events view missing %q", want)
		}
	}
	if strings.Index(view, "PALETTE_CHANGE") > strings.Index(view, "SUNSET") {
		t.Error("newest event should be listed first")
	}
}

func TestGradientColor(t *testing.T) {
	a, _ := colorful.Hex("#ffffff")
	b, _ := colorful.Hex("#ffff00")
	if got := gradientColor([]colorful.Color{a, b}, 0).Hex(); got != "#ffffff" {
		t.Errorf("start = %s", got)
	}
	if got := gradientColor([]colorful.Color{a, b}, 1).Hex(); got != "#ffff00" {
		t.Errorf("end = %s", got)
	}
	dark, _ := colorful.Hex("#050505")
	l, _, _ := gradientColor([]colorful.Color{dark}, 0.5).Lab()
	if l < 0.5 {
		t.Errorf("dark stops should be lifted, L = %v", l)
	}
}
