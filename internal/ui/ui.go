// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-skydome/internal/gradient"
	"github.com/litescript/ls-skydome/internal/palette"
	"github.com/litescript/ls-skydome/internal/state"
	"github.com/litescript/ls-skydome/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewSky ViewMode = iota
	ViewPalettes
	ViewEvents
	viewCount
)

const (
	maxTimeScale = 1e5
	minTimeScale = 1
	timeStep     = time.Hour
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// FrameMsg carries a new state snapshot from the frame driver.
	FrameMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a frame error.
	ErrorMsg struct {
		Error error
	}
)

// Options wires the model to the running engine. Driver and Clock may be nil
// in tests; time controls are then inert.
type Options struct {
	Driver       *state.Driver
	Clock        *state.Clock
	Compositor   *gradient.Compositor
	Interpolator *palette.Interpolator
	Observer     string
}

// Model is the root Bubble Tea model.
type Model struct {
	driver   *state.Driver
	clock    *state.Clock
	observer string

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	keys     KeyMap
	help     help.Model
	lastErr  error

	sky      SkyViewModel
	palettes PaletteViewModel
	events   EventsViewModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(opts Options) Model {
	return Model{
		driver:   opts.Driver,
		clock:    opts.Clock,
		observer: opts.Observer,
		viewMode: ViewSky,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		sky:      NewSkyViewModel(opts.Compositor),
		palettes: NewPaletteViewModel(opts.Interpolator),
		events:   NewEventsViewModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextView):
			m.viewMode = (m.viewMode + 1) % viewCount
			return m, nil
		case key.Matches(msg, m.keys.Sky):
			m.viewMode = ViewSky
			return m, nil
		case key.Matches(msg, m.keys.Palettes):
			m.viewMode = ViewPalettes
			return m, nil
		case key.Matches(msg, m.keys.Events):
			m.viewMode = ViewEvents
			return m, nil
		case key.Matches(msg, m.keys.Faster):
			m.scaleTime(10)
			return m, nil
		case key.Matches(msg, m.keys.Slower):
			m.scaleTime(0.1)
			return m, nil
		case key.Matches(msg, m.keys.Forward):
			if m.clock != nil {
				m.clock.Shift(timeStep)
			}
			return m, nil
		case key.Matches(msg, m.keys.Back):
			if m.clock != nil {
				m.clock.Shift(-timeStep)
			}
			return m, nil
		case key.Matches(msg, m.keys.Labels):
			m.sky = m.sky.cycleLabelMode()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		}
		if m.viewMode == ViewEvents {
			var cmd tea.Cmd
			m.events, cmd = m.events.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resize()
		if m.driver != nil {
			if err := m.driver.SetViewport(m.sky.CanvasViewport()); err != nil {
				m.lastErr = err
			}
		}

	case TickMsg:
		return m, tickCmd()

	case FrameMsg:
		m.snapshot = msg.Snapshot
		m.lastErr = msg.Snapshot.LastError
		if f := msg.Snapshot.Frame; f != nil {
			m.sky = m.sky.SetFrame(f)
			m.palettes = m.palettes.SetFrame(f)
		}
		m.events = m.events.SetEvents(msg.Snapshot.Events)

	case ErrorMsg:
		m.lastErr = msg.Error
	}
	return m, nil
}

// scaleTime multiplies the clock rate, clamped to [minTimeScale, maxTimeScale].
func (m *Model) scaleTime(factor float64) {
	if m.clock == nil {
		return
	}
	s := m.clock.Scale() * factor
	s = min(max(s, minTimeScale), maxTimeScale)
	m.clock.SetScale(s)
}

// chromeHeight is the number of lines used by header and footer.
func (m Model) chromeHeight() int {
	return 2 + 1 + lipgloss.Height(m.help.View(m.keys))
}

func (m *Model) resize() {
	h := max(m.height-m.chromeHeight(), 0)
	m.sky = m.sky.SetSize(m.width, h)
	m.palettes = m.palettes.SetSize(m.width, h)
	m.events = m.events.SetSize(m.width, h)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewSky:
		content = m.sky.View()
	case ViewPalettes:
		content = m.palettes.View()
	case ViewEvents:
		content = m.events.View()
	}
	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := m.renderTitle("  ls-skydome ")
	sub := dimStyle.Render(fmt.Sprintf(" v%s", version.Version))
	if m.observer != "" {
		sub += dimStyle.Render(" · " + m.observer)
	}
	return title + sub + "\n" + m.renderTabs()
}

// renderTitle paints text with a horizontal gradient sampled from the current
// sky, horizon on the left to zenith on the right.
func (m Model) renderTitle(text string) string {
	stops := []colorful.Color{
		palette.FromHex(0x3b82f6), palette.FromHex(0x8b5cf6), palette.FromHex(0xd946ef),
	}
	if f := m.snapshot.Frame; f != nil {
		stops = []colorful.Color{f.Colors.Horizon, f.Colors.Low, f.Colors.Mid, f.Colors.Upper}
	}
	var b strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		c := gradientColor(stops, float64(i)/float64(max(len(runes)-1, 1)))
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

// gradientColor samples a piecewise Lab gradient at x in [0,1]. Dark skies
// are lifted so the title stays readable.
func gradientColor(stops []colorful.Color, x float64) colorful.Color {
	c := stops[0]
	if len(stops) > 1 {
		seg := x * float64(len(stops)-1)
		i := min(int(seg), len(stops)-2)
		c = stops[i].BlendLab(stops[i+1], seg-float64(i)).Clamped()
	}
	if l, a, bb := c.Lab(); l < 0.55 {
		c = colorful.Lab(0.55, a, bb).Clamped()
	}
	return c
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Sky", "[2] Palettes", "[3] Events"}
	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeTab.Render(tab))
		} else {
			parts = append(parts, tabStyle.Render(tab))
		}
	}
	return " " + strings.Join(parts, " ")
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.lastErr != nil:
		status = errorStyle.Render("ERROR: " + m.lastErr.Error())
	case m.snapshot.Frame != nil:
		f := m.snapshot.Frame
		status = accentStyle.Render(f.SkyTime.UTC().Format("2006-01-02 15:04 MST"))
		if m.clock != nil {
			status += dimStyle.Render(fmt.Sprintf(" ×%g", m.clock.Scale()))
		}
		status += dimStyle.Render(fmt.Sprintf(" | frame %d (%s)", f.Number, m.snapshot.FrameDuration.Round(time.Microsecond)))
	default:
		status = dimStyle.Render("Waiting for data...")
	}
	return "  " + status + "\n" + m.help.View(m.keys)
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SendFrame creates a command that delivers a snapshot to the model.
func SendFrame(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return FrameMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that reports an error.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
