package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-skydome/internal/state"
)

// EventsViewModel shows the sky event log, newest first.
type EventsViewModel struct {
	width  int
	height int
	table  table.Model
	count  int
}

// NewEventsViewModel creates the event log view.
func NewEventsViewModel() EventsViewModel {
	t := table.New(
		table.WithColumns(eventColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	return EventsViewModel{table: t}
}

func eventColumns(width int) []table.Column {
	detail := max(width-16-15-10-8, 12)
	return []table.Column{
		{Title: "Sky time", Width: 16},
		{Title: "Event", Width: 15},
		{Title: "Sun", Width: 8},
		{Title: "Detail", Width: detail},
	}
}

// SetSize updates the view size.
func (m EventsViewModel) SetSize(width, height int) EventsViewModel {
	m.width = width
	m.height = height
	m.table.SetColumns(eventColumns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(max(height-2, 3))
	return m
}

// SetEvents replaces the rows.
func (m EventsViewModel) SetEvents(events []state.Event) EventsViewModel {
	rows := make([]table.Row, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		rows = append(rows, eventRow(events[i]))
	}
	m.table.SetRows(rows)
	m.count = len(events)
	return m
}

func eventRow(e state.Event) table.Row {
	var detail string
	switch e.Type {
	case state.EventPaletteChange:
		detail = fmt.Sprintf("%s → %s", e.OldPalette, e.NewPalette)
	case state.EventMoonPhase:
		detail = fmt.Sprintf("%s → %s", e.OldPhase, e.NewPhase)
	default:
		detail = fmt.Sprintf("frame %d", e.FrameNumber)
	}
	return table.Row{
		e.Timestamp.UTC().Format("01-02 15:04:05"),
		string(e.Type),
		fmt.Sprintf("%+.2f°", e.SunAltDeg),
		detail,
	}
}

// Update passes navigation keys to the table.
func (m EventsViewModel) Update(msg tea.Msg) (EventsViewModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the event log.
func (m EventsViewModel) View() string {
	title := titleStyle.Render("Events") + dimStyle.Render(fmt.Sprintf("  %d logged", m.count))
	if m.count == 0 {
		return title + "\n\n" + dimStyle.Render("No events yet. Speed up time with + to see transitions.")
	}
	return title + "\n" + m.table.View()
}
