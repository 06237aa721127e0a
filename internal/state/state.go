// Package state provides thread-safe state management for the render loop.
package state

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-skydome/internal/astro"
	"github.com/litescript/ls-skydome/internal/palette"
	"github.com/litescript/ls-skydome/internal/starfield"
)

// EventType represents the type of sky change event.
type EventType string

const (
	EventPaletteChange EventType = "PALETTE_CHANGE"
	EventSunrise       EventType = "SUNRISE"
	EventSunset        EventType = "SUNSET"
	EventMoonPhase     EventType = "MOON_PHASE"
)

// Event represents a change between two consecutive frames.
type Event struct {
	ID          uuid.UUID       `json:"id"`
	Type        EventType       `json:"type"`
	Timestamp   time.Time       `json:"timestamp"` // sky clock time
	SunAltDeg   float64         `json:"sun_alt_deg"`
	OldPalette  palette.Name    `json:"old_palette,omitempty"`
	NewPalette  palette.Name    `json:"new_palette,omitempty"`
	OldPhase    astro.PhaseName `json:"old_phase,omitempty"`
	NewPhase    astro.PhaseName `json:"new_phase,omitempty"`
	FrameNumber uint64          `json:"frame"`
}

// FrameState is everything computed for one frame.
type FrameState struct {
	Number    uint64
	SkyTime   time.Time
	SunAltDeg float64
	Observer  starfield.ObserverFrame
	Colors    palette.BlendedColorSet
	Stars     *starfield.Frame
	Moon      astro.MoonState
}

// Dominant returns the palette the frame's colors are closest to.
func (f *FrameState) Dominant() palette.Name {
	return f.Colors.Dominant()
}

// Manager handles all shared render state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	sessionID uuid.UUID

	// Current state
	current       *FrameState
	lastUpdate    time.Time
	lastError     error
	frameDuration time.Duration
	frames        uint64
	errors        uint64

	// Sun altitude history for the sparkline (oldest first)
	history       []astro.AltitudeSample
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen   int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen:   120,
		MaxEvents:       50,
		RefreshInterval: 100 * time.Millisecond,
	}
}

// NewManager creates a new state manager with a fresh session ID.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		sessionID:       uuid.New(),
		maxHistoryLen:   cfg.MaxHistoryLen,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
	}
}

// SessionID identifies this run in logs and exported events.
func (m *Manager) SessionID() uuid.UUID {
	return m.sessionID
}

// Update atomically records a frame. A nil frame records only the error and
// timing; the previous frame stays current.
func (m *Manager) Update(frame *FrameState, frameDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = time.Now()
	m.lastError = err
	m.frameDuration = frameDuration
	if err != nil {
		m.errors++
	}

	if frame == nil {
		return
	}

	m.frames++
	frame.Number = m.frames

	// Detect events before updating current state
	if m.current != nil {
		m.detectEvents(m.current, frame)
	}
	m.current = frame

	if m.maxHistoryLen > 0 {
		m.history = append(m.history, astro.AltitudeSample{Time: frame.SkyTime, AltDeg: frame.SunAltDeg})
		if len(m.history) > m.maxHistoryLen {
			m.history = m.history[1:]
		}
	}
}

// detectEvents compares two consecutive frames and logs what changed.
func (m *Manager) detectEvents(prev, next *FrameState) {
	base := Event{
		Timestamp:   next.SkyTime,
		SunAltDeg:   next.SunAltDeg,
		FrameNumber: next.Number,
	}

	if old, cur := prev.Dominant(), next.Dominant(); old != cur {
		e := base
		e.Type = EventPaletteChange
		e.OldPalette, e.NewPalette = old, cur
		m.addEvent(e)
	}

	rise := astro.SunriseAltitude
	switch {
	case prev.SunAltDeg < rise && next.SunAltDeg >= rise:
		e := base
		e.Type = EventSunrise
		m.addEvent(e)
	case prev.SunAltDeg >= rise && next.SunAltDeg < rise:
		e := base
		e.Type = EventSunset
		m.addEvent(e)
	}

	if prev.Moon.Phase != "" && prev.Moon.Phase != next.Moon.Phase {
		e := base
		e.Type = EventMoonPhase
		e.OldPhase, e.NewPhase = prev.Moon.Phase, next.Moon.Phase
		m.addEvent(e)
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	e.ID = uuid.New()
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	SessionID     uuid.UUID
	Frame         *FrameState
	LastUpdate    time.Time
	LastError     error
	FrameDuration time.Duration
	Frames        uint64
	Errors        uint64
	History       []astro.AltitudeSample
	Events        []Event
}

// Snapshot returns a consistent snapshot of current state. The frame pointer
// is shared; frames are never mutated after Update.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist := make([]astro.AltitudeSample, len(m.history))
	copy(hist, m.history)

	return Snapshot{
		SessionID:     m.sessionID,
		Frame:         m.current,
		LastUpdate:    m.lastUpdate,
		LastError:     m.lastError,
		FrameDuration: m.frameDuration,
		Frames:        m.frames,
		Errors:        m.errors,
		History:       hist,
		Events:        m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once a frame has been recorded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
