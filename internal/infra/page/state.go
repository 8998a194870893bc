package page

import (
	"sync"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
)

// Snapshot is the rendered state of the bound elements.
type Snapshot struct {
	Version        int64   `json:"version"`
	DarkMode       bool    `json:"darkMode"`
	ToggleLabel    string  `json:"toggleLabel"`
	TrafficText    string  `json:"trafficText"`
	TrafficColor   string  `json:"trafficColor"`
	TrafficOpacity float64 `json:"trafficOpacity"`
	AlertType      string  `json:"alertType"`
	ScrollTarget   string  `json:"scrollTarget,omitempty"`
	ScrollSeq      int64   `json:"scrollSeq"`
}

// State holds the element values the page renders. Every mutation bumps the
// version and is reported to the observer.
type State struct {
	mu       sync.Mutex
	layout   *Layout
	snap     Snapshot
	observer func(Snapshot)
}

// NewState binds to a validated layout. The alert selector starts on its first option.
func NewState(layout *Layout) *State {
	s := &State{layout: layout}
	s.snap.ToggleLabel = dashboard.ThemeLight.ToggleLabel()
	s.snap.TrafficOpacity = 1
	if len(layout.AlertOptions) > 0 {
		s.snap.AlertType = layout.AlertOptions[0]
	}
	return s
}

// Observe registers fn to receive a snapshot after every change.
func (s *State) Observe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *State) update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.snap)
	s.snap.Version++
	snap, observer := s.snap, s.observer
	s.mu.Unlock()
	if observer != nil {
		observer(snap)
	}
}

func (s *State) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.DarkMode
}

// SetTheme switches the styling and relabels the toggle as one change.
func (s *State) SetTheme(dark bool, label string) {
	s.update(func(snap *Snapshot) {
		snap.DarkMode = dark
		snap.ToggleLabel = label
	})
}

func (s *State) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.TrafficText
}

func (s *State) SetText(text string) {
	s.update(func(snap *Snapshot) { snap.TrafficText = text })
}

func (s *State) SetColor(color string) {
	s.update(func(snap *Snapshot) { snap.TrafficColor = color })
}

func (s *State) SetOpacity(opacity float64) {
	s.update(func(snap *Snapshot) { snap.TrafficOpacity = opacity })
}

// Value is the selected alert type.
func (s *State) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.AlertType
}

// Select mirrors a selection made in the browser. Free text is accepted.
func (s *State) Select(value string) {
	s.update(func(snap *Snapshot) { snap.AlertType = value })
}

func (s *State) HasTarget(id string) bool {
	return s.layout.IDs[id]
}

// ScrollIntoView records the target so connected pages animate to it.
func (s *State) ScrollIntoView(id string, _ bool) {
	s.update(func(snap *Snapshot) {
		snap.ScrollTarget = id
		snap.ScrollSeq++
	})
}

var (
	_ dashboard.ThemeToggle   = (*State)(nil)
	_ dashboard.TextDisplay   = (*State)(nil)
	_ dashboard.ChoiceControl = (*State)(nil)
	_ dashboard.Scroller      = (*State)(nil)
)
