package dashboard

import "time"

// ThemeMode is the persisted colour scheme of the page.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ParseThemeMode accepts only the two known modes.
func ParseThemeMode(raw string) (ThemeMode, bool) {
	switch ThemeMode(raw) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return "", false
	}
}

// Toggled returns the opposite mode.
func (m ThemeMode) Toggled() ThemeMode {
	if m == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ToggleLabel is the caption shown on the toggle while m is active.
func (m ThemeMode) ToggleLabel() string {
	if m == ThemeDark {
		return "☀️ Light Mode"
	}
	return "🌙 Dark Mode"
}

// TrafficLevel pairs a congestion label with its display colour.
type TrafficLevel struct {
	Status string `json:"status"`
	Color  string `json:"color"`
}

// TrafficLevels is the full set of simulated readings.
var TrafficLevels = []TrafficLevel{
	{Status: "🚗 Low Traffic", Color: "green"},
	{Status: "🚙 Moderate Traffic", Color: "orange"},
	{Status: "🚛🚕 Heavy Traffic", Color: "red"},
}

// DisplayText renders the reading the way the traffic display shows it.
func (l TrafficLevel) DisplayText() string {
	return "Current Traffic: " + l.Status
}

// CongestionColors are the colours a map point may take.
var CongestionColors = []string{"green", "orange", "red"}

// TrafficPoint is one congestion dot on the map.
type TrafficPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
}

// MapFrame is the result of one full redraw. Nothing carries over between frames.
type MapFrame struct {
	Seq        int64          `json:"seq"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Radius     float64        `json:"radius"`
	Points     []TrafficPoint `json:"points"`
	RenderedAt time.Time      `json:"renderedAt"`
}

// Route is a canned optimizer suggestion.
type Route struct {
	Type string `json:"type"`
	Time string `json:"time"`
}

// Routes is the fixed set the optimizer draws from.
var Routes = []Route{
	{Type: "Fastest", Time: "15 min"},
	{Type: "Eco-Friendly", Time: "18 min"},
	{Type: "Shortest", Time: "17 min"},
	{Type: "Traffic-Free", Time: "16 min"},
}

// Device is the descriptor a device chooser resolves with.
type Device struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RequestOptions mirrors the filter handed to the device chooser.
type RequestOptions struct {
	AcceptAllDevices bool `json:"acceptAllDevices"`
}

// NotificationLevel grades a user facing notification.
type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
)

// Notification is a blocking message for the user.
type Notification struct {
	ID        string            `json:"id"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Command is the branch a voice transcript dispatches to.
type Command string

const (
	CommandTraffic Command = "traffic"
	CommandRoute   Command = "route"
	CommandConnect Command = "connect"
	CommandUnknown Command = "unknown"
)

// User facing messages.
const (
	msgConnected        = "✅ Connected to %s"
	msgConnectFailed    = "❌ Connection failed! Please try again."
	msgRouteSelected    = "🚀 AI Selected Route: %s (%s)"
	msgCurrentTraffic   = "🚦 Current Traffic: "
	msgNotUnderstood    = "🤖 AI: Sorry, I didn't understand that command."
	msgVoiceUnavailable = "🎙️ Voice recognition unavailable."
	msgAlertSet         = "🔔 Alert set for: %s"
	msgLoginSoon        = "🚀 Login functionality coming soon!"
)
