package dashboard

import "context"

// ThemeToggle is the light/dark switch and the page styling it controls.
type ThemeToggle interface {
	DarkMode() bool
	// SetTheme applies the styling and the toggle label together.
	SetTheme(dark bool, label string)
}

// TextDisplay is the traffic readout.
type TextDisplay interface {
	Text() string
	SetText(text string)
	SetColor(color string)
	SetOpacity(opacity float64)
}

// Canvas is a fixed size drawing surface.
type Canvas interface {
	SetSize(width, height int)
	Size() (width, height int)
	FillRect(x, y, w, h float64, color string)
	StrokeLine(x1, y1, x2, y2, width float64, color string)
	FillCircle(cx, cy, r float64, color string)
}

// ChoiceControl is the alert type selector.
type ChoiceControl interface {
	Value() string
}

// Scroller animates the viewport to in-page targets.
type Scroller interface {
	HasTarget(id string) bool
	ScrollIntoView(id string, smooth bool)
}

// PreferenceStore persists raw string preferences by key.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// ColorSchemeQuery reports the operating system colour scheme preference.
type ColorSchemeQuery interface {
	PrefersDark(ctx context.Context) bool
}

// DeviceChooser prompts for a nearby device and resolves with its descriptor.
type DeviceChooser interface {
	RequestDevice(ctx context.Context, opts RequestOptions) (Device, error)
}

// SpeechRecognizer starts a recognition session. Results are delivered
// through Service.HandleTranscript.
type SpeechRecognizer interface {
	Start(ctx context.Context, lang string) error
}

// Notifier shows a notification to the user. It must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// RandomSource backs every uniform draw the controller makes. It must be
// safe for concurrent use.
type RandomSource interface {
	IntN(n int) int
	Float64() float64
}

// TrafficSource is the simulated traffic fetch.
type TrafficSource interface {
	Fetch(ctx context.Context) (TrafficLevel, error)
}

// FrameSink receives every rendered map frame.
type FrameSink interface {
	PublishFrame(ctx context.Context, frame MapFrame) error
}

// Elements are the page bindings the controller attaches to at start.
type Elements struct {
	Theme    ThemeToggle
	Traffic  TextDisplay
	Map      Canvas
	Alerts   ChoiceControl
	Scroller Scroller
}

// Capabilities are the platform collaborators. Traffic and Frames are optional.
type Capabilities struct {
	Storage     PreferenceStore
	ColorScheme ColorSchemeQuery
	Chooser     DeviceChooser
	Speech      SpeechRecognizer
	Notifier    Notifier
	Random      RandomSource
	Traffic     TrafficSource
	Frames      FrameSink
}

// Service is the UI event controller surface used by transports.
type Service interface {
	Start(ctx context.Context) error
	Stop()

	ApplyTheme(ctx context.Context, mode ThemeMode)
	ToggleTheme(ctx context.Context) ThemeMode
	CurrentTheme() ThemeMode

	RefreshTraffic(ctx context.Context) error
	DrawMap(ctx context.Context) MapFrame
	LastFrame() (MapFrame, bool)

	ConnectVehicle(ctx context.Context) (Device, error)
	OptimalRoute(ctx context.Context) Route

	StartVoice(ctx context.Context) error
	HandleTranscript(ctx context.Context, transcript string) Command

	SetAlert(ctx context.Context) string
	ScrollTo(ctx context.Context, href string) bool
	Login(ctx context.Context)
}
