package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeToggle struct {
	mu    sync.Mutex
	dark  bool
	label string
}

func (f *fakeToggle) DarkMode() bool { f.mu.Lock(); defer f.mu.Unlock(); return f.dark }
func (f *fakeToggle) Label() string  { f.mu.Lock(); defer f.mu.Unlock(); return f.label }

func (f *fakeToggle) SetTheme(dark bool, label string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dark, f.label = dark, label
}

type fakeDisplay struct {
	mu        sync.Mutex
	text      string
	color     string
	opacities []float64
}

func (f *fakeDisplay) Text() string          { f.mu.Lock(); defer f.mu.Unlock(); return f.text }
func (f *fakeDisplay) SetText(text string)   { f.mu.Lock(); defer f.mu.Unlock(); f.text = text }
func (f *fakeDisplay) SetColor(color string) { f.mu.Lock(); defer f.mu.Unlock(); f.color = color }
func (f *fakeDisplay) SetOpacity(o float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opacities = append(f.opacities, o)
}

func (f *fakeDisplay) Color() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.color
}

func (f *fakeDisplay) Opacities() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]float64(nil), f.opacities...)
}

type drawOp struct {
	kind  string
	args  []float64
	color string
}

type fakeCanvas struct {
	mu     sync.Mutex
	width  int
	height int
	ops    []drawOp
}

func (f *fakeCanvas) SetSize(width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width, f.height = width, height
}

func (f *fakeCanvas) Size() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width, f.height
}

func (f *fakeCanvas) FillRect(x, y, w, h float64, color string) {
	f.record(drawOp{kind: "rect", args: []float64{x, y, w, h}, color: color})
}

func (f *fakeCanvas) StrokeLine(x1, y1, x2, y2, width float64, color string) {
	f.record(drawOp{kind: "line", args: []float64{x1, y1, x2, y2, width}, color: color})
}

func (f *fakeCanvas) FillCircle(cx, cy, r float64, color string) {
	f.record(drawOp{kind: "circle", args: []float64{cx, cy, r}, color: color})
}

func (f *fakeCanvas) record(op drawOp) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, op)
}

func (f *fakeCanvas) Ops() []drawOp {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]drawOp(nil), f.ops...)
}

func (f *fakeCanvas) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = nil
}

type fakeChoice struct{ value string }

func (f *fakeChoice) Value() string { return f.value }

type fakeScroller struct {
	mu       sync.Mutex
	targets  map[string]bool
	scrolled []string
}

func (f *fakeScroller) HasTarget(id string) bool { return f.targets[id] }
func (f *fakeScroller) ScrollIntoView(id string, smooth bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if smooth {
		f.scrolled = append(f.scrolled, id)
	}
}

type fakeStore struct {
	mu      sync.Mutex
	values  map[string]string
	getErr  error
	setErr  error
	setCall int
}

func newFakeStore() *fakeStore { return &fakeStore{values: map[string]string{}} }

func (f *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCall++
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func (f *fakeStore) value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

type fakeScheme struct{ dark bool }

func (f fakeScheme) PrefersDark(context.Context) bool { return f.dark }

type fakeChooser struct {
	mu      sync.Mutex
	results []error
	device  Device
	calls   int
	opts    []RequestOptions
}

func (f *fakeChooser) RequestDevice(_ context.Context, opts RequestOptions) (Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.opts = append(f.opts, opts)
	if len(f.results) > 0 {
		err := f.results[0]
		f.results = f.results[1:]
		if err != nil {
			return Device{}, err
		}
	}
	return f.device, nil
}

type fakeSpeech struct {
	err  error
	lang string
}

func (f *fakeSpeech) Start(_ context.Context, lang string) error {
	f.lang = lang
	return f.err
}

type fakeNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func (f *fakeNotifier) Notify(_ context.Context, n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
}

func (f *fakeNotifier) All() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notification(nil), f.items...)
}

// scriptedRandom replays fixed draws and falls back to a seeded generator.
type scriptedRandom struct {
	mu     sync.Mutex
	ints   []int
	floats []float64
	rng    *rand.Rand
}

func newScriptedRandom() *scriptedRandom {
	return &scriptedRandom{rng: rand.New(rand.NewPCG(1, 2))}
}

func (r *scriptedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) > 0 {
		v := r.ints[0]
		r.ints = r.ints[1:]
		return v % n
	}
	return r.rng.IntN(n)
}

func (r *scriptedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) > 0 {
		v := r.floats[0]
		r.floats = r.floats[1:]
		return v
	}
	return r.rng.Float64()
}

type failingTraffic struct{ err error }

func (f failingTraffic) Fetch(context.Context) (TrafficLevel, error) {
	return TrafficLevel{}, f.err
}

type recordingSink struct {
	mu     sync.Mutex
	frames []MapFrame
	err    error
}

func (r *recordingSink) PublishFrame(_ context.Context, frame MapFrame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
	return r.err
}

func (r *recordingSink) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

type harness struct {
	toggle   *fakeToggle
	display  *fakeDisplay
	canvas   *fakeCanvas
	choice   *fakeChoice
	scroller *fakeScroller
	store    *fakeStore
	chooser  *fakeChooser
	speech   *fakeSpeech
	notifier *fakeNotifier
	random   *scriptedRandom
	sink     *recordingSink
	scheme   fakeScheme
	cfg      Config
}

func newHarness() *harness {
	cfg := DefaultConfig()
	cfg.FadeDelay = 0
	cfg.PairingBackoff = 0
	return &harness{
		toggle:   &fakeToggle{},
		display:  &fakeDisplay{},
		canvas:   &fakeCanvas{},
		choice:   &fakeChoice{value: "Accidents"},
		scroller: &fakeScroller{targets: map[string]bool{"map": true, "features": true}},
		store:    newFakeStore(),
		chooser:  &fakeChooser{device: Device{ID: "dev-1", Name: "Model 3"}},
		speech:   &fakeSpeech{},
		notifier: &fakeNotifier{},
		random:   newScriptedRandom(),
		sink:     &recordingSink{},
		cfg:      cfg,
	}
}

func (h *harness) elements() Elements {
	return Elements{Theme: h.toggle, Traffic: h.display, Map: h.canvas, Alerts: h.choice, Scroller: h.scroller}
}

func (h *harness) capabilities() Capabilities {
	return Capabilities{
		Storage:     h.store,
		ColorScheme: h.scheme,
		Chooser:     h.chooser,
		Speech:      h.speech,
		Notifier:    h.notifier,
		Random:      h.random,
		Frames:      h.sink,
	}
}

func (h *harness) build(t *testing.T) *service {
	t.Helper()
	svc, err := newService(h.cfg, h.elements(), h.capabilities(), discardLogger())
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var errChooserCancelled = errors.New("NotFoundError: user cancelled the requestDevice() chooser")
