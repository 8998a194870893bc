package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lucsky/cuid"

	apperrors "github.com/yanqian/trafficai/pkg/errors"
	"github.com/yanqian/trafficai/pkg/util"
)

type service struct {
	cfg     Config
	el      Elements
	caps    Capabilities
	traffic TrafficSource
	logger  *slog.Logger
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
	newID   func() string

	// mu serializes handler bodies the way a single UI thread would.
	mu            sync.Mutex
	themeVolatile bool
	frameSeq      int64
	lastFrame     MapFrame
	hasFrame      bool

	lifecycle sync.Mutex
	tasks     []*periodicTask
}

// NewService binds the controller to its page elements and platform capabilities.
func NewService(cfg Config, el Elements, caps Capabilities, logger *slog.Logger) (Service, error) {
	svc, err := newService(cfg, el, caps, logger)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func newService(cfg Config, el Elements, caps Capabilities, logger *slog.Logger) (*service, error) {
	if err := cfg.validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfig, "invalid dashboard config", err)
	}
	if missing := missingBindings(el, caps); len(missing) > 0 {
		return nil, apperrors.Wrap(apperrors.CodeConfig, "missing dashboard bindings: "+strings.Join(missing, ", "), nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	traffic := caps.Traffic
	if traffic == nil {
		traffic = randomTraffic{rnd: caps.Random}
	}
	el.Map.SetSize(cfg.CanvasWidth, cfg.CanvasHeight)
	return &service{
		cfg:     cfg,
		el:      el,
		caps:    caps,
		traffic: traffic,
		logger:  logger.With("component", "dashboard.service"),
		now:     util.NowUTC,
		sleep:   util.Sleep,
		newID:   cuid.New,
	}, nil
}

func missingBindings(el Elements, caps Capabilities) []string {
	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("element toggle-mode", el.Theme != nil)
	check("element traffic-display", el.Traffic != nil)
	check("element traffic-map", el.Map != nil)
	check("element alert-options", el.Alerts != nil)
	check("element navigation", el.Scroller != nil)
	check("capability storage", caps.Storage != nil)
	check("capability color-scheme", caps.ColorScheme != nil)
	check("capability device-chooser", caps.Chooser != nil)
	check("capability speech-recognition", caps.Speech != nil)
	check("capability notifier", caps.Notifier != nil)
	check("capability random", caps.Random != nil)
	return missing
}

// Start applies the initial theme and launches the traffic and map tasks.
func (s *service) Start(ctx context.Context) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	if len(s.tasks) > 0 {
		return apperrors.Wrap(apperrors.CodeAlreadyStarted, "dashboard already started", nil)
	}
	s.logger.Info("TrafficAI loaded")

	s.initTheme(ctx)

	s.tasks = []*periodicTask{
		startPeriodic(ctx, s.cfg.TrafficInterval, func(ctx context.Context) {
			_ = s.RefreshTraffic(ctx)
		}),
		startPeriodic(ctx, s.cfg.MapInterval, func(ctx context.Context) {
			s.DrawMap(ctx)
		}),
	}
	s.logger.Info("dashboard fully loaded",
		"traffic_interval", s.cfg.TrafficInterval.String(),
		"map_interval", s.cfg.MapInterval.String(),
	)
	return nil
}

// Stop cancels the periodic tasks and waits for them to return.
func (s *service) Stop() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	for _, task := range s.tasks {
		task.stop()
	}
	if len(s.tasks) > 0 {
		s.logger.Info("dashboard stopped")
	}
	s.tasks = nil
}

func (s *service) notifyf(ctx context.Context, level NotificationLevel, format string, args ...any) {
	s.notify(ctx, level, fmt.Sprintf(format, args...))
}

func (s *service) notify(ctx context.Context, level NotificationLevel, message string) {
	s.caps.Notifier.Notify(ctx, Notification{
		ID:        s.newID(),
		Level:     level,
		Message:   message,
		CreatedAt: s.now(),
	})
}

// Login is a placeholder until authentication exists.
func (s *service) Login(ctx context.Context) {
	s.notify(ctx, LevelInfo, msgLoginSoon)
}

var _ Service = (*service)(nil)
