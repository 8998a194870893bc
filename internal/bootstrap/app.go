package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
	"github.com/yanqian/trafficai/internal/infra/config"
	"github.com/yanqian/trafficai/internal/infra/live"
	"github.com/yanqian/trafficai/internal/infra/page"
)

// App runs the dashboard controller next to the HTTP server.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	dashboard dashboard.Service
	hub       *live.Hub
}

// NewApp is used by Wire to build the runnable app. It also routes element
// state changes to connected pages.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, svc dashboard.Service, hub *live.Hub, state *page.State) *App {
	state.Observe(func(snap page.Snapshot) {
		hub.Broadcast(live.Event{Type: live.EventState, Data: snap})
	})
	hub.OnConnect(func() []live.Event {
		events := []live.Event{{Type: live.EventState, Data: state.Snapshot()}}
		if frame, ok := svc.LastFrame(); ok {
			events = append(events, live.Event{Type: live.EventFrame, Data: frame})
		}
		return events
	})
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, dashboard: svc, hub: hub}
}

// Run starts the controller and the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	taskCtx, cancelTasks := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelTasks()
	if err := a.dashboard.Start(taskCtx); err != nil {
		return err
	}
	defer a.dashboard.Stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
		a.dashboard.Stop()
		a.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
