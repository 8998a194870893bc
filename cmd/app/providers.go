package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
	"github.com/yanqian/trafficai/internal/infra/canvas"
	"github.com/yanqian/trafficai/internal/infra/config"
	"github.com/yanqian/trafficai/internal/infra/events"
	"github.com/yanqian/trafficai/internal/infra/live"
	"github.com/yanqian/trafficai/internal/infra/page"
	"github.com/yanqian/trafficai/internal/infra/platform"
	"github.com/yanqian/trafficai/internal/infra/prefstore"
	"github.com/yanqian/trafficai/internal/infra/snapshot"
	httpiface "github.com/yanqian/trafficai/internal/interface/http"
)

const notificationHistory = 100

func provideDashboardConfig(cfg *config.Config) dashboard.Config {
	d := cfg.Dashboard
	return dashboard.Config{
		TrafficInterval: d.TrafficInterval,
		FadeDelay:       d.FadeDelay,
		MapInterval:     d.MapInterval,
		CanvasWidth:     d.CanvasWidth,
		CanvasHeight:    d.CanvasHeight,
		GridSpacing:     d.GridSpacing,
		GridOffset:      d.GridOffset,
		RoadWidth:       d.RoadWidth,
		PointCount:      d.PointCount,
		PointRadius:     d.PointRadius,
		Locale:          d.Locale,
		ThemeKey:        d.ThemeKey,
		AlertKey:        d.AlertKey,
		PairingAttempts: d.PairingAttempts,
		PairingBackoff:  d.PairingBackoff,
	}
}

func provideLayout(cfg *config.Config) (*page.Layout, error) {
	layout, err := page.LoadLayout(cfg.Dashboard.LayoutPath)
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return layout, nil
}

func provideRaster(cfg *config.Config) *canvas.Raster {
	return canvas.NewRaster(cfg.Dashboard.CanvasWidth, cfg.Dashboard.CanvasHeight)
}

func provideHub(cfg *config.Config, logger *slog.Logger) (*live.Hub, func()) {
	hub := live.NewHub(cfg.HTTP.AllowedOrigins, notificationHistory, logger)
	return hub, hub.Close
}

func providePreferenceStore(cfg *config.Config, logger *slog.Logger) (dashboard.PreferenceStore, func()) {
	if store, cleanup, ok := postgresPreferenceStore(cfg, logger); ok {
		return store, cleanup
	}
	if store, cleanup, ok := valkeyPreferenceStore(cfg, logger); ok {
		return store, cleanup
	}
	logger.Info("using in-memory preference store")
	return prefstore.NewMemoryStore(), func() {}
}

func postgresPreferenceStore(cfg *config.Config, logger *slog.Logger) (dashboard.PreferenceStore, func(), bool) {
	dsn := strings.TrimSpace(cfg.Storage.Postgres.DSN)
	if dsn == "" {
		return nil, nil, false
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, skipping postgres preferences", "error", err)
		return nil, nil, false
	}
	if cfg.Storage.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Storage.Postgres.MaxConns
	}
	if cfg.Storage.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Storage.Postgres.MinConns
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, skipping postgres preferences", "error", err)
		return nil, nil, false
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, skipping postgres preferences", "error", err)
		pool.Close()
		return nil, nil, false
	}
	store := prefstore.NewPostgresStore(pool)
	if err := store.Migrate(ctx); err != nil {
		logger.Error("preferences migration failed, skipping postgres preferences", "error", err)
		pool.Close()
		return nil, nil, false
	}
	logger.Info("postgres preference store enabled")
	return store, pool.Close, true
}

func valkeyPreferenceStore(cfg *config.Config, logger *slog.Logger) (dashboard.PreferenceStore, func(), bool) {
	if !cfg.Storage.Redis.Enabled {
		return nil, nil, false
	}
	opt, err := buildValkeyOptions(cfg.Storage.Redis.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, skipping valkey preferences", "error", err)
		return nil, nil, false
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, skipping valkey preferences", "error", err)
		return nil, nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, skipping valkey preferences", "error", err)
		client.Close()
		return nil, nil, false
	}
	logger.Info("valkey preference store enabled", "addr", cfg.Storage.Redis.Addr)
	return prefstore.NewValkeyStore(client, cfg.Storage.Prefix), client.Close, true
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideArchive(cfg *config.Config, logger *slog.Logger) snapshot.Archive {
	s := cfg.Snapshots
	if !s.Enabled {
		return snapshot.NewMemoryArchive()
	}
	archive, err := snapshot.NewObjectArchive(s.Endpoint, s.AccessKey, s.SecretKey, s.Bucket, s.Region, logger)
	if err != nil {
		logger.Error("failed to initialize object archive, keeping snapshots in memory", "error", err)
		return snapshot.NewMemoryArchive()
	}
	logger.Info("map snapshots archived to object storage", "bucket", s.Bucket, "key", s.Key)
	return archive
}

func provideRecorder(cfg *config.Config, raster *canvas.Raster, archive snapshot.Archive) *snapshot.Recorder {
	return snapshot.NewRecorder(raster, archive, cfg.Snapshots.Key)
}

func provideNotifier(cfg *config.Config, hub *live.Hub, logger *slog.Logger) (dashboard.Notifier, func()) {
	k := cfg.Events.Kafka
	if !k.Enabled {
		return hub, func() {}
	}
	stream, err := events.NewKafkaNotifier(k.Brokers, k.Topic, logger)
	if err != nil {
		logger.Error("kafka unavailable, notifications stay on the page only", "error", err)
		return hub, func() {}
	}
	cleanup := func() {
		if err := stream.Close(); err != nil {
			logger.Warn("close kafka notifier failed", "error", err)
		}
	}
	return events.Fanout{hub, stream}, cleanup
}

func provideRoster(cfg *config.Config, logger *slog.Logger) *platform.Roster {
	devices := make([]dashboard.Device, 0, len(cfg.Platform.Devices))
	for _, d := range cfg.Platform.Devices {
		devices = append(devices, dashboard.Device{ID: d.ID, Name: d.Name})
	}
	if len(devices) == 0 {
		devices = platform.SimulatedVehicles(cfg.Platform.SimulatedDevices)
	}
	return platform.NewRoster(cfg.Platform.Bluetooth, devices, logger)
}

func provideElements(state *page.State, raster *canvas.Raster) dashboard.Elements {
	return dashboard.Elements{
		Theme:    state,
		Traffic:  state,
		Map:      raster,
		Alerts:   state,
		Scroller: state,
	}
}

func provideCapabilities(
	cfg *config.Config,
	store dashboard.PreferenceStore,
	roster *platform.Roster,
	hub *live.Hub,
	notifier dashboard.Notifier,
	recorder *snapshot.Recorder,
) dashboard.Capabilities {
	// The recorder goes first so the image exists before pages hear about the frame.
	return dashboard.Capabilities{
		Storage:     store,
		ColorScheme: platform.NewStaticColorScheme(cfg.Platform.ColorScheme),
		Chooser:     roster,
		Speech:      hub,
		Notifier:    notifier,
		Random:      platform.NewRandom(),
		Frames:      snapshot.Fanout{recorder, hub},
	}
}

func provideHandlerDependencies(
	svc dashboard.Service,
	state *page.State,
	recorder *snapshot.Recorder,
	hub *live.Hub,
	layout *page.Layout,
) httpiface.Dependencies {
	return httpiface.Dependencies{
		Dashboard:     svc,
		State:         state,
		Images:        recorder,
		Notifications: hub,
		Socket:        hub,
		Layout:        layout,
	}
}
