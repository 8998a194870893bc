//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/trafficai/internal/bootstrap"
	"github.com/yanqian/trafficai/internal/domain/dashboard"
	"github.com/yanqian/trafficai/internal/infra/config"
	"github.com/yanqian/trafficai/internal/infra/page"
	httpiface "github.com/yanqian/trafficai/internal/interface/http"
	"github.com/yanqian/trafficai/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideDashboardConfig,
		provideLayout,
		page.NewState,
		provideRaster,
		provideHub,
		providePreferenceStore,
		provideArchive,
		provideRecorder,
		provideNotifier,
		provideRoster,
		provideElements,
		provideCapabilities,
		dashboard.NewService,
		provideHandlerDependencies,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
