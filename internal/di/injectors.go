//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"dwd/internal"
	"dwd/internal/controllers"
	"dwd/internal/providers"
	"dwd/internal/services"
	"dwd/internal/structures"
	"dwd/internal/watch"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewSmsProvider,

		watch.NewClock,
		watch.NewZstdCompressor,
		watch.NewFileManager,
		watch.NewTailer,
		watch.NewWatcher,
		watch.NewScheduler,

		services.NewStatusLog,
		services.NewSubscriptionStore,
		services.NewNotifier,

		wire.Bind(new(watch.Store), new(services.SubscriptionStoreInterface)),
		wire.Bind(new(watch.LineHandler), new(services.NotifierInterface)),

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
