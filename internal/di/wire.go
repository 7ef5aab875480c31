//go:build wireinject
// +build wireinject

package di

import (
	"SentiCast/pkg/config"
	"SentiCast/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideRedisCache,
		ProvideCacheService,
		ProvideRedisClient,

		// Repositories
		ProvideStorage,
		ProvidePublisher,
		ProvideHistoryStore,
		ProvideAuditStore,
		ProvideMentionStream,

		// Domain services
		ProvideAnalyzer,
		ProvideScrubber,
		ProvideNotifier,
		ProvideEngine,

		// Use cases
		ProvideMentionProcessor,
		ProvideMentionCollector,
		ProvideKafkaMentionsHandler,
		ProvideForecastUseCase,
		ProvideHistoricalUseCase,
		ProvideTrendAggregator,
		ProvideOverviewUseCase,
		ProvideExportUseCase,
		ProvideJobQueue,

		// HTTP surface
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
