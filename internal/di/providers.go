package di

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"SentiCast/internal/domain/repository"
	domsvc "SentiCast/internal/domain/service"
	"SentiCast/internal/handler/api"
	mid "SentiCast/internal/middleware"
	internalrepo "SentiCast/internal/repository"
	icache "SentiCast/internal/service/cache"
	"SentiCast/internal/service/socialstream"
	"SentiCast/internal/services/forecast"
	"SentiCast/internal/services/notify"
	"SentiCast/internal/services/privacy"
	"SentiCast/internal/services/sentiment"
	"SentiCast/internal/usecase"
	pkgcache "SentiCast/pkg/cache"
	pkgch "SentiCast/pkg/clickhouse"
	"SentiCast/pkg/config"
	xhttp "SentiCast/pkg/http"
	pkgkafka "SentiCast/pkg/kafka"
	applogger "SentiCast/pkg/logger"
	"SentiCast/pkg/metrics"
	"SentiCast/pkg/queue"
	"SentiCast/pkg/server"

	"github.com/redis/go-redis/v9"
)

// ProvideLogger creates the process logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		if cfg.Environment == "production" {
			lc.Format = "json"
		} else {
			lc.Format = "console"
		}
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the
// sentiment schema exists.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	db := cfg.ClickHouse.Database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + db,
		"CREATE TABLE IF NOT EXISTS " + db + ".mention_events (ts DateTime, event_id String, source LowCardinality(String), author String, text String, label LowCardinality(String), score Float64, confidence Float64) ENGINE=MergeTree ORDER BY (ts, event_id)",
		"CREATE TABLE IF NOT EXISTS " + db + ".forecast_log (generated_at DateTime, horizon UInt8, trend LowCardinality(String), avg_confidence Float64, model_type LowCardinality(String), model_accuracy Float64) ENGINE=MergeTree ORDER BY generated_at",
		"CREATE TABLE IF NOT EXISTS " + db + ".anomaly_log (date Date, channel LowCardinality(String), observed Float64, expected Float64, deviation Float64, severity LowCardinality(String)) ENGINE=MergeTree ORDER BY (date, channel)",
		"CREATE TABLE IF NOT EXISTS " + db + ".training_runs (started_at DateTime, duration_ms UInt64, data_points UInt32, accuracy Float64, trigger LowCardinality(String)) ENGINE=MergeTree ORDER BY started_at",
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideRedisCache creates the redis object cache.
func ProvideRedisCache(cfg *config.Config) (*pkgcache.RedisCache, error) {
	host, port := splitHostPort(cfg.Redis.Addr)
	return pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
		pkgcache.WithRedisPool(cfg.Redis.PoolSize, 2, 4*time.Second),
		pkgcache.WithRedisPrefix("senticast:cache"),
	)
}

// ProvideCacheService layers an in-process LRU over redis.
func ProvideCacheService(rc *pkgcache.RedisCache) pkgcache.Service {
	return pkgcache.NewLayeredCache(rc, pkgcache.WithLayeredMemorySize(2048))
}

// ProvideRedisClient exposes the raw client for the job queue.
func ProvideRedisClient(rc *pkgcache.RedisCache) *redis.Client {
	return rc.Client()
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideStorage creates the ClickHouse mention store.
func ProvideStorage(chClient *pkgch.Client, cfg *config.Config) repository.Storage {
	return internalrepo.NewClickHouseStorage(chClient.DB(), cfg.ClickHouse.Database+".mention_events")
}

// ProvidePublisher creates the Kafka mention publisher.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideHistoryStore creates the read-side daily aggregate store.
func ProvideHistoryStore(chClient *pkgch.Client, cfg *config.Config, log *applogger.Logger) repository.HistoryStore {
	s := internalrepo.NewCHHistoryStore(chClient, cfg.ClickHouse.Database)
	s.SetLogger(log)
	return s
}

// ProvideAuditStore creates the forecast/anomaly/training audit store.
func ProvideAuditStore(chClient *pkgch.Client, cfg *config.Config) repository.AuditStore {
	return internalrepo.NewCHAuditStore(chClient, cfg.ClickHouse.Database)
}

// ProvideMentionStream creates the social firehose client. Deployments
// without websocket access fall back to REST polling.
func ProvideMentionStream(cfg *config.Config) repository.MentionStream {
	if cfg.Stream.WebSocketURL == "" && cfg.Stream.RestURL != "" {
		return socialstream.NewPoller(
			cfg.Stream.APIKey,
			cfg.Stream.RestURL,
			cfg.Stream.Sources,
			cfg.Stream.PollInterval,
		)
	}
	return socialstream.New(
		cfg.Stream.APIKey,
		cfg.Stream.WebSocketURL,
		cfg.Stream.Sources,
		cfg.Stream.ReconnectDelay,
		cfg.Stream.PingInterval,
		cfg.Stream.MockPerMinute,
	)
}

// ProvideAnalyzer creates the lexicon sentiment classifier.
func ProvideAnalyzer() domsvc.Analyzer {
	return sentiment.NewAnalyzer()
}

// ProvideScrubber creates the PII scrubber.
func ProvideScrubber(cfg *config.Config) domsvc.Scrubber {
	return privacy.NewScrubber(cfg.Privacy.Salt)
}

// ProvideNotifier creates the anomaly webhook.
func ProvideNotifier(cfg *config.Config, log *applogger.Logger) domsvc.Notifier {
	return notify.NewWebhook(cfg, log)
}

// ProvideEngine creates the forecast engine.
func ProvideEngine(cfg *config.Config, log *applogger.Logger) domsvc.Forecaster {
	return forecast.NewEngine(forecast.Config{
		Sequence: forecast.SequenceConfig{
			SeqLen:       cfg.Forecast.SequenceLength,
			Hidden:       cfg.Forecast.HiddenSize,
			Layers:       cfg.Forecast.Layers,
			Epochs:       cfg.Forecast.Epochs,
			BatchSize:    cfg.Forecast.BatchSize,
			LearningRate: cfg.Forecast.LearningRate,
			Dropout:      cfg.Forecast.Dropout,
			Seed:         cfg.Forecast.Seed,
		},
		SeasonalPeriod: cfg.Forecast.SeasonalPeriod,
		MaxHorizon:     cfg.Forecast.MaxHorizon,
	}, log)
}

// ProvideMentionProcessor creates the mention processor use case.
func ProvideMentionProcessor(
	pub repository.Publisher,
	store repository.Storage,
	m repository.Metrics,
	scrubber domsvc.Scrubber,
	analyzer domsvc.Analyzer,
	cfg *config.Config,
) *usecase.MentionProcessor {
	return usecase.NewMentionProcessor(
		pub,
		store,
		m,
		scrubber,
		analyzer,
		cfg.Backend.Type,
		cfg.Backend.BatchSize,
		cfg.Backend.BatchTimeout,
	)
}

// ProvideMentionCollector creates the collector with its pipeline.
func ProvideMentionCollector(
	stream repository.MentionStream,
	processor *usecase.MentionProcessor,
	m repository.Metrics,
) *usecase.MentionCollector {
	// Middleware pipeline between the firehose and the backend
	pipe := mid.NewMentionPipeline(processor, m,
		mid.WithMaxRPS(50),
		mid.WithBufferSize(2000),
	)
	return usecase.NewMentionCollector(stream, processor, m, pipe)
}

// ProvideKafkaMentionsHandler registers the consumer-side ingest handler.
func ProvideKafkaMentionsHandler(
	store repository.Storage,
	m repository.Metrics,
	scrubber domsvc.Scrubber,
	analyzer domsvc.Analyzer,
	cfg *config.Config,
) *usecase.KafkaMentionsHandler {
	return usecase.NewKafkaMentionsHandler(cfg.Kafka.Topic, store, m, scrubber, analyzer)
}

// ProvideForecastUseCase creates the forecast orchestration use case.
func ProvideForecastUseCase(
	history repository.HistoryStore,
	engine domsvc.Forecaster,
	audit repository.AuditStore,
	notifier domsvc.Notifier,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.ForecastUseCase {
	return usecase.NewForecastUseCase(history, engine, audit, notifier, log, cfg.Forecast.HistoryDays)
}

// ProvideHistoricalUseCase creates the historical aggregates use case.
func ProvideHistoricalUseCase(history repository.HistoryStore, cache pkgcache.Service, cfg *config.Config) *usecase.HistoricalUseCase {
	return usecase.NewHistoricalUseCase(history, cache, cfg.Cache.HistoricalTTL)
}

// ProvideTrendAggregator creates the trends/realtime aggregator.
func ProvideTrendAggregator(history repository.HistoryStore, storage repository.Storage, cache pkgcache.Service, m repository.Metrics, cfg *config.Config) *usecase.TrendAggregator {
	return usecase.NewTrendAggregator(history, storage, cache, m, cfg.Cache.TrendsTTL)
}

// ProvideOverviewUseCase creates the overview fan-out.
func ProvideOverviewUseCase(trends *usecase.TrendAggregator, fc *usecase.ForecastUseCase) *usecase.OverviewUseCase {
	return usecase.NewOverviewUseCase(trends, fc)
}

// ProvideExportUseCase creates the CRM export use case.
func ProvideExportUseCase(storage repository.Storage, scrubber domsvc.Scrubber) *usecase.ExportUseCase {
	return usecase.NewExportUseCase(storage, scrubber)
}

// ProvideJobQueue creates the redis retrain queue with its job.
func ProvideJobQueue(
	log *applogger.Logger,
	client *redis.Client,
	history repository.HistoryStore,
	engine domsvc.Forecaster,
	audit repository.AuditStore,
	cacheSvc pkgcache.Service,
	cfg *config.Config,
) *queue.RedisQueue {
	opts := []queue.RedisQueueOption{}
	if cfg.Queue.Name != "" {
		opts = append(opts, queue.WithKeyPrefix(cfg.Queue.Name))
	}
	q := queue.NewRedisQueue(log, &queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		RetryLimit: cfg.Queue.MaxRetries,
	}, client, queue.ModeProducerConsumer, opts...)
	q.RegisterJob(usecase.NewRetrainJob(history, engine, audit, cacheSvc, log, cfg.Forecast.HistoryDays))
	return q
}

// ProvideHTTPHandler creates the REST handler.
func ProvideHTTPHandler(
	log *applogger.Logger,
	fc *usecase.ForecastUseCase,
	historical *usecase.HistoricalUseCase,
	trends *usecase.TrendAggregator,
	overview *usecase.OverviewUseCase,
	export *usecase.ExportUseCase,
	analyzer domsvc.Analyzer,
	storage repository.Storage,
	cacheSvc pkgcache.Service,
	jobs *queue.RedisQueue,
	client *redis.Client,
	cfg *config.Config,
) xhttp.Handler {
	h := api.NewHandler(log, fc, historical, trends, overview, export, analyzer, storage, cacheSvc, jobs, cfg)
	// Share hot GET responses across instances through redis, reusing
	// the existing connection pool.
	h.SetResponseCache(icache.NewRedisCacheFromClient(client))
	return h
}

// auditPublisher adapts the kafka producer to the log collector.
type auditPublisher struct {
	p *pkgkafka.Producer
}

func (a auditPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return a.p.Publish(ctx, topic, nil, payload)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	collector *usecase.MentionCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaMentionsHandler,
	chClient *pkgch.Client,
	jobQueue *queue.RedisQueue,
	producer *pkgkafka.Producer,
	handler xhttp.Handler,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	// Deduplicated error logs ship to the kafka audit topic.
	if cfg.Kafka.AuditTopic != "" {
		log.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   time.Minute,
			CountThreshold: 100,
			Topic:          cfg.Kafka.AuditTopic,
			Publisher:      auditPublisher{p: producer},
		})
	}
	app := server.New(cfg, log, collector, consumer, kh, chClient, jobQueue)
	app.SetHTTPHandler(handler)
	if collector != nil {
		app.MentionProc = collector.Processor()
	}
	return app
}

// splitHostPort parses "host:port" with the default redis port.
func splitHostPort(addr string) (string, int) {
	host, portStr, found := strings.Cut(addr, ":")
	if host == "" {
		host = "localhost"
	}
	if !found {
		return host, 6379
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return host, 6379
	}
	return host, port
}
