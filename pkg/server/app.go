package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"SentiCast/internal/usecase"
	pkgch "SentiCast/pkg/clickhouse"
	"SentiCast/pkg/config"
	xhttp "SentiCast/pkg/http"
	pkgkafka "SentiCast/pkg/kafka"
	applogger "SentiCast/pkg/logger"
	"SentiCast/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	log         *applogger.Logger
	collector   *usecase.MentionCollector
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	chClient    *pkgch.Client
	jobQueue    *queue.RedisQueue
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	MentionProc *usecase.MentionProcessor
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	collector *usecase.MentionCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	jobQueue *queue.RedisQueue,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		collector: collector,
		consumer:  consumer,
		kh:        kh,
		chClient:  chClient,
		jobQueue:  jobQueue,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.log
	if l == nil {
		l, _ = applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
		a.log = l
	}

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithRequestMetrics(l, 0),
	)

	// Start retrain job workers before anything can enqueue work. The
	// retry processor is launched by Start itself.
	if a.jobQueue != nil {
		if err := a.jobQueue.Start(); err != nil {
			l.Error("job queue start error", applogger.Error(err))
			return err
		}
		l.Info("job queue started", applogger.String("queue", a.cfg.Queue.Name))
	}

	// Start mention collector (stream + pipeline)
	go func() {
		if err := a.collector.Start(ctx); err != nil {
			l.Error("collector error", applogger.Error(err))
		}
	}()
	l.Info("mention collector started", applogger.Strings("sources", a.cfg.Stream.Sources))

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services in reverse start order.
func (a *App) shutdown(ctx context.Context) error {
	l := a.log
	l.Info("shutting down...")

	// Stop collector (pipeline + stream)
	if err := a.collector.Shutdown(ctx); err != nil {
		l.Warn("collector stop error", applogger.Error(err))
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Stop consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Stop retrain workers after the consumer so in-flight jobs can finish.
	if a.jobQueue != nil {
		if err := a.jobQueue.Stop(shutdownCtx); err != nil {
			l.Warn("job queue stop error", applogger.Error(err))
		}
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	// Close mention processor resources (publisher/storage)
	if a.MentionProc != nil {
		a.MentionProc.Close()
	}

	l.Info("shutdown complete")
	return nil
}
