package api

import (
	"context"
	"time"

	domrepo "SentiCast/internal/domain/repository"
	domsvc "SentiCast/internal/domain/service"
	icache "SentiCast/internal/service/cache"
	imetrics "SentiCast/internal/service/metrics"
	"SentiCast/internal/service/ratelimit"
	"SentiCast/internal/usecase"
	pkgcache "SentiCast/pkg/cache"
	"SentiCast/pkg/config"
	xhttp "SentiCast/pkg/http"
	xmw "SentiCast/pkg/http/middleware"
	applogger "SentiCast/pkg/logger"
	"SentiCast/pkg/queue"

	"github.com/labstack/echo/v4"
)

// Handler wires the REST surface to the usecases.
type Handler struct {
	log        *applogger.Logger
	forecast   *usecase.ForecastUseCase
	historical *usecase.HistoricalUseCase
	trends     *usecase.TrendAggregator
	overview   *usecase.OverviewUseCase
	export     *usecase.ExportUseCase
	analyzer   domsvc.Analyzer
	storage    domrepo.Storage
	cacheSvc   pkgcache.Service
	jobs       *queue.RedisQueue

	respCache icache.BytesCache
	rl        *ratelimit.Limiter
	cfg       *config.Config
}

func NewHandler(
	log *applogger.Logger,
	forecast *usecase.ForecastUseCase,
	historical *usecase.HistoricalUseCase,
	trends *usecase.TrendAggregator,
	overview *usecase.OverviewUseCase,
	export *usecase.ExportUseCase,
	analyzer domsvc.Analyzer,
	storage domrepo.Storage,
	cacheSvc pkgcache.Service,
	jobs *queue.RedisQueue,
	cfg *config.Config,
) *Handler {
	imetrics.Register()
	return &Handler{
		log:        log,
		forecast:   forecast,
		historical: historical,
		trends:     trends,
		overview:   overview,
		export:     export,
		analyzer:   analyzer,
		storage:    storage,
		cacheSvc:   cacheSvc,
		jobs:       jobs,
		respCache:  icache.NewTTLCache(),
		rl:         ratelimit.New(),
		cfg:        cfg,
	}
}

// SetResponseCache swaps the hot-response byte cache (redis-backed in
// multi-instance deployments).
func (h *Handler) SetResponseCache(c icache.BytesCache) { h.respCache = c }

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	pred := v1.Group("/predictions")
	pred.GET("/sentiment", h.PredictSentiment)
	pred.GET("/alerts", h.Alerts)

	an := v1.Group("/analytics")
	an.GET("/historical", h.Historical)
	an.GET("/trends", h.Trends)
	an.GET("/overview", h.Overview)

	sent := v1.Group("/sentiment")
	sent.POST("/analyze", h.Analyze)
	sent.POST("/analyze/batch", h.AnalyzeBatch)
	sent.GET("/realtime", h.Realtime)

	admin := v1.Group("/admin", xmw.AdminKey(h.cfg.Admin.APIKey))
	admin.POST("/retrain", h.Retrain)
	admin.GET("/model", h.Model)

	v1.GET("/export/crm", h.ExportCRM, xmw.AdminKey(h.cfg.Admin.APIKey))

	v1.GET("/health", h.Health)
}

// Health reports storage, cache and model state.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status := map[string]interface{}{"status": "ok"}

	if err := h.storage.Health(ctx); err != nil {
		status["status"] = "degraded"
		status["clickhouse"] = err.Error()
	} else {
		status["clickhouse"] = "ok"
	}
	if h.cacheSvc != nil {
		if _, err := h.cacheSvc.Exists(ctx, "health"); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
		} else {
			status["redis"] = "ok"
		}
	}

	info := h.forecast.ModelInfo()
	status["model"] = map[string]interface{}{
		"type":    info.Type,
		"trained": info.Trained,
	}
	return xhttp.SuccessResponse(c, status)
}
