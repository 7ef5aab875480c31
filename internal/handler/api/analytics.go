package api

import (
	"encoding/json"
	"time"

	models "SentiCast/internal/domain/models"
	"SentiCast/internal/usecase"
	pkgcache "SentiCast/pkg/cache"
	xhttp "SentiCast/pkg/http"
	applogger "SentiCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Historical serves GET /api/v1/analytics/historical?days=30&source=.
func (h *Handler) Historical(c echo.Context) error {
	req := &models.HistoricalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := pkgcache.GenerateKeyWithParams("resp:historical", req.Source, req.Days)
	if raw, ok := h.cachedResponse(c, key); ok {
		return xhttp.SuccessResponse(c, raw)
	}

	res, err := h.historical.GetHistorical(c.Request().Context(), usecase.GetHistoricalParams{
		Days:   req.Days,
		Source: req.Source,
	})
	if err != nil {
		h.log.Error("historical usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	dto := toHistoricalDTO(res)
	h.storeResponse(key, dto, h.cfg.Cache.HistoricalTTL)
	return xhttp.SuccessResponse(c, dto)
}

// Trends serves GET /api/v1/analytics/trends?window=7.
func (h *Handler) Trends(c echo.Context) error {
	req := &models.TrendsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := pkgcache.GenerateKeyWithParams("resp:trends", req.Window)
	if raw, ok := h.cachedResponse(c, key); ok {
		return xhttp.SuccessResponse(c, raw)
	}

	res, err := h.trends.Trends(c.Request().Context(), req.Window)
	if err != nil {
		h.log.Error("trends usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	dto := toTrendsDTO(res)
	h.storeResponse(key, dto, h.cfg.Cache.TrendsTTL)
	return xhttp.SuccessResponse(c, dto)
}

// Realtime serves GET /api/v1/sentiment/realtime?minutes=60.
func (h *Handler) Realtime(c echo.Context) error {
	req := &models.RealtimeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.trends.Realtime(c.Request().Context(), req.Minutes)
	if err != nil {
		h.log.Error("realtime usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, toRealtimeDTO(res))
}

// Overview serves GET /api/v1/analytics/overview.
func (h *Handler) Overview(c echo.Context) error {
	res, err := h.overview.GetOverview(c.Request().Context(), usecase.GetOverviewParams{})
	if err != nil {
		h.log.Error("overview usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, toOverviewDTO(res))
}

// cachedResponse returns the cached JSON body for key, if fresh.
func (h *Handler) cachedResponse(c echo.Context, key string) (json.RawMessage, bool) {
	if h.respCache == nil {
		return nil, false
	}
	b, ok, err := h.respCache.GetBytes(key)
	if err != nil {
		h.log.Warn("response cache get error", applogger.String("key", key), applogger.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	c.Response().Header().Set("X-Cache", "HIT")
	return json.RawMessage(b), true
}

// storeResponse caches the marshaled payload. Failures only log.
func (h *Handler) storeResponse(key string, v interface{}, ttl time.Duration) {
	if h.respCache == nil || ttl <= 0 {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := h.respCache.SetBytes(key, b, ttl); err != nil {
		h.log.Warn("response cache set error", applogger.String("key", key), applogger.Error(err))
	}
}
