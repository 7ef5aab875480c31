package api

import (
	models "SentiCast/internal/domain/models"
	imetrics "SentiCast/internal/service/metrics"
	xhttp "SentiCast/pkg/http"
	applogger "SentiCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Analyze serves POST /api/v1/sentiment/analyze.
func (h *Handler) Analyze(c echo.Context) error {
	if !h.allowAnalyze(c) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("analyze rate limit exceeded"))
	}
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	imetrics.AnalyzeRequests.Inc()
	sc := h.analyzer.Analyze(req.Text)
	return xhttp.SuccessResponse(c, analyzeDTO{
		Label:      sc.Label,
		Score:      sc.Score,
		Confidence: sc.Confidence,
	})
}

// AnalyzeBatch serves POST /api/v1/sentiment/analyze/batch.
func (h *Handler) AnalyzeBatch(c echo.Context) error {
	if !h.allowAnalyze(c) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("analyze rate limit exceeded"))
	}
	req := &models.AnalyzeBatchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	imetrics.AnalyzeRequests.Inc()
	scores := h.analyzer.AnalyzeBatch(req.Texts)
	out := make([]analyzeDTO, len(scores))
	for i, sc := range scores {
		out[i] = analyzeDTO{Label: sc.Label, Score: sc.Score, Confidence: sc.Confidence}
	}
	return xhttp.SuccessResponse(c, out)
}

// allowAnalyze applies the per-client token bucket to the analyze
// endpoints, which run the classifier on caller-supplied text.
func (h *Handler) allowAnalyze(c echo.Context) bool {
	capacity := float64(h.cfg.RateLimit.Capacity)
	if capacity <= 0 {
		capacity = 10
	}
	refill := h.cfg.RateLimit.RefillPerSec
	if refill <= 0 {
		refill = 2
	}
	if h.rl.Allow(c.RealIP()+":analyze", capacity, refill) {
		return true
	}
	h.log.Warn("analyze rate_limited", applogger.String("remote", c.RealIP()))
	return false
}
