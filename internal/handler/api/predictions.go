package api

import (
	"errors"
	"net/http"

	models "SentiCast/internal/domain/models"
	"SentiCast/internal/services/forecast"
	xhttp "SentiCast/pkg/http"
	applogger "SentiCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PredictSentiment serves GET /api/v1/predictions/sentiment?days=7.
func (h *Handler) PredictSentiment(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.forecast.Predict(c.Request().Context(), req.Days)
	if err != nil {
		return h.forecastError(c, "predict", err)
	}
	return xhttp.SuccessResponse(c, toForecastDTO(res))
}

// Alerts serves GET /api/v1/predictions/alerts?days=30.
func (h *Handler) Alerts(c echo.Context) error {
	req := &models.AlertsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	records, err := h.forecast.Alerts(c.Request().Context(), req.Days)
	if err != nil {
		return h.forecastError(c, "alerts", err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"count":  len(records),
		"alerts": toAnomalyDTOs(records),
	})
}

// forecastError maps engine errors to the response envelope. Too little
// history is a client problem; everything else is internal.
func (h *Handler) forecastError(c echo.Context, op string, err error) error {
	var ide *forecast.InsufficientDataError
	if errors.As(err, &ide) {
		appErr := xhttp.NewAppError("ERR_INSUFFICIENT_DATA", "", "not enough history to forecast", http.StatusBadRequest).
			WithParam("required_minimum", ide.Required).
			WithParam("supplied", ide.Supplied)
		return xhttp.AppErrorResponse(c, appErr)
	}
	h.log.Error(op+" usecase error", applogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}
