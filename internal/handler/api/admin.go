package api

import (
	"fmt"
	"strings"
	"time"

	models "SentiCast/internal/domain/models"
	"SentiCast/internal/usecase"
	pkgcache "SentiCast/pkg/cache"
	xhttp "SentiCast/pkg/http"
	applogger "SentiCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Retrain serves POST /api/v1/admin/retrain. The pass runs on the job
// queue; the response carries the queued job reference.
func (h *Handler) Retrain(c echo.Context) error {
	req := &models.RetrainRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.jobs == nil {
		return xhttp.AppErrorResponse(c, xhttp.InternalError("retrain queue not configured"))
	}

	payload := usecase.RetrainPayload{
		Days:        req.Days,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}
	jobID, err := h.jobs.Enqueue(c.Request().Context(), "retrain", payload)
	if err != nil {
		h.log.Error("retrain enqueue error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.log.Info("retrain queued", applogger.String("job_id", jobID), applogger.Int("days", req.Days))
	return xhttp.AcceptedResponse(c, map[string]interface{}{
		"job_id": jobID,
		"days":   req.Days,
		"status": "queued",
	})
}

// Model serves GET /api/v1/admin/model.
func (h *Handler) Model(c echo.Context) error {
	key := pkgcache.GenerateKey("resp", "model")
	if raw, ok := h.cachedResponse(c, key); ok {
		return xhttp.SuccessResponse(c, raw)
	}

	dto := toModelInfoDTO(h.forecast.ModelInfo())
	h.storeResponse(key, dto, h.cfg.Cache.ModelTTL)
	return xhttp.SuccessResponse(c, dto)
}

// ExportCRM serves GET /api/v1/export/crm?days=30&format=json|csv.
func (h *Handler) ExportCRM(c echo.Context) error {
	req := &models.ExportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rows, err := h.export.CRMExport(c.Request().Context(), req.Days, 0)
	if err != nil {
		h.log.Error("export usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	if req.Format == "csv" {
		return c.Blob(200, "text/csv", exportCSV(rows))
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"count":   len(rows),
		"records": rows,
	})
}

func exportCSV(rows []usecase.ExportRow) []byte {
	var sb strings.Builder
	sb.WriteString("date,source,author_ref,label,score,text\n")
	for _, r := range rows {
		// commas and quotes inside text get CSV-quoted
		text := `"` + strings.ReplaceAll(r.Text, `"`, `""`) + `"`
		fmt.Fprintf(&sb, "%s,%s,%s,%s,%.4f,%s\n", r.Date, r.Source, r.AuthorRef, r.Label, r.Score, text)
	}
	return []byte(sb.String())
}
