package usecase

import (
	"context"
	"fmt"
	"time"

	domrepo "SentiCast/internal/domain/repository"
	domsvc "SentiCast/internal/domain/service"
	"SentiCast/pkg/util"
)

// ExportRow is one CRM export record. Text and author are already
// PII-scrubbed at ingest time; the export scrubs again so records that
// predate a lexicon update still leave clean.
type ExportRow struct {
	Date      string  `json:"date"`
	Source    string  `json:"source"`
	AuthorRef string  `json:"author_ref"`
	Text      string  `json:"text"`
	Label     string  `json:"label"`
	Score     float64 `json:"score"`
}

// ExportUseCase produces scrubbed mention exports for CRM handoff.
type ExportUseCase struct {
	storage  domrepo.Storage
	scrubber domsvc.Scrubber
}

func NewExportUseCase(storage domrepo.Storage, scrubber domsvc.Scrubber) *ExportUseCase {
	return &ExportUseCase{storage: storage, scrubber: scrubber}
}

// CRMExport returns the trailing days of mentions as export rows.
func (uc *ExportUseCase) CRMExport(ctx context.Context, days, limit int) ([]ExportRow, error) {
	if days <= 0 {
		days = 30
	}
	days = util.ClampInt(days, 1, 365)
	if limit <= 0 || limit > 50000 {
		limit = 50000
	}
	since, _ := util.DayRange(time.Now(), days)

	mentions, err := uc.storage.QueryRecent(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("export query: %w", err)
	}

	rows := make([]ExportRow, 0, len(mentions))
	for _, m := range mentions {
		if m == nil {
			continue
		}
		clean, _ := uc.scrubber.Scrub(m.Text)
		rows = append(rows, ExportRow{
			Date:      m.Timestamp.UTC().Format(time.RFC3339),
			Source:    m.Source,
			AuthorRef: uc.scrubber.HashAuthor(m.Author),
			Text:      clean,
			Label:     m.Label,
			Score:     m.Score,
		})
	}
	return rows, nil
}
