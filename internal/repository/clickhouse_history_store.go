package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"SentiCast/internal/domain/models"
	domrepo "SentiCast/internal/domain/repository"
	pkgch "SentiCast/pkg/clickhouse"
	applogger "SentiCast/pkg/logger"
)

// CHHistoryStore implements HistoryStore backed by ClickHouse. The
// mention table lives in the configured database, matching the schema
// created at startup.
type CHHistoryStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHHistoryStore(ch *pkgch.Client, database string) *CHHistoryStore {
	return &CHHistoryStore{db: ch.DB(), table: qualifiedTable(database, "mention_events")}
}

// SetLogger injects a structured logger.
func (s *CHHistoryStore) SetLogger(l *applogger.Logger) { s.l = l }

const dailyQueryTpl = `
        SELECT
            toDate(ts) AS day,
            100 * countIf(label = 'positive') / count() AS positive,
            100 * countIf(label = 'negative') / count() AS negative,
            100 * countIf(label = 'neutral') / count() AS neutral,
            count() AS volume
        FROM %s
        WHERE ts >= ? AND ts <= ?
        GROUP BY day
        ORDER BY day ASC
    `

func (s *CHHistoryStore) GetDaily(ctx context.Context, from, to time.Time) ([]models.DailyAggregate, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(dailyQueryTpl, s.table), from, to)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_daily query error",
				applogger.String("from", from.Format(time.DateOnly)),
				applogger.String("to", to.Format(time.DateOnly)),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get daily: %w", err)
	}
	defer rows.Close()

	out, err := scanDaily(rows)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_daily scan error", applogger.Error(err))
		}
		return nil, err
	}
	if s.l != nil {
		s.l.Info("clickhouse get_daily ok",
			applogger.String("from", from.Format(time.DateOnly)),
			applogger.String("to", to.Format(time.DateOnly)),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHHistoryStore) GetDailyBySource(ctx context.Context, source domrepo.Source, from, to time.Time) ([]models.DailyAggregate, error) {
	start := time.Now()
	const tpl = `
        SELECT
            toDate(ts) AS day,
            100 * countIf(label = 'positive') / count() AS positive,
            100 * countIf(label = 'negative') / count() AS negative,
            100 * countIf(label = 'neutral') / count() AS neutral,
            count() AS volume
        FROM %s
        WHERE source = ? AND ts >= ? AND ts <= ?
        GROUP BY day
        ORDER BY day ASC
    `
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(tpl, s.table), string(source), from, to)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_daily_by_source query error",
				applogger.String("source", string(source)),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get daily by source: %w", err)
	}
	defer rows.Close()

	out, err := scanDaily(rows)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_daily_by_source scan error",
				applogger.String("source", string(source)),
				applogger.Error(err),
			)
		}
		return nil, err
	}
	if s.l != nil {
		s.l.Info("clickhouse get_daily_by_source ok",
			applogger.String("source", string(source)),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHHistoryStore) GetLastNDays(ctx context.Context, n int) ([]models.DailyAggregate, error) {
	start := time.Now()
	const tpl = `
        SELECT
            toDate(ts) AS day,
            100 * countIf(label = 'positive') / count() AS positive,
            100 * countIf(label = 'negative') / count() AS negative,
            100 * countIf(label = 'neutral') / count() AS neutral,
            count() AS volume
        FROM %s
        GROUP BY day
        ORDER BY day DESC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(tpl, s.table), n)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse last_n_days query error",
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get last n days: %w", err)
	}
	defer rows.Close()

	tmp, err := scanDaily(rows)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse last_n_days scan error",
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, err
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	if s.l != nil {
		s.l.Info("clickhouse last_n_days ok",
			applogger.Int("limit", n),
			applogger.Int("rows", len(tmp)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return tmp, nil
}

func scanDaily(rows *sql.Rows) ([]models.DailyAggregate, error) {
	out := make([]models.DailyAggregate, 0, 128)
	for rows.Next() {
		var d models.DailyAggregate
		if err := rows.Scan(&d.Date, &d.Positive, &d.Negative, &d.Neutral, &d.Volume); err != nil {
			return nil, fmt.Errorf("scan daily: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
