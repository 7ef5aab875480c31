package repository

import (
	"fmt"
	"strings"
	"testing"
)

func TestQualifiedTableUsesConfiguredDatabase(t *testing.T) {
	if got := qualifiedTable("analytics", "mention_events"); got != "analytics.mention_events" {
		t.Fatalf("got %q", got)
	}
	if got := qualifiedTable("", "forecast_log"); got != "senticast.forecast_log" {
		t.Fatalf("default database: got %q", got)
	}
}

func TestHistoryQueryTargetsConfiguredTable(t *testing.T) {
	s := &CHHistoryStore{table: qualifiedTable("analytics", "mention_events")}
	q := fmt.Sprintf(dailyQueryTpl, s.table)
	if !strings.Contains(q, "FROM analytics.mention_events") {
		t.Fatalf("query does not reference configured table:\n%s", q)
	}
	if strings.Contains(q, "senticast.") {
		t.Fatalf("query kept the default database:\n%s", q)
	}
}
