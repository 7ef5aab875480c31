package features

import (
	"math"
	"testing"
	"time"

	"SentiCast/internal/domain/models"
)

func dailySeries(pos []float64, volume int64) []models.DailyAggregate {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.DailyAggregate, len(pos))
	for i, p := range pos {
		out[i] = models.DailyAggregate{
			Date:     start.AddDate(0, 0, i),
			Positive: p,
			Negative: (100 - p) / 2,
			Neutral:  (100 - p) / 2,
			Volume:   volume,
		}
	}
	return out
}

func TestWindowMeans(t *testing.T) {
	h := dailySeries([]float64{40, 40, 40, 50, 50, 50}, 10)

	pos, neg, neu := WindowMeans(h, 3)
	if pos != 50 {
		t.Errorf("pos = %v, want 50", pos)
	}
	if neg != 25 || neu != 25 {
		t.Errorf("neg, neu = %v, %v, want 25, 25", neg, neu)
	}

	// Window larger than history falls back to everything available.
	pos, _, _ = WindowMeans(h, 100)
	if pos != 45 {
		t.Errorf("clamped window pos = %v, want 45", pos)
	}

	if p, n, u := WindowMeans(nil, 3); p != 0 || n != 0 || u != 0 {
		t.Errorf("empty history = %v %v %v, want zeros", p, n, u)
	}
}

func TestDeltas(t *testing.T) {
	h := dailySeries([]float64{40, 40, 40, 50, 50, 50}, 10)

	d := Deltas(h, 3)
	if d.Positive != 10 {
		t.Errorf("positive delta = %v, want 10", d.Positive)
	}
	if d.Negative != -5 || d.Neutral != -5 {
		t.Errorf("neg, neu deltas = %v, %v, want -5, -5", d.Negative, d.Neutral)
	}

	// No prior window means no deltas.
	if d := Deltas(h[:3], 3); d != (models.ChannelDeltas{}) {
		t.Errorf("deltas without prior data = %+v, want zeros", d)
	}
}

func TestVolatility(t *testing.T) {
	h := dailySeries([]float64{10, 20, 30}, 1)

	v := Volatility(h, 3)
	if math.Abs(v.Positive-10) > 1e-9 {
		t.Errorf("positive volatility = %v, want 10", v.Positive)
	}

	if v := Volatility(h, 1); v != (models.ChannelVolatility{}) {
		t.Errorf("single-point volatility = %+v, want zeros", v)
	}

	flat := dailySeries([]float64{42, 42, 42, 42}, 1)
	if v := Volatility(flat, 4); v.Positive != 0 {
		t.Errorf("flat volatility = %v, want 0", v.Positive)
	}
}

func TestTotalVolume(t *testing.T) {
	h := dailySeries([]float64{50, 50, 50, 50}, 7)
	if got := TotalVolume(h, 2); got != 14 {
		t.Errorf("TotalVolume = %d, want 14", got)
	}
	if got := TotalVolume(h, 100); got != 28 {
		t.Errorf("clamped TotalVolume = %d, want 28", got)
	}
}

func TestDominantTieOrder(t *testing.T) {
	cases := []struct {
		pos, neg, neu float64
		want          string
	}{
		{60, 20, 20, models.ChannelPositive},
		{20, 60, 20, models.ChannelNegative},
		{20, 20, 60, models.ChannelNeutral},
		{40, 40, 20, models.ChannelPositive},
		{0, 50, 50, models.ChannelNegative},
		{1.0 / 3, 1.0 / 3, 1.0 / 3, models.ChannelPositive},
	}
	for _, tc := range cases {
		if got := Dominant(tc.pos, tc.neg, tc.neu); got != tc.want {
			t.Errorf("Dominant(%v, %v, %v) = %q, want %q", tc.pos, tc.neg, tc.neu, got, tc.want)
		}
	}
}

func TestAlignDay(t *testing.T) {
	from := time.Date(2025, 6, 10, 15, 30, 12, 0, time.UTC)
	to := time.Date(2025, 6, 12, 3, 1, 0, 0, time.UTC)
	af, at := AlignDay(from, to)
	if af != time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC) {
		t.Errorf("from = %v", af)
	}
	if at != time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC) {
		t.Errorf("to = %v", at)
	}
}

func TestSummarizeMentions(t *testing.T) {
	from := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)
	mentions := []*models.Mention{
		{Source: "twitter", Label: models.ChannelPositive},
		{Source: "twitter", Label: models.ChannelPositive},
		{Source: "reddit", Label: models.ChannelNegative},
		{Source: "news", Label: models.ChannelNeutral},
		nil,
	}

	sum := SummarizeMentions(mentions, from, to)
	if sum.Total != 4 {
		t.Fatalf("total = %d, want 4", sum.Total)
	}
	if sum.ByLabel[models.ChannelPositive] != 2 || sum.BySource["twitter"] != 2 {
		t.Errorf("counts = %+v", sum)
	}
	if sum.Positive != 50 || sum.Negative != 25 || sum.Neutral != 25 {
		t.Errorf("shares = %v/%v/%v, want 50/25/25", sum.Positive, sum.Negative, sum.Neutral)
	}
	if sum.From != from || sum.To != to {
		t.Errorf("range = %v..%v", sum.From, sum.To)
	}

	empty := SummarizeMentions(nil, from, to)
	if empty.Total != 0 || empty.Positive != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}
