package forecast

import (
	"testing"
	"time"

	"SentiCast/internal/domain/models"
)

// jitterBaseline builds n days where only the positive channel carries a
// small deterministic wobble. spikeDay, when >= 0, is pushed far above
// the baseline.
func jitterBaseline(n, spikeDay int) []models.DailyAggregate {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	wobble := [4]float64{0, 0.5, 1.0, 0.5}
	out := make([]models.DailyAggregate, n)
	for i := range out {
		pos := 50 + wobble[i%4]
		if i == spikeDay {
			pos = 60
		}
		out[i] = models.DailyAggregate{
			Date:     start.AddDate(0, 0, i),
			Positive: pos,
			Negative: 25,
			Neutral:  25,
			Volume:   200,
		}
	}
	return out
}

func TestDetectFlagsSpikeOnly(t *testing.T) {
	d := NewAnomalyDetector()
	spikeDay := 20
	history := jitterBaseline(30, spikeDay)

	records := d.Detect(history)
	if len(records) == 0 {
		t.Fatal("expected the spike day to be flagged")
	}
	for _, r := range records {
		if !r.Date.Equal(history[spikeDay].Date) {
			t.Errorf("flagged %s on %s, stable days must not be flagged", r.Channel, r.Date.Format("2006-01-02"))
			continue
		}
		if r.Channel != models.ChannelPositive {
			t.Errorf("flagged channel = %q, want positive", r.Channel)
		}
		if r.Severity != models.SeverityHigh {
			t.Errorf("severity = %q, want high for a far outlier", r.Severity)
		}
		if r.Observed != 60 {
			t.Errorf("observed = %f, want 60", r.Observed)
		}
	}
}

func TestDetectShortHistoryEmpty(t *testing.T) {
	d := NewAnomalyDetector()
	if got := d.Detect(jitterBaseline(7, -1)); len(got) != 0 {
		t.Errorf("7-point history produced %d records, want none", len(got))
	}
	if got := d.Detect(nil); len(got) != 0 {
		t.Errorf("empty history produced %d records, want none", len(got))
	}
}

func TestDetectZeroVarianceWindow(t *testing.T) {
	// constant channels keep a zero stddev window; even a jump right
	// after must compute deviation 0 on those channels, never divide
	// by zero
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	history := make([]models.DailyAggregate, 12)
	for i := range history {
		history[i] = models.DailyAggregate{Date: start.AddDate(0, 0, i), Positive: 45, Negative: 25, Neutral: 30}
	}
	history[10].Positive = 90

	d := NewAnomalyDetector()
	for _, r := range d.Detect(history) {
		if r.Deviation != 0 {
			t.Errorf("zero-variance window produced deviation %f on %s", r.Deviation, r.Channel)
		}
		t.Errorf("unexpected record: %+v", r)
	}
}

func TestDetectFirstWindowDaysExempt(t *testing.T) {
	// a wild value inside the first seven days must never be evaluated
	history := jitterBaseline(20, 3)
	history[3].Positive = 95

	d := NewAnomalyDetector()
	for _, r := range d.Detect(history) {
		if r.Date.Equal(history[3].Date) {
			t.Errorf("day inside the initial window was evaluated: %+v", r)
		}
	}
}

func TestDetectMediumSeverityBand(t *testing.T) {
	// window of the 7 preceding days has mean 50.5 and a small stddev;
	// place the evaluated day between 2 and 3 sigmas above it
	history := jitterBaseline(9, -1)
	win := make([]float64, 7)
	for i := 1; i < 8; i++ {
		win[i-1] = history[i].Positive
	}
	m := mean(win)
	sd := sampleStd(win)
	history[8].Positive = m + 2.5*sd

	d := NewAnomalyDetector()
	records := d.Detect(history)
	found := false
	for _, r := range records {
		if r.Date.Equal(history[8].Date) && r.Channel == models.ChannelPositive {
			found = true
			if r.Severity != models.SeverityMedium {
				t.Errorf("severity = %q, want medium for 2.5 sigma", r.Severity)
			}
			if r.Deviation <= 2 || r.Deviation > 3 {
				t.Errorf("deviation = %f, want within (2, 3]", r.Deviation)
			}
		}
	}
	if !found {
		t.Fatal("expected a medium record for the 2.5 sigma day")
	}
}
