package forecast

import (
	"errors"
	"math"
	"testing"
)

var weekShape = [7]float64{3, 1, -2, 0, 2, -3, -1}

// weeklySeries builds n points of a pure weekly pattern around base.
func weeklySeries(n int, base float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + weekShape[i%7]
	}
	return out
}

func TestFitSeasonalTooShort(t *testing.T) {
	_, err := FitSeasonal(weeklySeries(13, 50), 7)
	if !errors.Is(err, ErrSeasonalUnavailable) {
		t.Fatalf("error = %v, want ErrSeasonalUnavailable", err)
	}
}

func TestSeasonalRecoversWeeklyPattern(t *testing.T) {
	n := 56
	m, err := FitSeasonal(weeklySeries(n, 50), 7)
	if err != nil {
		t.Fatalf("FitSeasonal: %v", err)
	}

	point, lower, upper := m.Forecast(7)
	for i := 0; i < 7; i++ {
		want := 50 + weekShape[(n+i)%7]
		if math.Abs(point[i]-want) > 0.5 {
			t.Errorf("day %d: forecast %f, want about %f", i, point[i], want)
		}
		if lower[i] > point[i] || upper[i] < point[i] {
			t.Errorf("day %d: interval [%f, %f] does not bracket %f", i, lower[i], upper[i], point[i])
		}
	}
}

func TestSeasonalIntervalWidens(t *testing.T) {
	// period-2 noise on top of the weekly shape keeps sigma above zero
	series := weeklySeries(56, 50)
	for i := range series {
		if i%2 == 0 {
			series[i] += 1.5
		} else {
			series[i] -= 1.5
		}
	}
	m, err := FitSeasonal(series, 7)
	if err != nil {
		t.Fatalf("FitSeasonal: %v", err)
	}

	_, lower, upper := m.Forecast(10)
	prev := -1.0
	for i := 0; i < 10; i++ {
		width := upper[i] - lower[i]
		if width < prev {
			t.Errorf("day %d: interval width %f narrower than previous %f", i, width, prev)
		}
		prev = width
	}
	if prev <= 0 {
		t.Error("expected a positive interval width on a noisy series")
	}
}

func TestFitSeasonalChannelsAllOrNothing(t *testing.T) {
	points := make([][numChannels]float64, 30)
	for i := range points {
		points[i] = [numChannels]float64{50 + weekShape[i%7], 30, 20 - weekShape[i%7]}
	}

	sf, err := FitSeasonalChannels(points, 7)
	if err != nil {
		t.Fatalf("FitSeasonalChannels: %v", err)
	}
	pt, lo, hi := sf.Forecast(5)
	if len(pt) != 5 || len(lo) != 5 || len(hi) != 5 {
		t.Fatalf("Forecast lengths = %d/%d/%d, want 5", len(pt), len(lo), len(hi))
	}

	// too few points for two full periods
	if _, err := FitSeasonalChannels(points[:13], 7); !errors.Is(err, ErrSeasonalUnavailable) {
		t.Fatalf("short history error = %v, want ErrSeasonalUnavailable", err)
	}
}
