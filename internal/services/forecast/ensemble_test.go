package forecast

import (
	"math"
	"testing"

	"SentiCast/internal/domain/models"
)

func TestCombineDayRenormalizes(t *testing.T) {
	seq := [numChannels]float64{52, 31, 22} // sums to 105
	pt := combineDay(0, seq, nil, nil, nil)

	sum := pt.Positive + pt.Negative + pt.Neutral
	if math.Abs(sum-100) > 0.01 {
		t.Errorf("channels sum to %f, want 100", sum)
	}
	if pt.Dominant != models.ChannelPositive {
		t.Errorf("dominant = %q, want positive", pt.Dominant)
	}
}

func TestCombineDayClampsNegatives(t *testing.T) {
	seq := [numChannels]float64{-10, 50, 50}
	pt := combineDay(0, seq, nil, nil, nil)

	if pt.Positive != 0 {
		t.Errorf("negative channel survived: positive = %f, want 0", pt.Positive)
	}
	sum := pt.Positive + pt.Negative + pt.Neutral
	if math.Abs(sum-100) > 0.01 {
		t.Errorf("channels sum to %f, want 100", sum)
	}
}

func TestCombineDayAllZeroFallsBackToUniform(t *testing.T) {
	seq := [numChannels]float64{-1, -2, -3}
	pt := combineDay(0, seq, nil, nil, nil)

	third := 100.0 / 3
	if math.Abs(pt.Positive-third) > 1e-9 || math.Abs(pt.Negative-third) > 1e-9 || math.Abs(pt.Neutral-third) > 1e-9 {
		t.Errorf("uniform fallback = (%f, %f, %f), want thirds", pt.Positive, pt.Negative, pt.Neutral)
	}
	if pt.Lower > pt.Positive || pt.Upper < pt.Positive {
		t.Errorf("bounds [%f, %f] do not bracket %f", pt.Lower, pt.Upper, pt.Positive)
	}
}

func TestCombineDayTiePriority(t *testing.T) {
	// negative and neutral tie exactly; negative wins by priority
	pt := combineDay(0, [numChannels]float64{0, 50, 50}, nil, nil, nil)
	if pt.Dominant != models.ChannelNegative {
		t.Errorf("dominant = %q, want negative on a tie", pt.Dominant)
	}

	// three-way tie resolves to positive
	pt = combineDay(0, [numChannels]float64{40, 40, 40}, nil, nil, nil)
	if pt.Dominant != models.ChannelPositive {
		t.Errorf("dominant = %q, want positive on a three-way tie", pt.Dominant)
	}
}

func TestCombineDayConfidenceSchedule(t *testing.T) {
	cases := []struct {
		day  int
		want float64
	}{
		{0, 0.9},
		{1, 0.85},
		{7, 0.55},
		{8, 0.5},
		{20, 0.5},
	}
	seq := [numChannels]float64{45, 25, 30}
	for _, tc := range cases {
		pt := combineDay(tc.day, seq, nil, nil, nil)
		if math.Abs(pt.Confidence-tc.want) > 1e-9 {
			t.Errorf("day %d: confidence = %f, want %f", tc.day, pt.Confidence, tc.want)
		}
	}
}

func TestCombineDaySeasonalBounds(t *testing.T) {
	seq := [numChannels]float64{50, 30, 20}
	seas := [numChannels]float64{40, 30, 30}
	lo := [numChannels]float64{35, 25, 25}
	hi := [numChannels]float64{45, 35, 35}

	pt := combineDay(0, seq, &seas, &lo, &hi)

	// 0.7/0.3 blend: pos 47, neg 30, neu 23; already sums to 100
	if math.Abs(pt.Positive-47) > 1e-9 {
		t.Errorf("positive = %f, want 47", pt.Positive)
	}
	if math.Abs(pt.Lower-45.5) > 1e-9 || math.Abs(pt.Upper-48.5) > 1e-9 {
		t.Errorf("bounds = [%f, %f], want [45.5, 48.5]", pt.Lower, pt.Upper)
	}
	if pt.Lower > pt.Positive || pt.Upper < pt.Positive {
		t.Errorf("bounds [%f, %f] do not bracket %f", pt.Lower, pt.Upper, pt.Positive)
	}
}

func TestCombineDayFallbackBounds(t *testing.T) {
	pt := combineDay(0, [numChannels]float64{2, 58, 40}, nil, nil, nil)
	if pt.Lower != 0 {
		t.Errorf("lower = %f, want clipped to 0", pt.Lower)
	}
	if math.Abs(pt.Upper-(pt.Positive+fallbackBand)) > 1e-9 {
		t.Errorf("upper = %f, want positive+%v", pt.Upper, fallbackBand)
	}
}

func TestTrendLabel(t *testing.T) {
	mk := func(pos, neg float64) []models.ForecastPoint {
		pts := make([]models.ForecastPoint, 5)
		for i := range pts {
			pts[i] = models.ForecastPoint{Positive: pos, Negative: neg, Neutral: 100 - pos - neg}
		}
		return pts
	}

	if got := trendLabel(mk(70, 10)); got != models.TrendImproving {
		t.Errorf("trend = %q, want improving", got)
	}
	if got := trendLabel(mk(40, 35)); got != models.TrendDeclining {
		t.Errorf("trend = %q, want declining", got)
	}
	if got := trendLabel(mk(45, 25)); got != models.TrendStable {
		t.Errorf("trend = %q, want stable", got)
	}
	if got := trendLabel(nil); got != models.TrendStable {
		t.Errorf("empty horizon trend = %q, want stable", got)
	}
}
