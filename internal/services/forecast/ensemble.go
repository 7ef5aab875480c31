package forecast

import (
	"SentiCast/internal/domain/models"
)

// Ensemble weights when both contributors are available; sequence-only
// mode uses 1.0/0.0.
const (
	weightSequence = 0.7
	weightSeasonal = 0.3
)

// Confidence schedule: max(floor, base - decay*i), i zero-based.
const (
	confidenceBase  = 0.9
	confidenceDecay = 0.05
	confidenceFloor = 0.5
)

// fallbackBand is the band around the positive score when no seasonal
// interval exists, in percentage points.
const fallbackBand = 5.0

// Trend thresholds over the mean horizon scores.
const (
	trendPositiveMean = 65.0
	trendNegativeMean = 30.0
)

// channelNames in tie-break priority order.
var channelNames = [numChannels]string{models.ChannelPositive, models.ChannelNegative, models.ChannelNeutral}

// combineDay merges one day's sequence and seasonal contributions into
// a final point: weighted blend, clamp to non-negative, renormalize to
// sum exactly 100, decay confidence, derive bounds around the positive
// channel. seas/seasLo/seasHi are nil in sequence-only mode.
func combineDay(i int, seq [numChannels]float64, seas, seasLo, seasHi *[numChannels]float64) models.ForecastPoint {
	wSeq, wSeas := 1.0, 0.0
	if seas != nil {
		wSeq, wSeas = weightSequence, weightSeasonal
	}

	var raw [numChannels]float64
	sum := 0.0
	for c := 0; c < numChannels; c++ {
		v := wSeq * seq[c]
		if seas != nil {
			v += wSeas * seas[c]
		}
		if v < 0 {
			v = 0
		}
		raw[c] = v
		sum += v
	}

	var final [numChannels]float64
	factor := 0.0
	if sum > 0 {
		factor = 100 / sum
		for c := range raw {
			final[c] = raw[c] * factor
		}
	} else {
		// all channels collapsed; fall back to the uniform split
		for c := range final {
			final[c] = 100.0 / numChannels
		}
	}

	conf := confidenceBase - confidenceDecay*float64(i)
	if conf < confidenceFloor {
		conf = confidenceFloor
	}

	pos := final[chPos]
	var lower, upper float64
	if seas != nil && sum > 0 {
		lower = (wSeq*seq[chPos] + wSeas*seasLo[chPos]) * factor
		upper = (wSeq*seq[chPos] + wSeas*seasHi[chPos]) * factor
	} else {
		lower = pos - fallbackBand
		upper = pos + fallbackBand
	}
	// the interval must bracket the point estimate
	if lower > pos {
		lower = pos
	}
	if upper < pos {
		upper = pos
	}

	return models.ForecastPoint{
		Positive:   final[chPos],
		Negative:   final[chNeg],
		Neutral:    final[chNeu],
		Confidence: conf,
		Dominant:   dominantChannel(final),
		Lower:      clampPct(lower),
		Upper:      clampPct(upper),
	}
}

// dominantChannel picks the largest channel; exact ties keep the
// earlier channel in priority order positive > negative > neutral.
func dominantChannel(v [numChannels]float64) string {
	best := 0
	for c := 1; c < numChannels; c++ {
		if v[c] > v[best] {
			best = c
		}
	}
	return channelNames[best]
}

// trendLabel summarizes the horizon: improving when the positive mean
// dominates, declining when the negative mean is elevated, else stable.
func trendLabel(points []models.ForecastPoint) string {
	if len(points) == 0 {
		return models.TrendStable
	}
	var pos, neg float64
	for _, p := range points {
		pos += p.Positive
		neg += p.Negative
	}
	pos /= float64(len(points))
	neg /= float64(len(points))
	switch {
	case pos > trendPositiveMean:
		return models.TrendImproving
	case neg > trendNegativeMean:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
