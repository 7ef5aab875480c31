package features

import (
	"math"
	"time"

	"SentiCast/internal/domain/models"
)

// WindowMeans computes mean channel shares over the trailing window.
// It returns zeros if the window is empty or non-positive.
func WindowMeans(history []models.DailyAggregate, window int) (pos, neg, neu float64) {
	if window <= 0 {
		return 0, 0, 0
	}
	if window > len(history) {
		window = len(history)
	}
	if window == 0 {
		return 0, 0, 0
	}
	for _, d := range history[len(history)-window:] {
		pos += d.Positive
		neg += d.Negative
		neu += d.Neutral
	}
	n := float64(window)
	return pos / n, neg / n, neu / n
}

// Deltas computes the change of mean channel shares between the
// trailing window and the window before it. With no prior data the
// deltas are zero.
func Deltas(history []models.DailyAggregate, window int) models.ChannelDeltas {
	if window <= 0 || len(history) <= window {
		return models.ChannelDeltas{}
	}
	curPos, curNeg, curNeu := WindowMeans(history, window)

	prev := history[:len(history)-window]
	prevPos, prevNeg, prevNeu := WindowMeans(prev, window)

	return models.ChannelDeltas{
		Positive: curPos - prevPos,
		Negative: curNeg - prevNeg,
		Neutral:  curNeu - prevNeu,
	}
}

// Volatility computes the sample standard deviation of each channel
// share over the trailing window. Windows shorter than two points
// report zero.
func Volatility(history []models.DailyAggregate, window int) models.ChannelVolatility {
	if window > len(history) {
		window = len(history)
	}
	if window < 2 {
		return models.ChannelVolatility{}
	}
	tail := history[len(history)-window:]
	return models.ChannelVolatility{
		Positive: windowStd(tail, func(d models.DailyAggregate) float64 { return d.Positive }),
		Negative: windowStd(tail, func(d models.DailyAggregate) float64 { return d.Negative }),
		Neutral:  windowStd(tail, func(d models.DailyAggregate) float64 { return d.Neutral }),
	}
}

func windowStd(window []models.DailyAggregate, pick func(models.DailyAggregate) float64) float64 {
	sum := 0.0
	sum2 := 0.0
	for _, d := range window {
		v := pick(d)
		sum += v
		sum2 += v * v
	}
	n := float64(len(window))
	mean := sum / n
	variance := (sum2 - n*mean*mean) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// TotalVolume sums mention volume over the trailing window.
func TotalVolume(history []models.DailyAggregate, window int) int64 {
	if window > len(history) {
		window = len(history)
	}
	var total int64
	for _, d := range history[len(history)-window:] {
		total += d.Volume
	}
	return total
}

// Dominant returns the channel with the highest share. Ties resolve
// positive over negative over neutral.
func Dominant(pos, neg, neu float64) string {
	best, name := pos, models.ChannelPositive
	if neg > best {
		best, name = neg, models.ChannelNegative
	}
	if neu > best {
		name = models.ChannelNeutral
	}
	return name
}

// AlignDay truncates a time range to UTC day boundaries.
func AlignDay(from, to time.Time) (time.Time, time.Time) {
	return from.UTC().Truncate(24 * time.Hour), to.UTC().Truncate(24 * time.Hour)
}

// SummarizeMentions aggregates raw mentions into a realtime summary
// with label and source counts plus percentage shares.
func SummarizeMentions(mentions []*models.Mention, from, to time.Time) models.RealtimeSummary {
	sum := models.RealtimeSummary{
		From:     from,
		To:       to,
		ByLabel:  make(map[string]int),
		BySource: make(map[string]int),
	}
	for _, m := range mentions {
		if m == nil {
			continue
		}
		sum.Total++
		sum.ByLabel[m.Label]++
		sum.BySource[m.Source]++
	}
	if sum.Total == 0 {
		return sum
	}
	n := float64(sum.Total)
	sum.Positive = 100 * float64(sum.ByLabel[models.ChannelPositive]) / n
	sum.Negative = 100 * float64(sum.ByLabel[models.ChannelNegative]) / n
	sum.Neutral = 100 * float64(sum.ByLabel[models.ChannelNeutral]) / n
	return sum
}
