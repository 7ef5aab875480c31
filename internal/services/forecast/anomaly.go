package forecast

import (
	"math"

	"SentiCast/internal/domain/models"
)

// anomalyWindow is the trailing number of days compared against,
// exclusive of the evaluated day.
const anomalyWindow = 7

// Severity thresholds in sigma units.
const (
	severityMedium = 2.0
	severityHigh   = 3.0
)

// AnomalyDetector flags days whose channel share deviates sharply from
// the trailing week. Stateless and safe for concurrent use.
type AnomalyDetector struct {
	window int
}

func NewAnomalyDetector() *AnomalyDetector {
	return &AnomalyDetector{window: anomalyWindow}
}

// Detect scans the history per channel. Each day from index window
// onward is compared against the preceding window days only; the first
// window days are never evaluated. A zero-variance window yields
// deviation 0. Histories of window or fewer points yield an empty
// result, not an error.
func (d *AnomalyDetector) Detect(history []models.DailyAggregate) []models.AnomalyRecord {
	if len(history) <= d.window {
		return nil
	}
	var out []models.AnomalyRecord
	series := make([]float64, len(history))
	for c := 0; c < numChannels; c++ {
		for i, h := range history {
			series[i] = h.Channels()[c]
		}
		for i := d.window; i < len(series); i++ {
			win := series[i-d.window : i]
			m := mean(win)
			sd := sampleStd(win)
			dev := 0.0
			if sd > 0 {
				dev = math.Abs(series[i]-m) / sd
			}
			if dev <= severityMedium {
				continue
			}
			sev := models.SeverityMedium
			if dev > severityHigh {
				sev = models.SeverityHigh
			}
			out = append(out, models.AnomalyRecord{
				Date:      history[i].Date,
				Channel:   channelNames[c],
				Observed:  series[i],
				Expected:  m,
				Deviation: dev,
				Severity:  sev,
			})
		}
	}
	return out
}
