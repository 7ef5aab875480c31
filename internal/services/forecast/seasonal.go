package forecast

import (
	"fmt"
	"math"
)

// DefaultSeasonalPeriod is the weekly cycle of daily sentiment data.
const DefaultSeasonalPeriod = 7

// zInterval95 is the half-width multiplier of the 95% band.
const zInterval95 = 1.96

var smoothingGrid = []float64{0.1, 0.3, 0.5, 0.7, 0.9}

// SeasonalModel is one additive Holt-Winters decomposition: level plus
// linear trend plus an additive seasonal component of fixed period.
type SeasonalModel struct {
	Period int
	Alpha  float64
	Beta   float64
	Gamma  float64

	level    float64
	trend    float64
	seasonal []float64
	sigma    float64 // in-sample one-step residual stddev
	n        int     // points consumed by the fit
}

// FitSeasonal grid-searches the smoothing factors minimizing one-step
// SSE over the series. Requires at least two full periods; failure
// means the seasonal capability is absent, never a fatal error.
func FitSeasonal(series []float64, period int) (*SeasonalModel, error) {
	if period < 2 {
		return nil, fmt.Errorf("%w: period %d too short", ErrSeasonalUnavailable, period)
	}
	if len(series) < 2*period {
		return nil, fmt.Errorf("%w: need %d points, got %d", ErrSeasonalUnavailable, 2*period, len(series))
	}

	var best *SeasonalModel
	bestSSE := math.Inf(1)
	for _, a := range smoothingGrid {
		for _, b := range smoothingGrid {
			for _, g := range smoothingGrid {
				m, sse := runSmoothing(series, period, a, b, g)
				if m != nil && sse < bestSSE {
					best, bestSSE = m, sse
				}
			}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: degenerate fit", ErrSeasonalUnavailable)
	}
	return best, nil
}

// runSmoothing runs one Holt-Winters pass, returning the fitted model
// and its one-step SSE. A non-finite state aborts the candidate.
func runSmoothing(series []float64, period int, alpha, beta, gamma float64) (*SeasonalModel, float64) {
	level, trend, seasonal := initSeasonalState(series, period)
	resid := make([]float64, 0, len(series))
	sse := 0.0
	for t, x := range series {
		si := seasonal[t%period]
		r := x - (level + trend + si)
		sse += r * r
		resid = append(resid, r)

		newLevel := alpha*(x-si) + (1-alpha)*(level+trend)
		newTrend := beta*(newLevel-level) + (1-beta)*trend
		seasonal[t%period] = gamma*(x-newLevel) + (1-gamma)*si
		level, trend = newLevel, newTrend
		if math.IsNaN(level) || math.IsInf(level, 0) || math.IsNaN(trend) || math.IsInf(trend, 0) {
			return nil, math.Inf(1)
		}
	}
	m := &SeasonalModel{
		Period:   period,
		Alpha:    alpha,
		Beta:     beta,
		Gamma:    gamma,
		level:    level,
		trend:    trend,
		seasonal: seasonal,
		sigma:    sampleStd(resid),
		n:        len(series),
	}
	return m, sse
}

// initSeasonalState seeds level, trend and seasonal indices from the
// period means of the series.
func initSeasonalState(series []float64, period int) (float64, float64, []float64) {
	m1 := mean(series[:period])
	m2 := mean(series[period : 2*period])
	level := m1
	trend := (m2 - m1) / float64(period)

	seasonal := make([]float64, period)
	full := len(series) / period
	for i := 0; i < period; i++ {
		sum := 0.0
		for k := 0; k < full; k++ {
			pm := mean(series[k*period : (k+1)*period])
			sum += series[k*period+i] - pm
		}
		seasonal[i] = sum / float64(full)
	}
	return level, trend, seasonal
}

// Forecast extrapolates h steps past the end of the training series.
// Interval half-width grows with the horizon: 1.96*sigma*sqrt(i+1).
func (m *SeasonalModel) Forecast(h int) (point, lower, upper []float64) {
	point = make([]float64, h)
	lower = make([]float64, h)
	upper = make([]float64, h)
	for i := 0; i < h; i++ {
		p := m.level + float64(i+1)*m.trend + m.seasonal[(m.n+i)%m.Period]
		half := zInterval95 * m.sigma * math.Sqrt(float64(i+1))
		point[i] = p
		lower[i] = p - half
		upper[i] = p + half
	}
	return point, lower, upper
}

// SeasonalForecaster holds one fitted model per sentiment channel, all
// fitted on the raw percentage scale.
type SeasonalForecaster struct {
	models [numChannels]*SeasonalModel
}

// FitSeasonalChannels fits one model per channel over the full history.
// Any channel failing to fit drops the whole capability.
func FitSeasonalChannels(points [][numChannels]float64, period int) (*SeasonalForecaster, error) {
	sf := &SeasonalForecaster{}
	series := make([]float64, len(points))
	for c := 0; c < numChannels; c++ {
		for i, p := range points {
			series[i] = p[c]
		}
		m, err := FitSeasonal(series, period)
		if err != nil {
			return nil, err
		}
		sf.models[c] = m
	}
	return sf, nil
}

// Forecast returns per-day channel vectors for the point estimates and
// both interval edges.
func (f *SeasonalForecaster) Forecast(h int) (point, lower, upper [][numChannels]float64) {
	point = make([][numChannels]float64, h)
	lower = make([][numChannels]float64, h)
	upper = make([][numChannels]float64, h)
	for c := 0; c < numChannels; c++ {
		p, lo, hi := f.models[c].Forecast(h)
		for i := 0; i < h; i++ {
			point[i][c] = p[i]
			lower[i][c] = lo[i]
			upper[i][c] = hi[i]
		}
	}
	return point, lower, upper
}
