package forecast

// Channel indexes in vector form, fixed across the package.
const (
	chPos = 0
	chNeg = 1
	chNeu = 2
)

const numChannels = 3

// Normalizer maps channel shares into [0,1] per channel using min/max
// bounds fitted on the training window. The fitted bounds are part of
// the trained state: inference must reuse them, never refit.
type Normalizer struct {
	Min [numChannels]float64
	Max [numChannels]float64
}

// Fit computes per-channel bounds over the given points.
func (n *Normalizer) Fit(points [][numChannels]float64) {
	if len(points) == 0 {
		return
	}
	for c := 0; c < numChannels; c++ {
		n.Min[c] = points[0][c]
		n.Max[c] = points[0][c]
	}
	for _, p := range points {
		for c := 0; c < numChannels; c++ {
			if p[c] < n.Min[c] {
				n.Min[c] = p[c]
			}
			if p[c] > n.Max[c] {
				n.Max[c] = p[c]
			}
		}
	}
}

// Transform maps one point into [0,1] per channel. A degenerate channel
// (max == min) maps to 0.5.
func (n *Normalizer) Transform(p [numChannels]float64) [numChannels]float64 {
	var out [numChannels]float64
	for c := 0; c < numChannels; c++ {
		span := n.Max[c] - n.Min[c]
		if span == 0 {
			out[c] = 0.5
			continue
		}
		out[c] = (p[c] - n.Min[c]) / span
	}
	return out
}

// FitTransform fits bounds and transforms the whole series.
func (n *Normalizer) FitTransform(points [][numChannels]float64) [][numChannels]float64 {
	n.Fit(points)
	out := make([][numChannels]float64, len(points))
	for i, p := range points {
		out[i] = n.Transform(p)
	}
	return out
}

// Inverse maps a normalized point back to the original scale. A
// degenerate channel inverts to the stored minimum regardless of the
// normalized value.
func (n *Normalizer) Inverse(p [numChannels]float64) [numChannels]float64 {
	var out [numChannels]float64
	for c := 0; c < numChannels; c++ {
		span := n.Max[c] - n.Min[c]
		if span == 0 {
			out[c] = n.Min[c]
			continue
		}
		out[c] = p[c]*span + n.Min[c]
	}
	return out
}
