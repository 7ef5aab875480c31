package forecast

import (
	"math"
	"testing"
)

func TestNormalizerRoundTrip(t *testing.T) {
	points := [][numChannels]float64{
		{40, 30, 30},
		{50, 25, 25},
		{60, 20, 20},
		{45, 35, 20},
	}
	n := &Normalizer{}
	norm := n.FitTransform(points)

	for i, p := range norm {
		for c := 0; c < numChannels; c++ {
			if p[c] < 0 || p[c] > 1 {
				t.Errorf("point %d channel %d: normalized value %f outside [0,1]", i, c, p[c])
			}
		}
		back := n.Inverse(p)
		for c := 0; c < numChannels; c++ {
			if math.Abs(back[c]-points[i][c]) > 1e-9 {
				t.Errorf("point %d channel %d: round trip %f != %f", i, c, back[c], points[i][c])
			}
		}
	}
}

func TestNormalizerBounds(t *testing.T) {
	points := [][numChannels]float64{
		{40, 30, 30},
		{60, 20, 20},
		{50, 25, 25},
	}
	n := &Normalizer{}
	n.Fit(points)

	if n.Min[chPos] != 40 || n.Max[chPos] != 60 {
		t.Errorf("positive bounds = [%f, %f], want [40, 60]", n.Min[chPos], n.Max[chPos])
	}
	if n.Min[chNeg] != 20 || n.Max[chNeg] != 30 {
		t.Errorf("negative bounds = [%f, %f], want [20, 30]", n.Min[chNeg], n.Max[chNeg])
	}
}

func TestNormalizerDegenerateChannel(t *testing.T) {
	// constant channels: transform must emit 0.5, inverse the stored min
	points := [][numChannels]float64{
		{45, 25, 30},
		{45, 25, 30},
		{45, 25, 30},
	}
	n := &Normalizer{}
	norm := n.FitTransform(points)

	for i, p := range norm {
		for c := 0; c < numChannels; c++ {
			if p[c] != 0.5 {
				t.Errorf("point %d channel %d: degenerate transform = %f, want 0.5", i, c, p[c])
			}
		}
	}

	// the inverse of any value on a degenerate channel is the stored min
	back := n.Inverse([numChannels]float64{0.9, 0.1, 0.0})
	want := [numChannels]float64{45, 25, 30}
	for c := 0; c < numChannels; c++ {
		if back[c] != want[c] {
			t.Errorf("channel %d: degenerate inverse = %f, want %f", c, back[c], want[c])
		}
	}
}
