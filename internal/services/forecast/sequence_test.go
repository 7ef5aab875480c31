package forecast

import (
	"errors"
	"math"
	"testing"
)

func smallSequenceConfig() SequenceConfig {
	return SequenceConfig{
		SeqLen:       14,
		Hidden:       8,
		Layers:       2,
		Epochs:       5,
		BatchSize:    8,
		LearningRate: 0.001,
		Dropout:      0.2,
		Seed:         7,
	}
}

// normSeries builds a deterministic series of normalized vectors.
func normSeries(n int) [][numChannels]float64 {
	out := make([][numChannels]float64, n)
	for i := range out {
		v := 0.5 + 0.3*math.Sin(float64(i)/3)
		out[i] = [numChannels]float64{v, 1 - v, 0.5}
	}
	return out
}

func fittedScaler() *Normalizer {
	n := &Normalizer{}
	n.Fit([][numChannels]float64{{0, 0, 0}, {1, 1, 1}})
	return n
}

func TestSequenceFitInsufficient(t *testing.T) {
	f := NewSequenceForecaster(smallSequenceConfig())
	_, err := f.Fit(normSeries(20), fittedScaler())

	var ide *InsufficientDataError
	if !errors.As(err, &ide) {
		t.Fatalf("Fit error = %v, want InsufficientDataError", err)
	}
	if ide.Required != 21 || ide.Supplied != 20 {
		t.Errorf("error carries required=%d supplied=%d, want 21/20", ide.Required, ide.Supplied)
	}
}

func TestSequenceRollSeedLength(t *testing.T) {
	f := NewSequenceForecaster(smallSequenceConfig())
	if _, err := f.Roll(normSeries(10), 5); err == nil {
		t.Fatal("expected an error for a seed shorter than the window")
	}
}

func TestSequenceRollOutputs(t *testing.T) {
	f := NewSequenceForecaster(smallSequenceConfig())
	series := normSeries(40)
	if _, err := f.Fit(series, fittedScaler()); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	out, err := f.Roll(series[len(series)-14:], 7)
	if err != nil {
		t.Fatalf("Roll: %v", err)
	}
	if len(out) != 7 {
		t.Fatalf("Roll returned %d points, want 7", len(out))
	}
	for i, p := range out {
		for c := 0; c < numChannels; c++ {
			if math.IsNaN(p[c]) || math.IsInf(p[c], 0) {
				t.Errorf("step %d channel %d: non-finite output %f", i, c, p[c])
			}
		}
	}
}

func TestSequenceDeterministicWithSeed(t *testing.T) {
	series := normSeries(40)

	a := NewSequenceForecaster(smallSequenceConfig())
	if _, err := a.Fit(series, fittedScaler()); err != nil {
		t.Fatalf("Fit a: %v", err)
	}
	b := NewSequenceForecaster(smallSequenceConfig())
	if _, err := b.Fit(series, fittedScaler()); err != nil {
		t.Fatalf("Fit b: %v", err)
	}

	outA, err := a.Roll(series[len(series)-14:], 5)
	if err != nil {
		t.Fatalf("Roll a: %v", err)
	}
	outB, err := b.Roll(series[len(series)-14:], 5)
	if err != nil {
		t.Fatalf("Roll b: %v", err)
	}
	for i := range outA {
		if outA[i] != outB[i] {
			t.Errorf("step %d: same seed diverged: %v vs %v", i, outA[i], outB[i])
		}
	}
}

func TestSequenceHoldoutAccuracyRange(t *testing.T) {
	f := NewSequenceForecaster(smallSequenceConfig())
	acc, err := f.Fit(normSeries(50), fittedScaler())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if acc < 0 || acc > 1 {
		t.Errorf("accuracy = %f, want within [0,1]", acc)
	}
}
