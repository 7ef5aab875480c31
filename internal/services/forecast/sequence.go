package forecast

import (
	"fmt"
	"math"
	"math/rand"
)

// minTrainExtra is the number of points beyond one window required to
// form a usable train/holdout split.
const minTrainExtra = 7

// headHidden is the width of the feed-forward head's hidden layer.
const headHidden = 32

// Adam optimizer constants.
const (
	adamBeta1 = 0.9
	adamBeta2 = 0.999
	adamEps   = 1e-8
)

// SequenceConfig holds the recurrent model hyperparameters. Zero values
// fall back to the production defaults.
type SequenceConfig struct {
	SeqLen       int
	Hidden       int
	Layers       int
	Epochs       int
	BatchSize    int
	LearningRate float64
	Dropout      float64
	Seed         int64
}

// DefaultSequenceConfig returns the production hyperparameters.
func DefaultSequenceConfig() SequenceConfig {
	return SequenceConfig{
		SeqLen:       14,
		Hidden:       64,
		Layers:       2,
		Epochs:       50,
		BatchSize:    32,
		LearningRate: 0.001,
		Dropout:      0.2,
		Seed:         42,
	}
}

func (c *SequenceConfig) normalize() {
	d := DefaultSequenceConfig()
	if c.SeqLen <= 0 {
		c.SeqLen = d.SeqLen
	}
	if c.Hidden <= 0 {
		c.Hidden = d.Hidden
	}
	if c.Layers <= 0 {
		c.Layers = d.Layers
	}
	if c.Epochs <= 0 {
		c.Epochs = d.Epochs
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.LearningRate <= 0 {
		c.LearningRate = d.LearningRate
	}
	if c.Dropout < 0 || c.Dropout >= 1 {
		c.Dropout = d.Dropout
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
}

// param is one weight tensor with its gradient and Adam moment buffers.
type param struct {
	w []float64
	g []float64
	m []float64
	v []float64
}

func newParam(size int) *param {
	return &param{
		w: make([]float64, size),
		g: make([]float64, size),
		m: make([]float64, size),
		v: make([]float64, size),
	}
}

// seqNet is a stacked Elman recurrent network with a feed-forward head:
// per layer h_t = tanh(Wx·x_t + Wh·h_{t-1} + b), then the last hidden
// state feeds Linear -> ReLU -> dropout -> Linear to three outputs.
type seqNet struct {
	cfg  SequenceConfig
	wx   []*param // per layer, Hidden x inDim
	wh   []*param // per layer, Hidden x Hidden
	bh   []*param // per layer, Hidden
	w1   *param   // headHidden x Hidden
	b1   *param
	w2   *param // numChannels x headHidden
	b2   *param
	all  []*param
	rng  *rand.Rand
	step int // adam timestep
}

func newSeqNet(cfg SequenceConfig, rng *rand.Rand) *seqNet {
	n := &seqNet{cfg: cfg, rng: rng}
	in := numChannels
	for l := 0; l < cfg.Layers; l++ {
		wx := newParam(cfg.Hidden * in)
		wh := newParam(cfg.Hidden * cfg.Hidden)
		bh := newParam(cfg.Hidden)
		n.initUniform(wx.w, in, cfg.Hidden)
		n.initUniform(wh.w, cfg.Hidden, cfg.Hidden)
		n.wx = append(n.wx, wx)
		n.wh = append(n.wh, wh)
		n.bh = append(n.bh, bh)
		in = cfg.Hidden
	}
	n.w1 = newParam(headHidden * cfg.Hidden)
	n.b1 = newParam(headHidden)
	n.w2 = newParam(numChannels * headHidden)
	n.b2 = newParam(numChannels)
	n.initUniform(n.w1.w, cfg.Hidden, headHidden)
	n.initUniform(n.w2.w, headHidden, numChannels)

	n.all = append(n.all, n.wx...)
	n.all = append(n.all, n.wh...)
	n.all = append(n.all, n.bh...)
	n.all = append(n.all, n.w1, n.b1, n.w2, n.b2)
	return n
}

// initUniform fills w with Glorot-scaled uniform noise.
func (n *seqNet) initUniform(w []float64, fanIn, fanOut int) {
	scale := math.Sqrt(6.0 / float64(fanIn+fanOut))
	for i := range w {
		w[i] = (n.rng.Float64()*2 - 1) * scale
	}
}

// fwdState holds the activations of one window pass for backprop.
type fwdState struct {
	hs   [][][]float64 // layer -> t -> hidden
	z1   []float64
	mask []float64 // inverted dropout mask, nil at inference
	drop []float64 // head activations after dropout
	out  [numChannels]float64
}

func (n *seqNet) forward(window [][numChannels]float64, train bool) *fwdState {
	H := n.cfg.Hidden
	T := len(window)
	st := &fwdState{hs: make([][][]float64, n.cfg.Layers)}
	for l := range st.hs {
		st.hs[l] = make([][]float64, T)
	}

	for t := 0; t < T; t++ {
		x := window[t][:]
		for l := 0; l < n.cfg.Layers; l++ {
			var prev []float64
			if t > 0 {
				prev = st.hs[l][t-1]
			}
			in := len(x)
			wx := n.wx[l].w
			wh := n.wh[l].w
			bh := n.bh[l].w
			h := make([]float64, H)
			for i := 0; i < H; i++ {
				s := bh[i]
				row := wx[i*in : (i+1)*in]
				for j, xv := range x {
					s += row[j] * xv
				}
				if prev != nil {
					rrow := wh[i*H : (i+1)*H]
					for j, hv := range prev {
						s += rrow[j] * hv
					}
				}
				h[i] = math.Tanh(s)
			}
			st.hs[l][t] = h
			x = h
		}
	}

	hLast := st.hs[n.cfg.Layers-1][T-1]
	st.z1 = make([]float64, headHidden)
	a1 := make([]float64, headHidden)
	for i := 0; i < headHidden; i++ {
		s := n.b1.w[i]
		row := n.w1.w[i*H : (i+1)*H]
		for j, hv := range hLast {
			s += row[j] * hv
		}
		st.z1[i] = s
		if s > 0 {
			a1[i] = s
		}
	}

	st.drop = a1
	if train && n.cfg.Dropout > 0 {
		keep := 1 - n.cfg.Dropout
		st.mask = make([]float64, headHidden)
		st.drop = make([]float64, headHidden)
		for i := range st.mask {
			if n.rng.Float64() < keep {
				st.mask[i] = 1 / keep
				st.drop[i] = a1[i] * st.mask[i]
			}
		}
	}

	for k := 0; k < numChannels; k++ {
		s := n.b2.w[k]
		row := n.w2.w[k*headHidden : (k+1)*headHidden]
		for j, dv := range st.drop {
			s += row[j] * dv
		}
		st.out[k] = s
	}
	return st
}

// backward accumulates gradients for one sample into the param buffers
// via backpropagation through time, returning the sample MSE.
func (n *seqNet) backward(window [][numChannels]float64, st *fwdState, target [numChannels]float64) float64 {
	H := n.cfg.Hidden
	T := len(window)
	L := n.cfg.Layers

	var dOut [numChannels]float64
	loss := 0.0
	for k := 0; k < numChannels; k++ {
		diff := st.out[k] - target[k]
		loss += diff * diff
		dOut[k] = 2 * diff / numChannels
	}
	loss /= numChannels

	// head output layer
	dDrop := make([]float64, headHidden)
	for k := 0; k < numChannels; k++ {
		row := n.w2.w[k*headHidden : (k+1)*headHidden]
		grow := n.w2.g[k*headHidden : (k+1)*headHidden]
		for j := 0; j < headHidden; j++ {
			grow[j] += dOut[k] * st.drop[j]
			dDrop[j] += row[j] * dOut[k]
		}
		n.b2.g[k] += dOut[k]
	}

	// dropout, then relu
	dz1 := make([]float64, headHidden)
	for j := 0; j < headHidden; j++ {
		da := dDrop[j]
		if st.mask != nil {
			da *= st.mask[j]
		}
		if st.z1[j] > 0 {
			dz1[j] = da
		}
	}

	// head hidden layer
	hLast := st.hs[L-1][T-1]
	dhLast := make([]float64, H)
	for i := 0; i < headHidden; i++ {
		row := n.w1.w[i*H : (i+1)*H]
		grow := n.w1.g[i*H : (i+1)*H]
		for j := 0; j < H; j++ {
			grow[j] += dz1[i] * hLast[j]
			dhLast[j] += row[j] * dz1[i]
		}
		n.b1.g[i] += dz1[i]
	}

	// recurrent layers, top down; dcur[t] is the gradient at h[l][t]
	dcur := make([][]float64, T)
	for t := range dcur {
		dcur[t] = make([]float64, H)
	}
	copy(dcur[T-1], dhLast)

	for l := L - 1; l >= 0; l-- {
		inDim := H
		if l == 0 {
			inDim = numChannels
		}
		var dlow [][]float64
		if l > 0 {
			dlow = make([][]float64, T)
			for t := range dlow {
				dlow[t] = make([]float64, H)
			}
		}
		wx := n.wx[l].w
		gwx := n.wx[l].g
		wh := n.wh[l].w
		gwh := n.wh[l].g
		gbh := n.bh[l].g

		for t := T - 1; t >= 0; t-- {
			h := st.hs[l][t]
			var xin []float64
			if l == 0 {
				xin = window[t][:]
			} else {
				xin = st.hs[l-1][t]
			}
			var hprev []float64
			if t > 0 {
				hprev = st.hs[l][t-1]
			}
			for i := 0; i < H; i++ {
				d := dcur[t][i] * (1 - h[i]*h[i]) // tanh'
				if d == 0 {
					continue
				}
				row := wx[i*inDim : (i+1)*inDim]
				growx := gwx[i*inDim : (i+1)*inDim]
				for j := 0; j < inDim; j++ {
					growx[j] += d * xin[j]
					if l > 0 {
						dlow[t][j] += row[j] * d
					}
				}
				if hprev != nil {
					rrow := wh[i*H : (i+1)*H]
					growh := gwh[i*H : (i+1)*H]
					for j := 0; j < H; j++ {
						growh[j] += d * hprev[j]
						dcur[t-1][j] += rrow[j] * d
					}
				}
				gbh[i] += d
			}
		}
		if l > 0 {
			dcur = dlow
		}
	}
	return loss
}

// adamStep applies one Adam update with gradients scaled by invBatch,
// then clears the gradient buffers.
func (n *seqNet) adamStep(lr, invBatch float64) {
	n.step++
	c1 := 1 - math.Pow(adamBeta1, float64(n.step))
	c2 := 1 - math.Pow(adamBeta2, float64(n.step))
	for _, p := range n.all {
		for i, g := range p.g {
			g *= invBatch
			p.m[i] = adamBeta1*p.m[i] + (1-adamBeta1)*g
			p.v[i] = adamBeta2*p.v[i] + (1-adamBeta2)*g*g
			p.w[i] -= lr * (p.m[i] / c1) / (math.Sqrt(p.v[i]/c2) + adamEps)
			p.g[i] = 0
		}
	}
}

// SequenceForecaster learns to predict the next day's normalized
// channel vector from a sliding window of history.
type SequenceForecaster struct {
	cfg SequenceConfig
	net *seqNet
}

func NewSequenceForecaster(cfg SequenceConfig) *SequenceForecaster {
	cfg.normalize()
	return &SequenceForecaster{
		cfg: cfg,
		net: newSeqNet(cfg, rand.New(rand.NewSource(cfg.Seed))),
	}
}

// Fit trains on overlapping windows of the normalized series. The
// trailing ~20% of windows are held out of gradient updates and score
// the model on the percentage scale via the fitted scaler; the returned
// accuracy is max(0, 1 - MAE_pct/100).
func (f *SequenceForecaster) Fit(norm [][numChannels]float64, scaler *Normalizer) (float64, error) {
	minLen := f.cfg.SeqLen + minTrainExtra
	if len(norm) < minLen {
		return 0, &InsufficientDataError{Required: minLen, Supplied: len(norm)}
	}

	seqLen := f.cfg.SeqLen
	nWin := len(norm) - seqLen
	holdN := nWin / 5
	if holdN < 1 {
		holdN = 1
	}
	trainN := nWin - holdN

	idx := make([]int, trainN)
	for i := range idx {
		idx[i] = i
	}
	for epoch := 0; epoch < f.cfg.Epochs; epoch++ {
		f.net.rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		for start := 0; start < len(idx); start += f.cfg.BatchSize {
			end := start + f.cfg.BatchSize
			if end > len(idx) {
				end = len(idx)
			}
			for _, wi := range idx[start:end] {
				window := norm[wi : wi+seqLen]
				st := f.net.forward(window, true)
				f.net.backward(window, st, norm[wi+seqLen])
			}
			f.net.adamStep(f.cfg.LearningRate, 1/float64(end-start))
		}
	}

	var absSum float64
	var cnt int
	for wi := trainN; wi < nWin; wi++ {
		st := f.net.forward(norm[wi:wi+seqLen], false)
		pred := scaler.Inverse(st.out)
		actual := scaler.Inverse(norm[wi+seqLen])
		for c := 0; c < numChannels; c++ {
			absSum += math.Abs(pred[c] - actual[c])
			cnt++
		}
	}
	acc := 1 - absSum/float64(cnt)/100
	if acc < 0 {
		acc = 0
	}
	return acc, nil
}

// Roll produces horizon normalized predictions autoregressively: the
// seed window slides forward by one predicted day per step.
func (f *SequenceForecaster) Roll(seed [][numChannels]float64, horizon int) ([][numChannels]float64, error) {
	if len(seed) != f.cfg.SeqLen {
		return nil, fmt.Errorf("rollout seed: want %d points, got %d", f.cfg.SeqLen, len(seed))
	}
	win := newRollWindow(f.cfg.SeqLen)
	for _, v := range seed {
		win.Push(v)
	}
	out := make([][numChannels]float64, 0, horizon)
	for i := 0; i < horizon; i++ {
		st := f.net.forward(win.Seq(), false)
		for c := 0; c < numChannels; c++ {
			if math.IsNaN(st.out[c]) || math.IsInf(st.out[c], 0) {
				return nil, fmt.Errorf("step %d channel %d: %w", i, c, ErrNonFinite)
			}
		}
		out = append(out, st.out)
		win.Push(st.out)
	}
	return out, nil
}
