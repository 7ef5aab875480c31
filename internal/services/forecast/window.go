package forecast

// rollWindow is a fixed-size ring buffer of channel vectors. The
// autoregressive rollout seeds it with the tail of the history and then
// pushes each prediction, dropping the oldest observation.
type rollWindow struct {
	buf   [][numChannels]float64
	head  int // index of the oldest element
	count int
}

func newRollWindow(size int) *rollWindow {
	return &rollWindow{buf: make([][numChannels]float64, size)}
}

// Push appends v, evicting the oldest element when full.
func (w *rollWindow) Push(v [numChannels]float64) {
	if w.count < len(w.buf) {
		w.buf[(w.head+w.count)%len(w.buf)] = v
		w.count++
		return
	}
	w.buf[w.head] = v
	w.head = (w.head + 1) % len(w.buf)
}

// Full reports whether the window holds size elements.
func (w *rollWindow) Full() bool { return w.count == len(w.buf) }

// Seq returns the contents oldest to newest as a fresh slice.
func (w *rollWindow) Seq() [][numChannels]float64 {
	out := make([][numChannels]float64, w.count)
	for i := 0; i < w.count; i++ {
		out[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	return out
}
