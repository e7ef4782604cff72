package timing

// driftCapacity bounds the ring; old enough samples carry no signal.
const driftCapacity = 32

// driftRing is a fixed-capacity ring buffer of drift readings. When full,
// the oldest sample is evicted first.
type driftRing struct {
	buf   []float64
	head  int
	count int
}

func newDriftRing(capacity int) driftRing {
	return driftRing{buf: make([]float64, capacity)}
}

func (r *driftRing) push(v float64) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// samples returns the recorded values oldest first.
func (r *driftRing) samples() []float64 {
	out := make([]float64, 0, r.count)
	start := r.head - r.count
	if start < 0 {
		start += len(r.buf)
	}
	for i := 0; i < r.count; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

func (r *driftRing) mean() float64 {
	if r.count == 0 {
		return 0
	}
	var sum float64
	for _, v := range r.samples() {
		sum += v
	}
	return sum / float64(r.count)
}
