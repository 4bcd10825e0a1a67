package debugui

// History is a fixed-size ring of samples, such as frame times in milliseconds.
type History struct {
	samples []float32
	offset  int
	filled  int
}

func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{samples: make([]float32, size)}
}

func (h *History) Push(v float32) {
	h.samples[h.offset] = v
	h.offset = (h.offset + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

func (h *History) Len() int { return h.filled }

// Average of the recorded samples, zero when empty.
func (h *History) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.Ordered() {
		sum += v
	}
	return sum / float32(h.filled)
}

func (h *History) Max() float32 {
	var peak float32
	for _, v := range h.Ordered() {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Ordered returns the recorded samples oldest first.
func (h *History) Ordered() []float32 {
	out := make([]float32, 0, h.filled)
	if h.filled < len(h.samples) {
		return append(out, h.samples[:h.filled]...)
	}
	out = append(out, h.samples[h.offset:]...)
	return append(out, h.samples[:h.offset]...)
}
