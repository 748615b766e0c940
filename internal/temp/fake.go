package temp

import (
	"fmt"
	"math"
)

// Fake is a test double that serves scripted reading sequences per
// source id. Each call consumes the next value; once a sequence is
// exhausted, its last value repeats. A NaN entry makes that call fail,
// simulating an unreadable sensor.
type Fake struct {
	// Sequences maps source ids to the readings to serve, in order.
	Sequences map[string][]float64

	// index tracks the current position per source id
	index map[string]int
}

// NewFake creates a Fake with the given sequences.
func NewFake(sequences map[string][]float64) *Fake {
	return &Fake{Sequences: sequences}
}

// Read returns the next scripted reading for the id.
func (f *Fake) Read(id string) (float64, error) {
	seq := f.Sequences[id]
	if len(seq) == 0 {
		return 0, fmt.Errorf("no readings configured for %q", id)
	}

	if f.index == nil {
		f.index = make(map[string]int)
	}
	i := f.index[id]
	if i < len(seq)-1 {
		f.index[id] = i + 1
	}

	v := seq[i]
	if math.IsNaN(v) {
		return 0, fmt.Errorf("scripted read failure for %q", id)
	}
	return v, nil
}

// Reset rewinds every sequence to its start.
func (f *Fake) Reset() {
	f.index = nil
}
