// Package loop drives the polling cadence over all configured pins and
// applies the final termination pass when a stop is requested.
package loop

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/sweeney/tempmon/internal/logic"
)

// DefaultInterval is the tick cadence.
const DefaultInterval = 2 * time.Second

// DefaultSlice bounds stop reaction latency during the inter-tick pause.
const DefaultSlice = 200 * time.Millisecond

// State identifies a phase of the loop lifecycle.
type State string

const (
	// Running means ticks proceed at the configured cadence.
	Running State = "RUNNING"

	// Draining means a stop was observed and the final tick is in
	// progress. Exactly one tick runs in this state.
	Draining State = "DRAINING"

	// Stopped is terminal.
	Stopped State = "STOPPED"
)

// Loop ticks every pin at a fixed cadence. A single tick fully covers
// every pin before the next pause begins; ticks never overlap.
type Loop struct {
	pins     []*logic.Pin
	source   logic.TemperatureSource
	sink     logic.OutputSink
	interval time.Duration
	slice    time.Duration

	// stop is the only state shared with other goroutines.
	stop  atomic.Bool
	state State

	// sleep is injectable so tests never wall-block.
	sleep func(time.Duration)
}

// New creates a loop over the given pins. Nonpositive durations fall
// back to the defaults.
func New(pins []*logic.Pin, source logic.TemperatureSource, sink logic.OutputSink, interval, slice time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if slice <= 0 {
		slice = DefaultSlice
	}

	return &Loop{
		pins:     pins,
		source:   source,
		sink:     sink,
		interval: interval,
		slice:    slice,
		state:    Running,
		sleep:    time.Sleep,
	}
}

// RequestStop asks the loop to run one final terminating tick and
// return. Safe to call from any goroutine, any number of times, and
// before Run has started.
func (l *Loop) RequestStop() {
	l.stop.Store(true)
}

// State reports the loop's lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// Run ticks until a stop is requested, then runs exactly one more full
// tick with termination semantics and returns. The stop flag is
// sampled once per tick boundary, so every pin within a tick sees the
// same shutdown answer.
func (l *Loop) Run() {
	log.Printf("running: %d pins, tick every %v", len(l.pins), l.interval)

	for {
		final := l.stop.Load()
		if final {
			l.state = Draining
			log.Printf("draining: final tick")
		}

		for _, pin := range l.pins {
			l.report(pin.Tick(l.source, l.sink, final))
		}

		if final {
			break
		}
		l.pause()
	}

	l.state = Stopped
	log.Printf("stopped")
}

// pause sleeps out the tick interval in short slices, returning early
// once a stop is requested.
func (l *Loop) pause() {
	remaining := l.interval
	for remaining > 0 && !l.stop.Load() {
		d := l.slice
		if d > remaining {
			d = remaining
		}
		l.sleep(d)
		remaining -= d
	}
}

func (l *Loop) report(out logic.Outcome) {
	switch out.Kind {
	case logic.Changed:
		line := fmt.Sprintf("%g %s %g :: pin %d = %d",
			out.Reading, out.Op, out.Threshold, out.Pin, levelBit(out.Level))
		if out.Terminated {
			line += " :: termination match"
		}
		log.Print(line)
	case logic.ReadFailure:
		log.Printf("pin %d: read %q failed: %v", out.Pin, out.Source, out.Err)
	case logic.UnsupportedOp:
		log.Printf("pin %d: unsupported operator %q, skipping", out.Pin, out.Op)
	case logic.SinkError:
		log.Printf("pin %d: gpio: %v", out.Pin, out.Err)
	}
}

func levelBit(level bool) int {
	if level {
		return 1
	}
	return 0
}
