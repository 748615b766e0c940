package logic

import "fmt"

// Pin owns one output pin's configuration and its mutable last-observed
// reading. It decides, each tick, whether the pin's physical output must
// change, and applies the change through the sink.
type Pin struct {
	cfg PinConfig

	// lastReading holds the most recent read attempt, successful or not.
	// It starts at 0.0, so a genuine first reading of exactly 0.0 degrees
	// is indistinguishable from "never read" and will not trigger a
	// first-tick action until the value moves.
	lastReading float64
}

// NewPin creates a controller for one configured pin.
func NewPin(cfg PinConfig) *Pin {
	return &Pin{cfg: cfg}
}

// Config returns the pin's immutable configuration.
func (p *Pin) Config() PinConfig {
	return p.cfg
}

// Tick performs one control pass for this pin: read the source, evaluate
// the condition, and drive the sink if the computed level differs from the
// level currently applied. All failure modes are reported as Outcome
// values; Tick never panics and never returns an error, so one bad pin
// cannot halt control of the others.
//
// The condition is only re-evaluated when the reading has moved since the
// previous tick. This is deliberate write-avoidance debouncing: if an
// external agent overrides the pin while the condition holds steady, the
// level is not re-asserted until the temperature changes again.
func (p *Pin) Tick(src TemperatureSource, sink OutputSink, shuttingDown bool) Outcome {
	reading, err := src.Read(p.cfg.Source)
	if err != nil {
		reading = FailedRead()
	}

	out := p.step(reading, err, sink, shuttingDown)

	// Most recent attempt, not most recent success.
	p.lastReading = reading
	return out
}

// step runs the per-tick decision ladder against the previous tick's
// lastReading; the caller updates lastReading afterwards, unconditionally.
func (p *Pin) step(reading float64, readErr error, sink OutputSink, shuttingDown bool) Outcome {
	// A transition into failure is reported once and skips output logic
	// for the tick. Repeated failures fall through: the condition cannot
	// match on a FailedRead, but match-on-terminate still applies.
	if IsFailedRead(reading) && !sameReading(reading, p.lastReading) {
		return Outcome{Kind: ReadFailure, Pin: p.cfg.Pin, Source: p.cfg.Source, Err: readErr}
	}

	if !p.cfg.Op.Valid() {
		return Outcome{Kind: UnsupportedOp, Pin: p.cfg.Pin, Op: p.cfg.Op}
	}

	terminate := p.cfg.MatchOnTerminate && shuttingDown
	match := !sameReading(reading, p.lastReading) && p.cfg.Op.Eval(reading, p.cfg.Threshold)
	if !terminate && !match {
		return Outcome{Kind: None, Pin: p.cfg.Pin}
	}

	current, err := sink.ReadLevel(p.cfg.Pin)
	if err != nil {
		return Outcome{Kind: SinkError, Pin: p.cfg.Pin, Err: fmt.Errorf("read level: %w", err)}
	}
	if current == p.cfg.Level {
		// Already at the desired level; redundant writes are avoided.
		return Outcome{Kind: None, Pin: p.cfg.Pin}
	}
	if err := sink.SetLevel(p.cfg.Pin, p.cfg.Level); err != nil {
		return Outcome{Kind: SinkError, Pin: p.cfg.Pin, Err: fmt.Errorf("set level: %w", err)}
	}

	return Outcome{
		Kind:       Changed,
		Pin:        p.cfg.Pin,
		Reading:    reading,
		Op:         p.cfg.Op,
		Threshold:  p.cfg.Threshold,
		Level:      p.cfg.Level,
		Terminated: terminate,
	}
}
