// Package logic contains the pure per-pin control engine: comparison
// operators, condition evaluation, and the tick state machine.
// This package has NO external dependencies (no GPIO, files, MQTT, or
// sleeping); hardware enters only through the narrow TemperatureSource
// and OutputSink interfaces.
package logic

import "math"

// Op is a comparison operator applied to a temperature reading.
type Op string

// The five supported operators. Anything else makes the pin inert.
const (
	OpEqual          Op = "="
	OpLess           Op = "<"
	OpGreater        Op = ">"
	OpLessOrEqual    Op = "<="
	OpGreaterOrEqual Op = ">="
)

// Valid reports whether o is one of the five supported operators.
func (o Op) Valid() bool {
	switch o {
	case OpEqual, OpLess, OpGreater, OpLessOrEqual, OpGreaterOrEqual:
		return true
	}
	return false
}

// Eval applies the operator to (current, threshold). Evaluation follows
// IEEE-754 comparison semantics, so a FailedRead operand makes every
// operator false, including "=". Unknown operators evaluate false; callers
// must gate on Valid first and route unknown operators to the logged-skip
// path.
func (o Op) Eval(current, threshold float64) bool {
	switch o {
	case OpEqual:
		return current == threshold
	case OpLess:
		return current < threshold
	case OpGreater:
		return current > threshold
	case OpLessOrEqual:
		return current <= threshold
	case OpGreaterOrEqual:
		return current >= threshold
	}
	return false
}

// FailedRead returns the marker value recorded when a temperature source
// could not be read. It is NaN, so under Eval it never compares equal to
// any genuine reading, or to itself.
func FailedRead() float64 {
	return math.NaN()
}

// IsFailedRead reports whether v is the failed-read marker.
func IsFailedRead(v float64) bool {
	return math.IsNaN(v)
}

// sameReading is the reading-identity relation used for change detection:
// unlike Eval, it treats FailedRead as equal to itself, so the transition
// into failure is observable exactly once.
func sameReading(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// PinConfig describes one controlled output pin. Loaded once at startup,
// never mutated.
type PinConfig struct {
	Pin              int     // GPIO line offset of the output pin
	Level            bool    // level to apply when the condition matches
	Op               Op      // comparison operator
	Threshold        float64 // threshold temperature, degrees Celsius
	Source           string  // identifier resolved by the TemperatureSource
	MatchOnTerminate bool    // force Level on the final shutdown tick
}

// TemperatureSource yields current temperatures for opaque source ids.
type TemperatureSource interface {
	// Read returns the temperature in degrees Celsius for the given id.
	// A non-nil error marks the reading as failed for this tick; the
	// value is then ignored.
	Read(id string) (float64, error)
}

// OutputSink drives digital output pins. The current level is always read
// back from the sink rather than cached, so externally applied changes are
// observed.
type OutputSink interface {
	// SetLevel drives the pin to the given level.
	SetLevel(pin int, level bool) error
	// ReadLevel returns the level the pin is currently at.
	ReadLevel(pin int) (bool, error)
}

// OutcomeKind classifies what a tick did for one pin.
type OutcomeKind int

const (
	// None means nothing happened worth reporting and no write occurred.
	None OutcomeKind = iota
	// Changed means the output level was written this tick.
	Changed
	// ReadFailure means the temperature source transitioned into failure.
	ReadFailure
	// UnsupportedOp means the configured operator is not supported.
	UnsupportedOp
	// SinkError means reading or writing the output pin failed.
	SinkError
)

// String returns the string representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case None:
		return "none"
	case Changed:
		return "changed"
	case ReadFailure:
		return "read failure"
	case UnsupportedOp:
		return "unsupported operator"
	case SinkError:
		return "sink error"
	default:
		return "unknown"
	}
}

// Outcome reports the result of one tick of one pin. Failures are values,
// never panics or fatal errors: a bad sensor must not halt control of the
// other pins.
type Outcome struct {
	Kind       OutcomeKind
	Pin        int
	Source     string  // set for ReadFailure
	Reading    float64 // set for Changed
	Op         Op      // set for Changed and UnsupportedOp
	Threshold  float64 // set for Changed
	Level      bool    // set for Changed
	Terminated bool    // Changed was forced by match-on-terminate
	Err        error   // set for ReadFailure and SinkError
}
