// Package gpio provides GPIO output control with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Sink drives GPIO output lines addressed by chip line offset.
type Sink interface {
	// Initialize claims the pin as an output, preserving its present level.
	Initialize(pin int) error

	// SetLevel drives the pin high (true) or low (false).
	SetLevel(pin int, level bool) error

	// ReadLevel reports the level the pin is currently driven at.
	ReadLevel(pin int) (bool, error)

	// Close releases GPIO resources. Output levels are left as driven.
	Close() error
}
