//go:build !linux

package gpio

import "errors"

// CdevSink is not available on non-Linux platforms.
type CdevSink struct{}

// NewCdevSink returns an error on non-Linux platforms.
func NewCdevSink(chip string) (*CdevSink, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Initialize is not implemented on non-Linux platforms.
func (s *CdevSink) Initialize(pin int) error {
	return errors.New("gpio: not supported")
}

// SetLevel is not implemented on non-Linux platforms.
func (s *CdevSink) SetLevel(pin int, level bool) error {
	return errors.New("gpio: not supported")
}

// ReadLevel is not implemented on non-Linux platforms.
func (s *CdevSink) ReadLevel(pin int) (bool, error) {
	return false, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (s *CdevSink) Close() error {
	return nil
}
