//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CdevSink drives pins on actual hardware using the Linux GPIO
// character device.
type CdevSink struct {
	chip  *gpiocdev.Chip
	lines map[int]*gpiocdev.Line
}

// NewCdevSink opens the named GPIO chip (e.g. "gpiochip0").
func NewCdevSink(chip string) (*CdevSink, error) {
	c, err := gpiocdev.NewChip(chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chip, err)
	}

	return &CdevSink{
		chip:  c,
		lines: make(map[int]*gpiocdev.Line),
	}, nil
}

// Initialize claims the pin as an output without glitching it: the line
// is requested as input first, its present level read, and the line then
// reconfigured to drive that same level.
func (s *CdevSink) Initialize(pin int) error {
	if _, ok := s.lines[pin]; ok {
		return nil
	}

	line, err := s.chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithConsumer("tempmon"))
	if err != nil {
		return fmt.Errorf("request pin %d: %w", pin, err)
	}

	v, err := line.Value()
	if err != nil {
		line.Close()
		return fmt.Errorf("read pin %d: %w", pin, err)
	}

	if err := line.Reconfigure(gpiocdev.AsOutput(v)); err != nil {
		line.Close()
		return fmt.Errorf("configure pin %d as output: %w", pin, err)
	}

	s.lines[pin] = line
	return nil
}

// SetLevel drives the pin high or low.
func (s *CdevSink) SetLevel(pin int, level bool) error {
	line, err := s.line(pin)
	if err != nil {
		return err
	}

	v := 0
	if level {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("set pin %d: %w", pin, err)
	}
	return nil
}

// ReadLevel reports the level the pin is driven at.
func (s *CdevSink) ReadLevel(pin int) (bool, error) {
	line, err := s.line(pin)
	if err != nil {
		return false, err
	}

	v, err := line.Value()
	if err != nil {
		return false, fmt.Errorf("read pin %d: %w", pin, err)
	}
	return v == 1, nil
}

// Close releases all lines and the chip. Lines stay configured as
// outputs at their driven levels, so pins hold through process exit.
func (s *CdevSink) Close() error {
	var errs []error

	for pin, line := range s.lines {
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", pin, err))
		}
	}
	if s.chip != nil {
		if err := s.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func (s *CdevSink) line(pin int) (*gpiocdev.Line, error) {
	line, ok := s.lines[pin]
	if !ok {
		return nil, fmt.Errorf("pin %d not initialized", pin)
	}
	return line, nil
}
