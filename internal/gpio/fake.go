package gpio

// FakeSink is a test double that keeps pin levels in memory and records
// every write for assertions.
type FakeSink struct {
	// Levels holds the current level per pin.
	Levels map[int]bool

	// Writes records every SetLevel call in order.
	Writes []Write

	// Initialized records pins passed to Initialize, in order.
	Initialized []int

	// InitError, if set, will be returned by Initialize.
	InitError error

	// ReadError, if set, will be returned by ReadLevel.
	ReadError error

	// WriteError, if set, will be returned by SetLevel.
	WriteError error

	// Closed tracks if Close was called.
	Closed bool
}

// Write records a single SetLevel call.
type Write struct {
	Pin   int
	Level bool
}

// NewFakeSink creates a FakeSink with no pins driven.
func NewFakeSink() *FakeSink {
	return &FakeSink{Levels: make(map[int]bool)}
}

// Initialize records the pin.
func (f *FakeSink) Initialize(pin int) error {
	if f.InitError != nil {
		return f.InitError
	}
	f.Initialized = append(f.Initialized, pin)
	return nil
}

// SetLevel records the write and updates the pin level.
func (f *FakeSink) SetLevel(pin int, level bool) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Levels[pin] = level
	f.Writes = append(f.Writes, Write{Pin: pin, Level: level})
	return nil
}

// ReadLevel returns the current level of the pin. Unset pins read low.
func (f *FakeSink) ReadLevel(pin int) (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	return f.Levels[pin], nil
}

// Close marks the sink as closed.
func (f *FakeSink) Close() error {
	f.Closed = true
	return nil
}

// Reset clears levels, recorded writes and scripted errors.
func (f *FakeSink) Reset() {
	f.Levels = make(map[int]bool)
	f.Writes = nil
	f.Initialized = nil
	f.InitError = nil
	f.ReadError = nil
	f.WriteError = nil
	f.Closed = false
}
