package gpio

import (
	"errors"
	"time"

	"github.com/keating/ivy-monitor/internal/logic"
)

// FakeButton is a test double that returns scripted raw levels.
type FakeButton struct {
	// Levels contains scripted raw levels (true = high). Each call to
	// Level() consumes the next one; when exhausted the last level repeats.
	Levels []bool

	// index tracks current position in Levels
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Level()
	ReadError error
}

// NewFakeButton creates a FakeButton with the given scripted levels.
func NewFakeButton(levels []bool) *FakeButton {
	return &FakeButton{Levels: levels}
}

// Level returns the next scripted level.
func (f *FakeButton) Level() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	if len(f.Levels) == 0 {
		return false, errors.New("no levels configured")
	}
	l := f.Levels[f.index]
	if f.index < len(f.Levels)-1 {
		f.index++
	}
	return l, nil
}

// Close marks the button as closed.
func (f *FakeButton) Close() error {
	f.Closed = true
	return nil
}

// FakeBuzzer records buzzer commands.
type FakeBuzzer struct {
	// States records every Set call.
	States []bool

	// Pulses records every Pulse duration.
	Pulses []time.Duration

	Closed bool
}

// NewFakeBuzzer creates a FakeBuzzer.
func NewFakeBuzzer() *FakeBuzzer {
	return &FakeBuzzer{}
}

// Set records the commanded state.
func (f *FakeBuzzer) Set(on bool) error {
	f.States = append(f.States, on)
	return nil
}

// Pulse records the pulse without blocking.
func (f *FakeBuzzer) Pulse(d time.Duration) error {
	f.Pulses = append(f.Pulses, d)
	return nil
}

// Close marks the buzzer as closed.
func (f *FakeBuzzer) Close() error {
	f.Closed = true
	return nil
}

// On reports the last commanded state, or false if none.
func (f *FakeBuzzer) On() bool {
	if len(f.States) == 0 {
		return false
	}
	return f.States[len(f.States)-1]
}

// FakeIndicator records commanded colors.
type FakeIndicator struct {
	Colors []logic.Color
	Closed bool
}

// NewFakeIndicator creates a FakeIndicator.
func NewFakeIndicator() *FakeIndicator {
	return &FakeIndicator{}
}

// Set records the commanded color.
func (f *FakeIndicator) Set(c logic.Color) error {
	f.Colors = append(f.Colors, c)
	return nil
}

// Close marks the indicator as closed.
func (f *FakeIndicator) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recently commanded color, or the zero color.
func (f *FakeIndicator) Last() logic.Color {
	if len(f.Colors) == 0 {
		return logic.Color{}
	}
	return f.Colors[len(f.Colors)-1]
}
