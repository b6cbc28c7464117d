// Package gpio provides access to the device's discrete lines: the push
// button input and the buzzer and RGB indicator outputs.
// The real implementations use the Linux GPIO character device.
// The fakes allow testing without hardware.
package gpio

import (
	"time"

	"github.com/keating/ivy-monitor/internal/logic"
)

// Button samples the raw push-button level.
// The button is active-low: pressed reads false.
type Button interface {
	// Level returns the current raw line level (true = high).
	Level() (bool, error)

	// Close releases the line.
	Close() error
}

// Buzzer drives the piezo buzzer.
type Buzzer interface {
	// Set turns the buzzer on or off.
	Set(on bool) error

	// Pulse sounds the buzzer for d and turns it back off. Blocks for d.
	Pulse(d time.Duration) error

	// Close turns the buzzer off and releases the line.
	Close() error
}

// Indicator drives the RGB LED. Channels are 0-255; plain GPIO lines without
// PWM threshold each channel at half scale.
type Indicator interface {
	Set(c logic.Color) error
	Close() error
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinButton = 17
	DefaultPinBuzzer = 27
	DefaultPinRed    = 5
	DefaultPinGreen  = 6
	DefaultPinBlue   = 13
)
