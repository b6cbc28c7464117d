// Package display drives the 16x2 character LCD. The real implementation
// talks to an HD44780 behind a PCF8574 I2C backpack; the fake records lines
// for test assertions.
package display

// Width is the character width of one LCD line.
const Width = 16

// DefaultI2CAddr is the usual PCF8574 backpack address.
const DefaultI2CAddr = 0x27

// Display renders two fixed-width text lines.
type Display interface {
	// ShowLines writes both lines, padded/truncated to Width.
	ShowLines(line1, line2 string) error

	// Backlight switches the backlight.
	Backlight(on bool) error

	// Close blanks the display and releases the bus handle.
	Close() error
}
