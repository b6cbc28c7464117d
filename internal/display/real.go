//go:build linux

package display

import (
	"fmt"
	"time"

	i2c "github.com/d2r2/go-i2c"
)

// PCF8574 backpack bit layout for the HD44780 4-bit interface.
const (
	bitBacklight = 0x08
	bitEnable    = 0x04
	bitRegSel    = 0x01 // register select: 0 = command, 1 = data
)

// HD44780 commands used here.
const (
	cmdClear     = 0x01
	cmdLine1     = 0x80
	cmdLine2     = 0xC0
	cmdDisplayOn = 0x0C
)

// RealDisplay is a 16x2 HD44780 behind a PCF8574 I2C backpack.
type RealDisplay struct {
	bus     *i2c.I2C
	backlit bool
}

// NewRealDisplay opens the backpack and runs the 4-bit init sequence.
func NewRealDisplay(i2cBus int, addr uint8) (*RealDisplay, error) {
	bus, err := i2c.NewI2C(addr, i2cBus)
	if err != nil {
		return nil, fmt.Errorf("open lcd backpack: %w", err)
	}
	d := &RealDisplay{bus: bus, backlit: true}

	// Standard HD44780 wake-up into 4-bit mode, then function set,
	// display on, entry mode, clear.
	for _, c := range []byte{0x33, 0x32, 0x28, cmdDisplayOn, 0x06, cmdClear} {
		if err := d.command(c); err != nil {
			bus.Close()
			return nil, fmt.Errorf("lcd init: %w", err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	return d, nil
}

func (d *RealDisplay) command(b byte) error {
	return d.writeByte(b, false)
}

func (d *RealDisplay) data(b byte) error {
	return d.writeByte(b, true)
}

func (d *RealDisplay) writeByte(b byte, isData bool) error {
	if err := d.writeNibble(b&0xF0, isData); err != nil {
		return err
	}
	return d.writeNibble((b<<4)&0xF0, isData)
}

func (d *RealDisplay) writeNibble(hi byte, isData bool) error {
	v := hi
	if d.backlit {
		v |= bitBacklight
	}
	if isData {
		v |= bitRegSel
	}
	// Latch on the enable pulse falling edge.
	_, err := d.bus.WriteBytes([]byte{v | bitEnable})
	if err != nil {
		return fmt.Errorf("lcd write: %w", err)
	}
	time.Sleep(50 * time.Microsecond)
	if _, err := d.bus.WriteBytes([]byte{v}); err != nil {
		return fmt.Errorf("lcd write: %w", err)
	}
	time.Sleep(50 * time.Microsecond)
	return nil
}

// ShowLines writes both lines, padded/truncated to Width.
func (d *RealDisplay) ShowLines(line1, line2 string) error {
	for i, line := range []string{line1, line2} {
		addr := byte(cmdLine1)
		if i == 1 {
			addr = cmdLine2
		}
		if err := d.command(addr); err != nil {
			return err
		}
		for _, ch := range padLine(line) {
			if err := d.data(byte(ch)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Backlight switches the backpack backlight bit.
func (d *RealDisplay) Backlight(on bool) error {
	d.backlit = on
	v := byte(0)
	if on {
		v = bitBacklight
	}
	if _, err := d.bus.WriteBytes([]byte{v}); err != nil {
		return fmt.Errorf("lcd backlight: %w", err)
	}
	return nil
}

// Close blanks the display and releases the bus handle.
func (d *RealDisplay) Close() error {
	_ = d.command(cmdClear)
	_ = d.Backlight(false)
	return d.bus.Close()
}

// padLine pads or truncates to Width, replacing non-ASCII with spaces since
// the HD44780 character ROM only covers ASCII.
func padLine(s string) []byte {
	out := make([]byte, Width)
	for i := range out {
		out[i] = ' '
	}
	for i := 0; i < len(s) && i < Width; i++ {
		c := s[i]
		if c < 0x20 || c > 0x7E {
			c = ' '
		}
		out[i] = c
	}
	return out
}
