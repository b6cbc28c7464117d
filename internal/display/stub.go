//go:build !linux

package display

import "errors"

var errNotSupported = errors.New("display: not supported on this platform (requires Linux)")

// RealDisplay is not available on non-Linux platforms.
type RealDisplay struct{}

func NewRealDisplay(i2cBus int, addr uint8) (*RealDisplay, error) {
	return nil, errNotSupported
}

func (d *RealDisplay) ShowLines(line1, line2 string) error { return errNotSupported }

func (d *RealDisplay) Backlight(on bool) error { return errNotSupported }

func (d *RealDisplay) Close() error { return nil }
