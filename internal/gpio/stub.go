//go:build !linux

package gpio

import (
	"errors"
	"time"

	"github.com/keating/ivy-monitor/internal/logic"
)

var errNotSupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealButton is not available on non-Linux platforms.
type RealButton struct{}

func NewRealButton(pin int) (*RealButton, error) { return nil, errNotSupported }

func (b *RealButton) Level() (bool, error) { return false, errNotSupported }

func (b *RealButton) Close() error { return nil }

// RealBuzzer is not available on non-Linux platforms.
type RealBuzzer struct{}

func NewRealBuzzer(pin int) (*RealBuzzer, error) { return nil, errNotSupported }

func (b *RealBuzzer) Set(on bool) error { return errNotSupported }

func (b *RealBuzzer) Pulse(d time.Duration) error { return errNotSupported }

func (b *RealBuzzer) Close() error { return nil }

// RealIndicator is not available on non-Linux platforms.
type RealIndicator struct{}

func NewRealIndicator(pinR, pinG, pinB int) (*RealIndicator, error) { return nil, errNotSupported }

func (i *RealIndicator) Set(c logic.Color) error { return errNotSupported }

func (i *RealIndicator) Close() error { return nil }
