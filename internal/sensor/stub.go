//go:build !linux

package sensor

import (
	"errors"

	"github.com/keating/ivy-monitor/internal/logic"
)

var errNotSupported = errors.New("sensor: not supported on this platform (requires Linux)")

// RealGateway is not available on non-Linux platforms.
type RealGateway struct{}

func NewRealGateway(i2cBus int, i2cAddr uint8, pinTrigger, pinEcho int) (*RealGateway, error) {
	return nil, errNotSupported
}

func (g *RealGateway) PollClimate() (logic.ClimateSample, error) {
	return logic.ClimateSample{}, errNotSupported
}

func (g *RealGateway) PollDistance() (float64, error) { return 0, errNotSupported }

func (g *RealGateway) Close() error { return nil }
