// Package sensor wraps the climate and distance sensors behind a gateway
// that returns a reading or a failure per call. The gateway performs no
// retries — retry policy belongs to the caller's polling cadence.
// The real implementation talks to an SHT3x over I2C and an HC-SR04
// ultrasonic ranger over GPIO; the fake returns scripted results.
package sensor

import (
	"errors"
	"time"

	"github.com/keating/ivy-monitor/internal/logic"
)

// EchoTimeout bounds the wait for the ultrasonic echo. 30ms of round trip
// corresponds to roughly five meters, the sensor's usable range.
const EchoTimeout = 30 * time.Millisecond

// ErrNoEcho is returned when no echo arrives within EchoTimeout. A timed-out
// echo is a read failure, never a distance of zero.
var ErrNoEcho = errors.New("sensor: no echo within timeout")

// ErrNotANumber is returned when the climate sensor answers with NaN.
var ErrNotANumber = errors.New("sensor: climate read returned NaN")

// Gateway reads the sensors. Any returned error is a read failure for this
// cycle; the previous value stays valid.
type Gateway interface {
	// PollClimate performs one temperature/humidity measurement.
	PollClimate() (logic.ClimateSample, error)

	// PollDistance issues one trigger pulse and measures the echo round
	// trip, returning centimeters.
	PollDistance() (float64, error)

	// Close releases sensor resources.
	Close() error
}

// Default wiring for the ultrasonic ranger (BCM numbering) and the SHT3x.
const (
	DefaultPinTrigger = 23
	DefaultPinEcho    = 24
	DefaultI2CBus     = 1
	DefaultI2CAddr    = 0x44
)
