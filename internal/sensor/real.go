//go:build linux

package sensor

import (
	"fmt"
	"math"
	"time"

	i2c "github.com/d2r2/go-i2c"
	d2rlog "github.com/d2r2/go-logger"
	sht3x "github.com/d2r2/go-sht3x"
	"github.com/warthog618/go-gpiocdev"

	"github.com/keating/ivy-monitor/internal/logic"
)

// Chip is the GPIO character device the ultrasonic lines are requested from.
const Chip = "gpiochip0"

// speed of sound at room temperature, cm/s; the echo covers the distance twice
const soundCmPerSec = 34300.0

// RealGateway reads an SHT3x climate sensor and an HC-SR04 ultrasonic ranger.
type RealGateway struct {
	bus *i2c.I2C
	sht *sht3x.SHT3X

	trigger *gpiocdev.Line
	echo    *gpiocdev.Line
	edges   chan gpiocdev.LineEvent
}

// NewRealGateway opens the I2C bus and requests the ultrasonic lines.
func NewRealGateway(i2cBus int, i2cAddr uint8, pinTrigger, pinEcho int) (*RealGateway, error) {
	// The d2r2 packages log verbosely by default; keep only errors.
	_ = d2rlog.ChangePackageLogLevel("i2c", d2rlog.ErrorLevel)
	_ = d2rlog.ChangePackageLogLevel("sht3x", d2rlog.ErrorLevel)

	bus, err := i2c.NewI2C(i2cAddr, i2cBus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %d: %w", i2cBus, err)
	}

	sensor := sht3x.NewSHT3X()
	if err := sensor.Reset(bus); err != nil {
		bus.Close()
		return nil, fmt.Errorf("reset sht3x: %w", err)
	}

	g := &RealGateway{
		bus:   bus,
		sht:   sensor,
		edges: make(chan gpiocdev.LineEvent, 16),
	}

	g.trigger, err = gpiocdev.RequestLine(Chip, pinTrigger, gpiocdev.AsOutput(0))
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("request trigger pin %d: %w", pinTrigger, err)
	}

	g.echo, err = gpiocdev.RequestLine(Chip, pinEcho,
		gpiocdev.AsInput,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(g.onEdge))
	if err != nil {
		g.trigger.Close()
		bus.Close()
		return nil, fmt.Errorf("request echo pin %d: %w", pinEcho, err)
	}

	return g, nil
}

func (g *RealGateway) onEdge(ev gpiocdev.LineEvent) {
	select {
	case g.edges <- ev:
	default:
		// Stale edges are drained before each measurement; dropping here
		// is harmless.
	}
}

// PollClimate performs one single-shot SHT3x measurement.
func (g *RealGateway) PollClimate() (logic.ClimateSample, error) {
	temp, rh, err := g.sht.ReadTemperatureAndRelativeHumidity(g.bus, sht3x.RepeatabilityLow)
	if err != nil {
		return logic.ClimateSample{}, fmt.Errorf("climate read: %w", err)
	}
	t, h := float64(temp), float64(rh)
	if math.IsNaN(t) || math.IsNaN(h) {
		return logic.ClimateSample{}, ErrNotANumber
	}
	return logic.ClimateSample{TemperatureC: t, HumidityPct: h}, nil
}

// PollDistance issues a 10us trigger pulse and times the echo pulse using
// kernel edge-event timestamps. Returns ErrNoEcho after EchoTimeout.
func (g *RealGateway) PollDistance() (float64, error) {
	// Drop edges left over from a previous (possibly timed-out) measurement.
	for {
		select {
		case <-g.edges:
			continue
		default:
		}
		break
	}

	if err := g.trigger.SetValue(1); err != nil {
		return 0, fmt.Errorf("trigger high: %w", err)
	}
	time.Sleep(10 * time.Microsecond)
	if err := g.trigger.SetValue(0); err != nil {
		return 0, fmt.Errorf("trigger low: %w", err)
	}

	deadline := time.NewTimer(EchoTimeout)
	defer deadline.Stop()

	var rise time.Duration
	for {
		select {
		case ev := <-g.edges:
			switch {
			case ev.Type == gpiocdev.LineEventRisingEdge:
				rise = ev.Timestamp
			case ev.Type == gpiocdev.LineEventFallingEdge && rise > 0:
				roundTrip := ev.Timestamp - rise
				if roundTrip <= 0 {
					return 0, ErrNoEcho
				}
				return roundTrip.Seconds() * soundCmPerSec / 2, nil
			}
		case <-deadline.C:
			return 0, ErrNoEcho
		}
	}
}

// Close releases the I2C bus and the ultrasonic lines.
func (g *RealGateway) Close() error {
	var errs []error
	if err := g.echo.Close(); err != nil {
		errs = append(errs, err)
	}
	_ = g.trigger.SetValue(0)
	if err := g.trigger.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := g.bus.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("close gateway: %v", errs)
	}
	return nil
}
