//go:build linux

package gpio

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/keating/ivy-monitor/internal/logic"
)

// Chip is the GPIO character device all lines are requested from.
const Chip = "gpiochip0"

// RealButton reads the push button from actual hardware.
type RealButton struct {
	line *gpiocdev.Line
}

// NewRealButton requests the button pin as input with pull-up, matching the
// active-low wiring (button shorts the line to ground).
func NewRealButton(pin int) (*RealButton, error) {
	line, err := gpiocdev.RequestLine(Chip, pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		return nil, fmt.Errorf("request button pin %d: %w", pin, err)
	}
	return &RealButton{line: line}, nil
}

// Level returns the raw line level.
func (b *RealButton) Level() (bool, error) {
	v, err := b.line.Value()
	if err != nil {
		return false, fmt.Errorf("read button pin: %w", err)
	}
	return v != 0, nil
}

// Close releases the button line.
func (b *RealButton) Close() error {
	return b.line.Close()
}

// RealBuzzer drives the buzzer line.
type RealBuzzer struct {
	line *gpiocdev.Line
}

// NewRealBuzzer requests the buzzer pin as output, initially off.
func NewRealBuzzer(pin int) (*RealBuzzer, error) {
	line, err := gpiocdev.RequestLine(Chip, pin, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request buzzer pin %d: %w", pin, err)
	}
	return &RealBuzzer{line: line}, nil
}

// Set turns the buzzer on or off.
func (b *RealBuzzer) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := b.line.SetValue(v); err != nil {
		return fmt.Errorf("set buzzer: %w", err)
	}
	return nil
}

// Pulse sounds the buzzer for d.
func (b *RealBuzzer) Pulse(d time.Duration) error {
	if err := b.Set(true); err != nil {
		return err
	}
	time.Sleep(d)
	return b.Set(false)
}

// Close silences the buzzer and releases the line.
func (b *RealBuzzer) Close() error {
	// Best effort: leave the line low so the buzzer is not stuck on after
	// the daemon exits.
	_ = b.line.SetValue(0)
	return b.line.Close()
}

// RealIndicator drives the RGB LED over three plain output lines.
type RealIndicator struct {
	r, g, b *gpiocdev.Line
}

// NewRealIndicator requests the three LED pins as outputs, initially off.
func NewRealIndicator(pinR, pinG, pinB int) (*RealIndicator, error) {
	r, err := gpiocdev.RequestLine(Chip, pinR, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request red pin %d: %w", pinR, err)
	}
	g, err := gpiocdev.RequestLine(Chip, pinG, gpiocdev.AsOutput(0))
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("request green pin %d: %w", pinG, err)
	}
	b, err := gpiocdev.RequestLine(Chip, pinB, gpiocdev.AsOutput(0))
	if err != nil {
		g.Close()
		r.Close()
		return nil, fmt.Errorf("request blue pin %d: %w", pinB, err)
	}
	return &RealIndicator{r: r, g: g, b: b}, nil
}

// Set applies the color. Without PWM each channel thresholds at half scale.
func (i *RealIndicator) Set(c logic.Color) error {
	for _, ch := range []struct {
		line  *gpiocdev.Line
		level uint8
	}{{i.r, c.R}, {i.g, c.G}, {i.b, c.B}} {
		v := 0
		if ch.level >= 128 {
			v = 1
		}
		if err := ch.line.SetValue(v); err != nil {
			return fmt.Errorf("set indicator: %w", err)
		}
	}
	return nil
}

// Close darkens the LED and releases the lines.
func (i *RealIndicator) Close() error {
	var errs []error
	for _, line := range []*gpiocdev.Line{i.r, i.g, i.b} {
		_ = line.SetValue(0)
		if err := line.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close indicator: %v", errs)
	}
	return nil
}
