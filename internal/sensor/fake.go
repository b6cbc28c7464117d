package sensor

import (
	"errors"

	"github.com/keating/ivy-monitor/internal/logic"
)

// ClimateResult is one scripted climate poll outcome.
type ClimateResult struct {
	Sample logic.ClimateSample
	Err    error
}

// DistanceResult is one scripted distance poll outcome.
type DistanceResult struct {
	Cm  float64
	Err error
}

// FakeGateway returns scripted poll results. Each poll consumes the next
// entry; when a script is exhausted the last entry repeats.
type FakeGateway struct {
	Climate  []ClimateResult
	Distance []DistanceResult

	ci, di int

	// Closed tracks if Close was called.
	Closed bool

	// ClimatePolls and DistancePolls count calls.
	ClimatePolls  int
	DistancePolls int
}

// NewFakeGateway creates a FakeGateway with the given scripts.
func NewFakeGateway(climate []ClimateResult, distance []DistanceResult) *FakeGateway {
	return &FakeGateway{Climate: climate, Distance: distance}
}

// Steady returns a FakeGateway that always answers with the same values.
func Steady(tempC, humidPct, distCm float64) *FakeGateway {
	return NewFakeGateway(
		[]ClimateResult{{Sample: logic.ClimateSample{TemperatureC: tempC, HumidityPct: humidPct}}},
		[]DistanceResult{{Cm: distCm}},
	)
}

// PollClimate returns the next scripted climate result.
func (f *FakeGateway) PollClimate() (logic.ClimateSample, error) {
	f.ClimatePolls++
	if len(f.Climate) == 0 {
		return logic.ClimateSample{}, errors.New("no climate results configured")
	}
	r := f.Climate[f.ci]
	if f.ci < len(f.Climate)-1 {
		f.ci++
	}
	return r.Sample, r.Err
}

// PollDistance returns the next scripted distance result.
func (f *FakeGateway) PollDistance() (float64, error) {
	f.DistancePolls++
	if len(f.Distance) == 0 {
		return 0, errors.New("no distance results configured")
	}
	r := f.Distance[f.di]
	if f.di < len(f.Distance)-1 {
		f.di++
	}
	return r.Cm, r.Err
}

// Close marks the gateway as closed.
func (f *FakeGateway) Close() error {
	f.Closed = true
	return nil
}
