// Package logic contains pure business logic for the environmental monitor.
// This package has NO external dependencies (no GPIO, I2C, HTTP, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// ActivationState represents the device operating mode.
type ActivationState string

const (
	StateIdle   ActivationState = "IDLE"
	StateActive ActivationState = "ACTIVE"
)

// AlarmState classifies the current reading against the alarm thresholds.
// It is derived on every evaluation and never stored.
type AlarmState string

const (
	AlarmNormal AlarmState = "NORMAL"
	AlarmRaised AlarmState = "ALARM"
)

// Color is an RGB indicator value, 0-255 per channel.
type Color struct {
	R, G, B uint8
}

// Indicator colors. The temperature bands walk blue -> teal -> green -> amber;
// overlays and the alarm color override the band.
var (
	ColorOff      = Color{}
	ColorIdle     = Color{R: 24, G: 24, B: 24}
	ColorAlarm    = Color{R: 255}
	ColorCoolBlue = Color{G: 64, B: 255}
	ColorTeal     = Color{G: 200, B: 170}
	ColorComfort  = Color{G: 255, B: 64}
	ColorAmber    = Color{R: 255, G: 160}
	ColorHumid    = Color{R: 70, G: 110, B: 255}
	ColorNear     = Color{R: 255, G: 80, B: 40}
)

// ClimateSample is a raw temperature/humidity pair as returned by the climate
// sensor, before rounding to display units.
type ClimateSample struct {
	TemperatureC float64
	HumidityPct  float64
}

// Reading is the latest accepted sensor values in display/alarm-ready units.
// Absent fields (never successfully read) are tracked with Has flags; a
// failed read never clears a previously valid field.
type Reading struct {
	TemperatureC   int
	HasTemperature bool

	HumidityPct int
	HasHumidity bool

	DistanceCm  float64
	HasDistance bool

	// UpdatedAt is the time of the last successful apply of any field.
	UpdatedAt time.Time
}

// Counts tracks activation and alarm transitions since startup.
type Counts struct {
	Activations   int
	Deactivations int
	AlarmsRaised  int
	AlarmsCleared int
}
