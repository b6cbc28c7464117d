// Package metrics exposes device counters to Prometheus. Everything hangs
// off a private registry so tests can construct independent instances.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/keating/ivy-monitor/internal/logic"
)

const prefix = "ivy_monitor_"

// Metrics holds the device's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	Polls        prometheus.Counter
	ReadFailures *prometheus.CounterVec
	Uploads      *prometheus.CounterVec

	DeviceActive prometheus.Gauge
	AlarmActive  prometheus.Gauge

	Temperature prometheus.Gauge
	Humidity    prometheus.Gauge
	Distance    prometheus.Gauge
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Polls: factory.NewCounter(prometheus.CounterOpts{
			Name: prefix + "polls_total",
			Help: "Sensor poll cycles performed while active",
		}),
		ReadFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "read_failures_total",
			Help: "Sensor read failures by sensor",
		}, []string{"sensor"}),
		Uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "uploads_total",
			Help: "Upload triggers by result",
		}, []string{"result"}),
		DeviceActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "active",
			Help: "1 while the device is in the Active state",
		}),
		AlarmActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "alarm",
			Help: "1 while a monitored threshold is exceeded",
		}),
		Temperature: factory.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "temperature_celsius",
			Help: "Latest accepted temperature reading",
		}),
		Humidity: factory.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "humidity_percent",
			Help: "Latest accepted relative humidity reading",
		}),
		Distance: factory.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "distance_cm",
			Help: "Latest accepted distance reading",
		}),
	}
}

// Registry returns the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveReading updates the reading gauges for fields that are present.
func (m *Metrics) ObserveReading(r logic.Reading) {
	if r.HasTemperature {
		m.Temperature.Set(float64(r.TemperatureC))
	}
	if r.HasHumidity {
		m.Humidity.Set(float64(r.HumidityPct))
	}
	if r.HasDistance {
		m.Distance.Set(r.DistanceCm)
	}
}

// SetStates updates the activation and alarm gauges.
func (m *Metrics) SetStates(activation logic.ActivationState, alarm logic.AlarmState) {
	if activation == logic.StateActive {
		m.DeviceActive.Set(1)
	} else {
		m.DeviceActive.Set(0)
	}
	if alarm == logic.AlarmRaised {
		m.AlarmActive.Set(1)
	} else {
		m.AlarmActive.Set(0)
	}
}
