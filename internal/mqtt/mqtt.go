// Package mqtt provides MQTT publishing with abstraction for testing.
// The monitor publishes best-effort transition events (activation and alarm
// changes) and system lifecycle events; nothing is queued while disconnected.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/keating/ivy-monitor/internal/logic"
)

// Topic is the MQTT topic for monitor transition events.
const Topic = "home/ivy/monitor/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/ivy/monitor/system"

// EventType represents a device transition.
type EventType string

const (
	EventActivated    EventType = "ACTIVATED"
	EventDeactivated  EventType = "DEACTIVATED"
	EventAlarmRaised  EventType = "ALARM_RAISED"
	EventAlarmCleared EventType = "ALARM_CLEARED"
)

// Event represents a transition to be published, with the reading snapshot
// current at the time of the transition.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Reading   logic.Reading
}

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a transition event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Monitor MonitorPayload `json:"monitor"`
}

// MonitorPayload contains the transition event details.
type MonitorPayload struct {
	Timestamp string         `json:"timestamp"`
	Event     string         `json:"event"`
	Reading   ReadingPayload `json:"reading"`
}

// ReadingPayload is the reading snapshot carried by a transition event.
// Absent fields are omitted.
type ReadingPayload struct {
	TemperatureC *int     `json:"temperature_c,omitempty"`
	HumidityPct  *int     `json:"humidity_pct,omitempty"`
	DistanceCm   *float64 `json:"distance_cm,omitempty"`
}

// FormatPayload creates the JSON payload for a transition event.
func FormatPayload(event Event) ([]byte, error) {
	r := ReadingPayload{}
	if event.Reading.HasTemperature {
		t := event.Reading.TemperatureC
		r.TemperatureC = &t
	}
	if event.Reading.HasHumidity {
		h := event.Reading.HumidityPct
		r.HumidityPct = &h
	}
	if event.Reading.HasDistance {
		d := event.Reading.DistanceCm
		r.DistanceCm = &d
	}
	payload := Payload{
		Monitor: MonitorPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Reading:   r,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
