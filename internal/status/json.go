package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string          `json:"event,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Mode          string          `json:"mode"`
	Alarm         string          `json:"alarm"`
	Reading       ReadingJSON     `json:"reading"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	StartTime     string          `json:"start_time"`
	Timestamp     string          `json:"timestamp"`
	Connected     bool            `json:"connected"`
	MQTT          MQTTStatus      `json:"mqtt"`
	Counters      CountersJSON    `json:"counters"`
	Transitions   TransitionsJSON `json:"transitions"`
	Config        ConfigJSON      `json:"config"`
}

// ReadingJSON is the JSON view of the latest reading. Absent fields are
// omitted rather than rendered as zero.
type ReadingJSON struct {
	TemperatureC *int     `json:"temperature_c,omitempty"`
	HumidityPct  *int     `json:"humidity_pct,omitempty"`
	DistanceCm   *float64 `json:"distance_cm,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountersJSON is the JSON representation of the cycle counters.
type CountersJSON struct {
	Polls            int `json:"polls"`
	ClimateFailures  int `json:"climate_failures"`
	DistanceFailures int `json:"distance_failures"`
	UploadsOK        int `json:"uploads_ok"`
	UploadsSkipped   int `json:"uploads_skipped"`
	UploadsFailed    int `json:"uploads_failed"`
}

// TransitionsJSON is the JSON representation of transition counts.
type TransitionsJSON struct {
	Activations   int `json:"activations"`
	Deactivations int `json:"deactivations"`
	AlarmsRaised  int `json:"alarms_raised"`
	AlarmsCleared int `json:"alarms_cleared"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	LoopMs      int64  `json:"loop_ms"`
	PollMs      int64  `json:"poll_ms"`
	SendMs      int64  `json:"send_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	UploadURL   string `json:"upload_url"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	r := ReadingJSON{}
	if snap.Reading.HasTemperature {
		t := snap.Reading.TemperatureC
		r.TemperatureC = &t
	}
	if snap.Reading.HasHumidity {
		h := snap.Reading.HumidityPct
		r.HumidityPct = &h
	}
	if snap.Reading.HasDistance {
		d := snap.Reading.DistanceCm
		r.DistanceCm = &d
	}
	if !snap.Reading.UpdatedAt.IsZero() {
		r.UpdatedAt = snap.Reading.UpdatedAt.UTC().Format(time.RFC3339)
	}

	return StatusInner{
		Mode:          string(snap.Activation),
		Alarm:         string(snap.Alarm),
		Reading:       r,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Connected:     snap.Connected,
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counters: CountersJSON{
			Polls:            snap.Counters.Polls,
			ClimateFailures:  snap.Counters.ClimateFailures,
			DistanceFailures: snap.Counters.DistanceFailures,
			UploadsOK:        snap.Counters.UploadsOK,
			UploadsSkipped:   snap.Counters.UploadsSkipped,
			UploadsFailed:    snap.Counters.UploadsFailed,
		},
		Transitions: TransitionsJSON{
			Activations:   snap.Transitions.Activations,
			Deactivations: snap.Transitions.Deactivations,
			AlarmsRaised:  snap.Transitions.AlarmsRaised,
			AlarmsCleared: snap.Transitions.AlarmsCleared,
		},
		Config: ConfigJSON{
			LoopMs:      snap.Config.LoopMs,
			PollMs:      snap.Config.PollMs,
			SendMs:      snap.Config.SendMs,
			DebounceMs:  snap.Config.DebounceMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			UploadURL:   snap.Config.UploadURL,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
