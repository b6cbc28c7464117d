package mqtt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/keating/ivy-monitor/internal/logic"
)

func TestFormatPayload(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ev := Event{
		Timestamp: at,
		Type:      EventAlarmRaised,
		Reading: logic.Reading{
			TemperatureC: 40, HasTemperature: true,
			HumidityPct: 50, HasHumidity: true,
		},
	}

	b, err := FormatPayload(ev)
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	var parsed map[string]map[string]any
	if err := json.Unmarshal(b, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	m := parsed["monitor"]
	if m["event"] != "ALARM_RAISED" {
		t.Errorf("event: got %v", m["event"])
	}
	if m["timestamp"] != "2026-03-01T09:00:00Z" {
		t.Errorf("timestamp: got %v", m["timestamp"])
	}
	reading := m["reading"].(map[string]any)
	if reading["temperature_c"].(float64) != 40 {
		t.Errorf("temperature: got %v", reading["temperature_c"])
	}
	if _, present := reading["distance_cm"]; present {
		t.Errorf("absent distance rendered: %v", reading["distance_cm"])
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"status":{"event":"STARTUP"}}`)
	b, err := FormatSystemPayload(SystemEvent{RawPayload: raw})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if string(b) != string(raw) {
		t.Errorf("raw payload not passed through: %s", b)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b, err := FormatSystemPayload(SystemEvent{Timestamp: at, Event: "SHUTDOWN", Reason: "SIGTERM"})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	var parsed map[string]map[string]any
	if err := json.Unmarshal(b, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	s := parsed["system"]
	if s["event"] != "SHUTDOWN" || s["reason"] != "SIGTERM" {
		t.Errorf("got %v", s)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()
	f.Publish(Event{Type: EventActivated})
	f.Publish(Event{Type: EventAlarmRaised})
	types := f.EventTypes()
	if len(types) != 2 || types[0] != EventActivated || types[1] != EventAlarmRaised {
		t.Errorf("recorded types: %v", types)
	}
	if len(f.Payloads) != 2 {
		t.Errorf("payloads: %d", len(f.Payloads))
	}
}
