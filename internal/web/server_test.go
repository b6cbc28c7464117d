package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/keating/ivy-monitor/internal/logic"
	"github.com/keating/ivy-monitor/internal/metrics"
	"github.com/keating/ivy-monitor/internal/status"
)

func newTestServer(t *testing.T) (*Server, *status.Tracker, *metrics.Metrics) {
	t.Helper()
	tracker := status.NewTracker(time.Now(), status.Config{Broker: "tcp://broker:1883"})
	m := metrics.New()
	return New(":0", tracker, m.Registry(), zap.NewNop()), tracker, m
}

func TestStatusJSON(t *testing.T) {
	srv, tracker, _ := newTestServer(t)
	tracker.Update(logic.StateActive, logic.AlarmNormal, logic.Reading{
		TemperatureC: 25, HasTemperature: true,
		HumidityPct: 50, HasHumidity: true,
	})

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/status.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
	var parsed map[string]map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed["status"]["mode"] != "ACTIVE" {
		t.Errorf("mode: got %v", parsed["status"]["mode"])
	}
}

func TestIndexPage(t *testing.T) {
	srv, tracker, _ := newTestServer(t)
	tracker.Update(logic.StateActive, logic.AlarmRaised, logic.Reading{
		TemperatureC: 40, HasTemperature: true,
	})

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, "ACTIVE") {
		t.Error("page should show the device mode")
	}
	if !strings.Contains(page, "ALARM") {
		t.Error("page should show the alarm state")
	}
	if !strings.Contains(page, "40 C") {
		t.Error("page should show the temperature")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _, m := newTestServer(t)
	m.Polls.Add(3)
	m.SetStates(logic.StateActive, logic.AlarmNormal)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	out := string(body)
	if !strings.Contains(out, "ivy_monitor_polls_total 3") {
		t.Errorf("polls counter missing:\n%s", out)
	}
	if !strings.Contains(out, "ivy_monitor_active 1") {
		t.Errorf("active gauge missing:\n%s", out)
	}
}

func TestUnknownPathIs404(t *testing.T) {
	srv, _, _ := newTestServer(t)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}
