package uplink

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/keating/ivy-monitor/internal/logic"
)

func fullReading() logic.Reading {
	return logic.Reading{
		TemperatureC: 24, HasTemperature: true,
		HumidityPct: 61, HasHumidity: true,
		DistanceCm: 199.6, HasDistance: true,
	}
}

func TestBuildPayloadRoundsDistance(t *testing.T) {
	p := BuildPayload(fullReading())
	if p.DeviceID != "ivy-01" {
		t.Errorf("device_id: got %q", p.DeviceID)
	}
	if p.Temp != 24 || p.Humid != 61 {
		t.Errorf("climate: got %d/%d", p.Temp, p.Humid)
	}
	if p.Proxy != 200 {
		t.Errorf("proxy: got %d, want 200", p.Proxy)
	}
}

func TestBuildPayloadAbsentFields(t *testing.T) {
	p := BuildPayload(logic.Reading{})
	if p.Temp != AbsentValue || p.Humid != AbsentValue || p.Proxy != AbsentValue {
		t.Errorf("absent fields: got %+v", p)
	}
}

func TestUploadPostsFixedJSONShape(t *testing.T) {
	var gotCT string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &gotBody)
		w.Write([]byte(`{"status":"ok","Display":"warm and dry","Confid":90}`))
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL, time.Second, zap.NewNop())
	if err := u.Upload(fullReading()); err != nil {
		t.Fatalf("upload: %v", err)
	}

	if gotCT != "application/json" {
		t.Errorf("content type: got %q", gotCT)
	}
	want := map[string]float64{"Temp": 24, "Humid": 61, "Proxy": 200}
	for k, v := range want {
		got, ok := gotBody[k].(float64)
		if !ok || got != v {
			t.Errorf("%s: got %v, want %v", k, gotBody[k], v)
		}
	}
	if gotBody["device_id"] != "ivy-01" {
		t.Errorf("device_id: got %v", gotBody["device_id"])
	}
}

func TestUploadIgnoresApplicationErrors(t *testing.T) {
	// A 5xx from the endpoint is an application-level failure the device
	// discards; only transport errors surface.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "agent unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL, time.Second, zap.NewNop())
	if err := u.Upload(fullReading()); err != nil {
		t.Errorf("application error leaked as upload failure: %v", err)
	}
}

func TestUploadSurfacesTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	u := NewHTTPUploader(srv.URL, time.Second, zap.NewNop())
	if err := u.Upload(fullReading()); err == nil {
		t.Error("expected a transport error against a closed server")
	}
}

func TestEnvConnectivity(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{"", true}, // no pi-helper: assume up
		{"connected", true},
		{"disconnected", false},
		{"portal", false},
	}
	for _, c := range cases {
		t.Setenv(envNetworkStatus, c.status)
		if got := (EnvConnectivity{}).IsConnected(); got != c.want {
			t.Errorf("status %q: got %v, want %v", c.status, got, c.want)
		}
	}
}
