package store

import (
	"testing"
	"time"

	"github.com/keating/ivy-monitor/internal/logic"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestZeroStoreIsAllAbsent(t *testing.T) {
	s := New()
	r := s.Snapshot()
	if r.HasTemperature || r.HasHumidity || r.HasDistance {
		t.Errorf("fresh store should have all fields absent: %+v", r)
	}
}

func TestApplyClimateRounds(t *testing.T) {
	cases := []struct {
		temp, humid  float64
		wantT, wantH int
	}{
		{24.4, 59.5, 24, 60},
		{24.5, 59.4, 25, 59},
		{-0.6, 0.4, -1, 0},
	}
	for _, c := range cases {
		s := New()
		s.ApplyClimate(logic.ClimateSample{TemperatureC: c.temp, HumidityPct: c.humid}, t0)
		r := s.Snapshot()
		if r.TemperatureC != c.wantT {
			t.Errorf("temp %.1f: got %d, want %d", c.temp, r.TemperatureC, c.wantT)
		}
		if r.HumidityPct != c.wantH {
			t.Errorf("humid %.1f: got %d, want %d", c.humid, r.HumidityPct, c.wantH)
		}
		if !r.HasTemperature || !r.HasHumidity {
			t.Errorf("climate fields should be present after apply")
		}
	}
}

func TestDistanceKeptAsFloat(t *testing.T) {
	s := New()
	s.ApplyDistance(123.45, t0)
	r := s.Snapshot()
	if !r.HasDistance || r.DistanceCm != 123.45 {
		t.Errorf("distance: got %+v, want 123.45 present", r)
	}
}

func TestFailedReadLeavesValueUnchanged(t *testing.T) {
	// A ReadFailure means the caller never applies anything, so the previous
	// values must survive untouched across intervening applies of the other
	// field.
	s := New()
	s.ApplyClimate(logic.ClimateSample{TemperatureC: 22, HumidityPct: 40}, t0)
	s.ApplyDistance(150, t0.Add(5*time.Second))

	// Climate read fails for several cycles: only distance is re-applied.
	s.ApplyDistance(90, t0.Add(10*time.Second))

	r := s.Snapshot()
	if r.TemperatureC != 22 || r.HumidityPct != 40 {
		t.Errorf("climate changed without a successful read: %+v", r)
	}
	if r.DistanceCm != 90 {
		t.Errorf("distance: got %.1f, want 90", r.DistanceCm)
	}
}

func TestSuccessiveReadsReflectMostRecent(t *testing.T) {
	s := New()
	s.ApplyClimate(logic.ClimateSample{TemperatureC: 22, HumidityPct: 40}, t0)
	s.ApplyClimate(logic.ClimateSample{TemperatureC: 23, HumidityPct: 41}, t0.Add(5*time.Second))
	r := s.Snapshot()
	if r.TemperatureC != 23 || r.HumidityPct != 41 {
		t.Errorf("got %+v, want most recent 23/41", r)
	}
	if !r.UpdatedAt.Equal(t0.Add(5 * time.Second)) {
		t.Errorf("UpdatedAt: got %v", r.UpdatedAt)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	s.ApplyDistance(50, t0)
	snap := s.Snapshot()
	snap.DistanceCm = 999
	if got := s.Snapshot().DistanceCm; got != 50 {
		t.Errorf("mutating a snapshot leaked into the store: %.1f", got)
	}
}
