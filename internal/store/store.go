// Package store holds the single shared record of the latest accepted
// readings. It is written only by the foreground loop and read by both the
// foreground loop and the upload task, so access goes through an RWMutex.
package store

import (
	"math"
	"sync"
	"time"

	"github.com/keating/ivy-monitor/internal/logic"
)

// Store is the process-lifetime reading record. The zero reading has all
// fields absent; fields are merged in on each successful poll and are never
// blanked — stale-but-valid data is preferred over an empty display.
type Store struct {
	mu sync.RWMutex
	r  logic.Reading
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// ApplyClimate merges a successful climate read, rounding temperature and
// humidity to the nearest integer. This is the only place raw sensor output
// is converted to display/alarm units.
func (s *Store) ApplyClimate(sample logic.ClimateSample, now time.Time) {
	s.mu.Lock()
	s.r.TemperatureC = int(math.Round(sample.TemperatureC))
	s.r.HasTemperature = true
	s.r.HumidityPct = int(math.Round(sample.HumidityPct))
	s.r.HasHumidity = true
	s.r.UpdatedAt = now
	s.mu.Unlock()
}

// ApplyDistance merges a successful distance read, in centimeters.
func (s *Store) ApplyDistance(cm float64, now time.Time) {
	s.mu.Lock()
	s.r.DistanceCm = cm
	s.r.HasDistance = true
	s.r.UpdatedAt = now
	s.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the reading, never a live
// reference. Safe to use after the lock is released.
func (s *Store) Snapshot() logic.Reading {
	s.mu.RLock()
	r := s.r
	s.mu.RUnlock()
	return r
}
