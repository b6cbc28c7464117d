// Package status provides a thread-safe status tracker for the ivy-monitor
// daemon. It is read by the HTTP status server and by the MQTT system-event
// payload builder.
package status

import (
	"sync"
	"time"

	"github.com/keating/ivy-monitor/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	LoopMs      int64
	PollMs      int64
	SendMs      int64
	DebounceMs  int64
	HeartbeatMs int64
	UploadURL   string
	Broker      string
	HTTPAddr    string
}

// Counters tracks per-cycle outcomes since startup.
type Counters struct {
	Polls            int
	ClimateFailures  int
	DistanceFailures int
	UploadsOK        int
	UploadsSkipped   int
	UploadsFailed    int
}

// UploadOutcome classifies one upload trigger.
type UploadOutcome string

const (
	UploadOK      UploadOutcome = "OK"
	UploadSkipped UploadOutcome = "SKIPPED"
	UploadFailed  UploadOutcome = "FAILED"
)

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Activation    logic.ActivationState
	Alarm         logic.AlarmState
	Reading       logic.Reading
	Counters      Counters
	Transitions   logic.Counts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Connected     bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Activation: logic.StateIdle,
			Alarm:      logic.AlarmNormal,
			StartTime:  startTime,
			Config:     cfg,
		},
	}
}

// Update sets the activation/alarm states and the current reading.
// Called from the foreground loop on every poll.
func (t *Tracker) Update(activation logic.ActivationState, alarm logic.AlarmState, r logic.Reading) {
	t.mu.Lock()
	t.snap.Activation = activation
	t.snap.Alarm = alarm
	t.snap.Reading = r
	t.mu.Unlock()
}

// CountPoll records one poll cycle and its per-sensor outcomes.
func (t *Tracker) CountPoll(climateOK, distanceOK bool) {
	t.mu.Lock()
	t.snap.Counters.Polls++
	if !climateOK {
		t.snap.Counters.ClimateFailures++
	}
	if !distanceOK {
		t.snap.Counters.DistanceFailures++
	}
	t.mu.Unlock()
}

// CountActivation records an accepted activation toggle.
func (t *Tracker) CountActivation(to logic.ActivationState) {
	t.mu.Lock()
	if to == logic.StateActive {
		t.snap.Transitions.Activations++
	} else {
		t.snap.Transitions.Deactivations++
	}
	t.mu.Unlock()
}

// CountAlarm records an alarm state transition.
func (t *Tracker) CountAlarm(raised bool) {
	t.mu.Lock()
	if raised {
		t.snap.Transitions.AlarmsRaised++
	} else {
		t.snap.Transitions.AlarmsCleared++
	}
	t.mu.Unlock()
}

// CountUpload records the outcome of one upload trigger.
// Called from the upload task's goroutine.
func (t *Tracker) CountUpload(outcome UploadOutcome) {
	t.mu.Lock()
	switch outcome {
	case UploadOK:
		t.snap.Counters.UploadsOK++
	case UploadSkipped:
		t.snap.Counters.UploadsSkipped++
	case UploadFailed:
		t.snap.Counters.UploadsFailed++
	}
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetConnected sets the network connectivity status.
func (t *Tracker) SetConnected(connected bool) {
	t.mu.Lock()
	t.snap.Connected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
