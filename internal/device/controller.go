// Package device wires the foreground polling loop and the background upload
// task together. The loop owns all writes: it samples the button, polls the
// sensors into the store, evaluates the alarm rules, and drives the
// indicator, buzzer and display. The upload task parks on a capacity-1
// trigger channel and performs at most one attempt per wake.
package device

import (
	"os"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/keating/ivy-monitor/internal/display"
	"github.com/keating/ivy-monitor/internal/gpio"
	"github.com/keating/ivy-monitor/internal/logic"
	"github.com/keating/ivy-monitor/internal/metrics"
	"github.com/keating/ivy-monitor/internal/mqtt"
	"github.com/keating/ivy-monitor/internal/sensor"
	"github.com/keating/ivy-monitor/internal/status"
	"github.com/keating/ivy-monitor/internal/store"
	"github.com/keating/ivy-monitor/internal/uplink"
)

// Default cadences.
const (
	DefaultLoopInterval = 10 * time.Millisecond
	DefaultPollInterval = 5 * time.Second
	DefaultSendInterval = 2 * time.Minute
	confirmBeep         = 100 * time.Millisecond
)

// Params collects the controller's collaborators and timing. Gateway, Store,
// Button, Buzzer, Indicator, Display, Uploader, Connectivity, Tracker,
// Metrics and Log must be set; Publisher and MQTTStatus may be nil when
// eventing is disabled.
type Params struct {
	Gateway      sensor.Gateway
	Store        *store.Store
	Button       gpio.Button
	Buzzer       gpio.Buzzer
	Indicator    gpio.Indicator
	Display      display.Display
	Uploader     uplink.Uploader
	Connectivity uplink.Connectivity
	Publisher    mqtt.Publisher
	MQTTStatus   mqtt.ConnectionStatus
	Tracker      *status.Tracker
	Metrics      *metrics.Metrics
	Log          *zap.Logger

	PollInterval time.Duration
	SendInterval time.Duration
	Debounce     time.Duration
	Heartbeat    time.Duration // 0 disables

	// Now is the clock; defaults to time.Now. Injectable for tests.
	Now func() time.Time
}

// Controller is the two-task device state machine.
type Controller struct {
	p   Params
	now func() time.Time

	activation *logic.Activation
	alarm      logic.AlarmState

	// active mirrors the activation state for the upload goroutine, which
	// must not touch the loop-owned state machine.
	active atomic.Bool

	// trigger carries "perform one upload" tokens; capacity 1 so extra
	// signals coalesce while an attempt is pending.
	trigger    chan struct{}
	stopUpload chan struct{}
	uploadDone chan struct{}

	sendArmed     bool
	nextPoll      time.Time
	nextSend      time.Time
	lastHeartbeat time.Time
}

// New creates a Controller. Zero timing fields get the defaults.
func New(p Params) *Controller {
	if p.PollInterval <= 0 {
		p.PollInterval = DefaultPollInterval
	}
	if p.SendInterval <= 0 {
		p.SendInterval = DefaultSendInterval
	}
	if p.Debounce <= 0 {
		p.Debounce = logic.DefaultDebounce
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Controller{
		p:          p,
		now:        p.Now,
		activation: logic.NewActivation(p.Debounce),
		alarm:      logic.AlarmNormal,
		trigger:    make(chan struct{}, 1),
		stopUpload: make(chan struct{}),
		uploadDone: make(chan struct{}),
	}
}

// Run drives the foreground loop from the given tick channel until a signal
// arrives. The upload task runs for the duration of the call.
func (c *Controller) Run(tick <-chan time.Time, sig <-chan os.Signal) error {
	c.lastHeartbeat = c.now()

	go c.uploadLoop()
	defer func() {
		close(c.stopUpload)
		<-c.uploadDone
	}()

	c.presentIdle()

	for {
		select {
		case s := <-sig:
			c.p.Log.Info("shutting down", zap.String("signal", s.String()))
			c.publishShutdown(s)
			return nil

		case <-tick:
			c.step(c.now())
		}
	}
}

// step runs one loop iteration. Split out of Run for tests.
func (c *Controller) step(now time.Time) {
	c.handleButton(now)

	if c.activation.State() != logic.StateActive {
		c.heartbeat(now)
		return
	}

	if !now.Before(c.nextPoll) {
		c.poll(now)
		for !now.Before(c.nextPoll) {
			c.nextPoll = c.nextPoll.Add(c.p.PollInterval)
		}
	}

	if c.sendArmed && !now.Before(c.nextSend) {
		c.signalUpload()
		for !now.Before(c.nextSend) {
			c.nextSend = c.nextSend.Add(c.p.SendInterval)
		}
	}

	c.heartbeat(now)
}

func (c *Controller) handleButton(now time.Time) {
	level, err := c.p.Button.Level()
	if err != nil {
		// A malformed pin read is no edge.
		c.p.Log.Warn("button read error", zap.Error(err))
		return
	}

	tr := c.activation.OnButtonSample(level, now)
	if tr == nil {
		return
	}

	c.p.Tracker.CountActivation(tr.To)
	switch tr.To {
	case logic.StateActive:
		c.onActivate(now)
	case logic.StateIdle:
		c.onDeactivate(now)
	}
}

func (c *Controller) onActivate(now time.Time) {
	c.p.Log.Info("activated")
	c.active.Store(true)

	// Both cadences are armed from the Active-entry timestamp: the first
	// poll lands on this tick, the first send a full interval later.
	c.nextPoll = now
	c.nextSend = now.Add(c.p.SendInterval)
	c.sendArmed = true

	if err := c.p.Buzzer.Pulse(confirmBeep); err != nil {
		c.p.Log.Warn("confirmation beep failed", zap.Error(err))
	}

	c.p.Metrics.SetStates(logic.StateActive, c.alarm)
	c.publishTransition(mqtt.EventActivated, now)
}

func (c *Controller) onDeactivate(now time.Time) {
	c.p.Log.Info("deactivated")
	c.active.Store(false)
	c.sendArmed = false

	// Discard a pending trigger token so the upload task stays parked. An
	// in-flight attempt is left to finish on its own.
	select {
	case <-c.trigger:
	default:
	}

	c.alarm = logic.AlarmNormal
	c.presentIdle()
	c.p.Tracker.Update(logic.StateIdle, logic.AlarmNormal, c.p.Store.Snapshot())
	c.p.Metrics.SetStates(logic.StateIdle, logic.AlarmNormal)
	c.publishTransition(mqtt.EventDeactivated, now)
}

func (c *Controller) poll(now time.Time) {
	climateOK, distanceOK := true, true

	if s, err := c.p.Gateway.PollClimate(); err != nil {
		climateOK = false
		c.p.Log.Warn("climate read failed", zap.Error(err))
	} else {
		c.p.Store.ApplyClimate(s, now)
	}

	if cm, err := c.p.Gateway.PollDistance(); err != nil {
		distanceOK = false
		c.p.Log.Warn("distance read failed", zap.Error(err))
	} else {
		c.p.Store.ApplyDistance(cm, now)
	}

	c.p.Tracker.CountPoll(climateOK, distanceOK)
	c.p.Metrics.Polls.Inc()
	if !climateOK {
		c.p.Metrics.ReadFailures.WithLabelValues("climate").Inc()
	}
	if !distanceOK {
		c.p.Metrics.ReadFailures.WithLabelValues("distance").Inc()
	}

	r := c.p.Store.Snapshot()
	v := logic.Evaluate(r)

	if v.Alarm != c.alarm {
		c.alarm = v.Alarm
		raised := v.Alarm == logic.AlarmRaised
		c.p.Tracker.CountAlarm(raised)
		if raised {
			c.p.Log.Warn("alarm raised",
				zap.Int("temperature_c", r.TemperatureC),
				zap.Int("humidity_pct", r.HumidityPct),
				zap.Float64("distance_cm", r.DistanceCm))
			c.publishTransition(mqtt.EventAlarmRaised, now)
		} else {
			c.p.Log.Info("alarm cleared")
			c.publishTransition(mqtt.EventAlarmCleared, now)
		}
	}

	if err := c.p.Indicator.Set(v.Indicator); err != nil {
		c.p.Log.Warn("indicator update failed", zap.Error(err))
	}
	if err := c.p.Buzzer.Set(v.BuzzerOn); err != nil {
		c.p.Log.Warn("buzzer update failed", zap.Error(err))
	}
	l1, l2 := display.StatusLines(r, v.Alarm)
	if err := c.p.Display.ShowLines(l1, l2); err != nil {
		c.p.Log.Warn("display update failed", zap.Error(err))
	}

	c.p.Tracker.Update(logic.StateActive, v.Alarm, r)
	c.p.Tracker.SetConnected(c.p.Connectivity.IsConnected())
	if c.p.MQTTStatus != nil {
		c.p.Tracker.SetMQTTConnected(c.p.MQTTStatus.IsConnected())
	}
	c.p.Metrics.ObserveReading(r)
	c.p.Metrics.SetStates(logic.StateActive, v.Alarm)
}

// signalUpload hands one token to the upload task. Without connectivity the
// attempt is skipped and logged, never queued for later.
func (c *Controller) signalUpload() {
	if !c.p.Connectivity.IsConnected() {
		c.p.Log.Info("upload skipped: no connectivity")
		c.countUpload(status.UploadSkipped)
		return
	}
	select {
	case c.trigger <- struct{}{}:
	default:
		// A trigger is already pending; signals coalesce.
	}
}

func (c *Controller) uploadLoop() {
	defer close(c.uploadDone)
	for {
		select {
		case <-c.stopUpload:
			return
		case <-c.trigger:
			c.uploadOnce()
		}
	}
}

// uploadOnce performs at most one attempt, then the task re-parks.
func (c *Controller) uploadOnce() {
	if !c.active.Load() || !c.p.Connectivity.IsConnected() {
		// Deactivated or offline since the signal: skip, no error surfaced.
		c.countUpload(status.UploadSkipped)
		return
	}

	r := c.p.Store.Snapshot()
	if err := c.p.Uploader.Upload(r); err != nil {
		// Transport failure only; it never affects device state.
		c.p.Log.Warn("upload failed", zap.Error(err))
		c.countUpload(status.UploadFailed)
		return
	}

	c.p.Log.Info("upload ok",
		zap.Int("temperature_c", r.TemperatureC),
		zap.Int("humidity_pct", r.HumidityPct))
	c.countUpload(status.UploadOK)
}

func (c *Controller) countUpload(outcome status.UploadOutcome) {
	c.p.Tracker.CountUpload(outcome)
	c.p.Metrics.Uploads.WithLabelValues(string(outcome)).Inc()
}

func (c *Controller) presentIdle() {
	if err := c.p.Indicator.Set(logic.ColorIdle); err != nil {
		c.p.Log.Warn("indicator update failed", zap.Error(err))
	}
	if err := c.p.Buzzer.Set(false); err != nil {
		c.p.Log.Warn("buzzer update failed", zap.Error(err))
	}
	l1, l2 := display.IdleLines()
	if err := c.p.Display.ShowLines(l1, l2); err != nil {
		c.p.Log.Warn("display update failed", zap.Error(err))
	}
}

func (c *Controller) heartbeat(now time.Time) {
	if c.p.Heartbeat <= 0 || c.p.Publisher == nil {
		return
	}
	if now.Sub(c.lastHeartbeat) < c.p.Heartbeat {
		return
	}
	c.lastHeartbeat = now

	c.p.Tracker.SetConnected(c.p.Connectivity.IsConnected())
	if c.p.MQTTStatus != nil {
		c.p.Tracker.SetMQTTConnected(c.p.MQTTStatus.IsConnected())
	}
	snap := c.p.Tracker.Snapshot()
	ev := mqtt.SystemEvent{
		Timestamp:  now,
		Event:      "HEARTBEAT",
		RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
	}
	if err := c.p.Publisher.PublishSystem(ev); err != nil {
		c.p.Log.Warn("heartbeat publish failed", zap.Error(err))
	}
}

func (c *Controller) publishTransition(t mqtt.EventType, now time.Time) {
	if c.p.Publisher == nil {
		return
	}
	ev := mqtt.Event{Timestamp: now, Type: t, Reading: c.p.Store.Snapshot()}
	if err := c.p.Publisher.Publish(ev); err != nil {
		c.p.Log.Warn("event publish failed",
			zap.String("event", string(t)), zap.Error(err))
	}
}

func (c *Controller) publishShutdown(s os.Signal) {
	if c.p.Publisher == nil {
		return
	}
	name := "UNKNOWN"
	if s == syscall.SIGINT {
		name = "SIGINT"
	} else if s == syscall.SIGTERM {
		name = "SIGTERM"
	}
	snap := c.p.Tracker.Snapshot()
	ev := mqtt.SystemEvent{
		Timestamp:  c.now(),
		Event:      "SHUTDOWN",
		Reason:     name,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", name),
	}
	if err := c.p.Publisher.PublishSystem(ev); err != nil {
		c.p.Log.Warn("shutdown publish failed", zap.Error(err))
	} else {
		c.p.Log.Info("published shutdown event")
	}
}
