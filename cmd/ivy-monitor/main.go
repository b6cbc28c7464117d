// Command ivy-monitor runs the plant monitor daemon: it polls the climate and
// distance sensors while activated, drives the LCD, RGB indicator and buzzer,
// uploads readings to the collection server and publishes transition events
// to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/keating/ivy-monitor/internal/config"
	"github.com/keating/ivy-monitor/internal/device"
	"github.com/keating/ivy-monitor/internal/display"
	"github.com/keating/ivy-monitor/internal/gpio"
	"github.com/keating/ivy-monitor/internal/logic"
	"github.com/keating/ivy-monitor/internal/metrics"
	"github.com/keating/ivy-monitor/internal/mqtt"
	"github.com/keating/ivy-monitor/internal/sensor"
	"github.com/keating/ivy-monitor/internal/status"
	"github.com/keating/ivy-monitor/internal/store"
	"github.com/keating/ivy-monitor/internal/telemetry"
	"github.com/keating/ivy-monitor/internal/uplink"
	"github.com/keating/ivy-monitor/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (environment overrides)")
	printState := flag.Bool("print-state", false, "poll the sensors once, print the reading and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := telemetry.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, *printState, log); err != nil {
		log.Fatal("fatal", zap.Error(err))
	}
}

func run(cfg *config.Config, printState bool, log *zap.Logger) error {
	gateway, err := sensor.NewRealGateway(cfg.I2CBus, uint8(cfg.SHT3xAddr), cfg.PinTrigger, cfg.PinEcho)
	if err != nil {
		return fmt.Errorf("init sensors: %w", err)
	}
	defer gateway.Close()

	if printState {
		return printOnce(gateway)
	}

	button, err := gpio.NewRealButton(cfg.PinButton)
	if err != nil {
		return fmt.Errorf("init button: %w", err)
	}
	defer button.Close()

	buzzer, err := gpio.NewRealBuzzer(cfg.PinBuzzer)
	if err != nil {
		return fmt.Errorf("init buzzer: %w", err)
	}
	defer buzzer.Close()

	indicator, err := gpio.NewRealIndicator(cfg.PinRed, cfg.PinGreen, cfg.PinBlue)
	if err != nil {
		return fmt.Errorf("init indicator: %w", err)
	}
	defer indicator.Close()

	disp, err := display.NewRealDisplay(cfg.I2CBus, uint8(cfg.LCDAddr))
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer disp.Close()

	if err := disp.ShowLines(display.BootLines()); err != nil {
		log.Warn("boot display failed", zap.Error(err))
	}

	// MQTT eventing is best effort; an unreachable broker never blocks the
	// monitor itself.
	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if cfg.Broker != "" {
		real, err := mqtt.NewRealPublisher(cfg.Broker)
		if err != nil {
			log.Warn("mqtt connect failed, eventing disabled",
				zap.String("broker", cfg.Broker), zap.Error(err))
		} else {
			publisher = real
			mqttStatus = real
			defer real.Close()
		}
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		LoopMs:      int64(cfg.LoopIntervalMs),
		PollMs:      int64(cfg.PollIntervalMs),
		SendMs:      int64(cfg.SendIntervalMs),
		DebounceMs:  int64(cfg.DebounceMs),
		HeartbeatMs: cfg.Heartbeat().Milliseconds(),
		UploadURL:   cfg.UploadURL,
		Broker:      cfg.Broker,
		HTTPAddr:    cfg.HTTPAddr,
	})

	conn := uplink.EnvConnectivity{}
	tracker.SetConnected(conn.IsConnected())
	if mqttStatus != nil {
		tracker.SetMQTTConnected(mqttStatus.IsConnected())
	}

	// Publish the startup event with the full status snapshot.
	if publisher != nil {
		snap := tracker.Snapshot()
		startup := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startup); err != nil {
			log.Warn("startup publish failed", zap.Error(err))
		} else {
			log.Info("published startup event")
		}
	}

	m := metrics.New()

	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker, m.Registry(), log)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("http server error", zap.Error(err))
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Info("http status server listening", zap.String("addr", cfg.HTTPAddr))
	}

	ctrl := device.New(device.Params{
		Gateway:      gateway,
		Store:        store.New(),
		Button:       button,
		Buzzer:       buzzer,
		Indicator:    indicator,
		Display:      disp,
		Uploader:     uplink.NewHTTPUploader(cfg.UploadURL, cfg.UploadTimeout(), log),
		Connectivity: conn,
		Publisher:    publisher,
		MQTTStatus:   mqttStatus,
		Tracker:      tracker,
		Metrics:      m,
		Log:          log,
		PollInterval: cfg.PollInterval(),
		SendInterval: cfg.SendInterval(),
		Debounce:     cfg.Debounce(),
		Heartbeat:    cfg.Heartbeat(),
	})

	log.Info("started",
		zap.Duration("loop", cfg.LoopInterval()),
		zap.Duration("poll", cfg.PollInterval()),
		zap.Duration("send", cfg.SendInterval()),
		zap.String("upload_url", cfg.UploadURL),
		zap.String("broker", cfg.Broker))

	ticker := time.NewTicker(cfg.LoopInterval())
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return ctrl.Run(ticker.C, sigCh)
}

// printOnce polls each sensor a single time and prints the reading in the
// LCD's format. Failed sensors show as "?".
func printOnce(gateway sensor.Gateway) error {
	st := store.New()
	now := time.Now()

	if s, err := gateway.PollClimate(); err != nil {
		fmt.Fprintf(os.Stderr, "climate read: %v\n", err)
	} else {
		st.ApplyClimate(s, now)
	}
	if cm, err := gateway.PollDistance(); err != nil {
		fmt.Fprintf(os.Stderr, "distance read: %v\n", err)
	} else {
		st.ApplyDistance(cm, now)
	}

	r := st.Snapshot()
	l1, l2 := display.StatusLines(r, logic.Evaluate(r).Alarm)
	fmt.Println(l1)
	fmt.Println(l2)
	return nil
}
