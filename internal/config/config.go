// Package config holds daemon configuration, read from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration parameters for the ivy-monitor daemon.
type Config struct {
	// Upload configuration
	UploadURL            string `yaml:"uploadUrl" env:"UPLOAD_URL" env-default:"http://192.168.1.50:5005/data"`
	UploadTimeoutSeconds int    `yaml:"uploadTimeoutSeconds" env:"UPLOAD_TIMEOUT_SECONDS" env-default:"10"`

	// MQTT configuration; empty broker disables eventing
	Broker string `yaml:"broker" env:"MQTT_BROKER" env-default:"tcp://192.168.1.200:1883"`

	// HTTP status server; empty disables
	HTTPAddr string `yaml:"httpAddr" env:"HTTP_ADDR" env-default:":8080"`

	// Timing
	LoopIntervalMs   int `yaml:"loopIntervalMs" env:"LOOP_INTERVAL_MS" env-default:"10"`
	PollIntervalMs   int `yaml:"pollIntervalMs" env:"POLL_INTERVAL_MS" env-default:"5000"`
	SendIntervalMs   int `yaml:"sendIntervalMs" env:"SEND_INTERVAL_MS" env-default:"120000"`
	DebounceMs       int `yaml:"debounceMs" env:"DEBOUNCE_MS" env-default:"200"`
	HeartbeatMinutes int `yaml:"heartbeatMinutes" env:"HEARTBEAT_MINUTES" env-default:"15"`

	// Wiring. Pins use BCM numbering; I2C addresses are decimal
	// (68 = 0x44 SHT3x, 39 = 0x27 PCF8574 backpack).
	PinButton  int `yaml:"pinButton" env:"PIN_BUTTON" env-default:"17"`
	PinBuzzer  int `yaml:"pinBuzzer" env:"PIN_BUZZER" env-default:"27"`
	PinRed     int `yaml:"pinRed" env:"PIN_RED" env-default:"5"`
	PinGreen   int `yaml:"pinGreen" env:"PIN_GREEN" env-default:"6"`
	PinBlue    int `yaml:"pinBlue" env:"PIN_BLUE" env-default:"13"`
	PinTrigger int `yaml:"pinTrigger" env:"PIN_TRIGGER" env-default:"23"`
	PinEcho    int `yaml:"pinEcho" env:"PIN_ECHO" env-default:"24"`
	I2CBus     int `yaml:"i2cBus" env:"I2C_BUS" env-default:"1"`
	SHT3xAddr  int `yaml:"sht3xAddr" env:"SHT3X_ADDR" env-default:"68"`
	LCDAddr    int `yaml:"lcdAddr" env:"LCD_ADDR" env-default:"39"`

	// Logging
	LogLevel  string `yaml:"logLevel" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"logFormat" env:"LOG_FORMAT" env-default:"console"`
}

// Load reads configuration from the given file and applies environment
// variable overrides. An empty path reads environment and defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read config from environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config from %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks that all configuration parameters are usable.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.UploadURL); err != nil {
		return fmt.Errorf("invalid uploadUrl: %w", err)
	}
	for name, v := range map[string]int{
		"loopIntervalMs":       c.LoopIntervalMs,
		"pollIntervalMs":       c.PollIntervalMs,
		"sendIntervalMs":       c.SendIntervalMs,
		"debounceMs":           c.DebounceMs,
		"uploadTimeoutSeconds": c.UploadTimeoutSeconds,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}
	if c.HeartbeatMinutes < 0 {
		return fmt.Errorf("heartbeatMinutes must not be negative, got %d", c.HeartbeatMinutes)
	}
	if c.PollIntervalMs < c.LoopIntervalMs {
		return fmt.Errorf("pollIntervalMs (%d) must not be below loopIntervalMs (%d)", c.PollIntervalMs, c.LoopIntervalMs)
	}
	return nil
}

// Duration accessors.

func (c *Config) LoopInterval() time.Duration { return time.Duration(c.LoopIntervalMs) * time.Millisecond }

func (c *Config) PollInterval() time.Duration { return time.Duration(c.PollIntervalMs) * time.Millisecond }

func (c *Config) SendInterval() time.Duration { return time.Duration(c.SendIntervalMs) * time.Millisecond }

func (c *Config) Debounce() time.Duration { return time.Duration(c.DebounceMs) * time.Millisecond }

func (c *Config) Heartbeat() time.Duration { return time.Duration(c.HeartbeatMinutes) * time.Minute }

func (c *Config) UploadTimeout() time.Duration {
	return time.Duration(c.UploadTimeoutSeconds) * time.Second
}
