package config

import (
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "DPM_INTEGRATOR"

type Config struct {
	HTTP    HTTPConfig
	Polling PollingConfig
	Logger  LoggerConfig
}

type HTTPConfig struct {
	ConnectTimeout  time.Duration
	ResponseTimeout time.Duration
}

type PollingConfig struct {
	Interval time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

// Load reads runtime settings from DPM_INTEGRATOR_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)

	// Defaults
	v.SetDefault("HTTP_CONNECT_TIMEOUT", "10s")
	v.SetDefault("HTTP_RESPONSE_TIMEOUT", "360s")
	v.SetDefault("POLL_INTERVAL", "2500ms")
	v.SetDefault("LOGGER_LEVEL", "warn")
	v.SetDefault("LOGGER_FORMAT", "text")

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		HTTP: HTTPConfig{
			ConnectTimeout:  durationOr(v.GetString("HTTP_CONNECT_TIMEOUT"), 10*time.Second),
			ResponseTimeout: durationOr(v.GetString("HTTP_RESPONSE_TIMEOUT"), 360*time.Second),
		},
		Polling: PollingConfig{
			Interval: durationOr(v.GetString("POLL_INTERVAL"), 2500*time.Millisecond),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
