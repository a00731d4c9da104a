package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 30 * time.Second

type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	WriteTimeout   time.Duration `mapstructure:"write-timeout"`
	ReadTimeout    time.Duration `mapstructure:"read-timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle-timeout"`
	AllowedOrigins []string      `mapstructure:"allowed-origins"`
	LogLevel       string        `mapstructure:"log-level"`
	// Request bodies above this many bytes are rejected with 413.
	MaxContentLength    int64 `mapstructure:"max-content-length"`
	HealthCheckInterval int   `mapstructure:"health-check-interval"`
	// Grace period for in-flight requests once a shutdown signal arrives.
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

func (cfg *ServerConfig) Validate() error {
	if net.ParseIP(cfg.Host) == nil {
		return fmt.Errorf("invalid host: %v", cfg.Host)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return errors.New("invalid port")
	}

	for name, d := range map[string]time.Duration{
		"write timeout":    cfg.WriteTimeout,
		"read timeout":     cfg.ReadTimeout,
		"idle timeout":     cfg.IdleTimeout,
		"shutdown timeout": cfg.ShutdownTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}

	if cfg.MaxContentLength <= 0 {
		return errors.New("max content length must be positive")
	}
	if cfg.HealthCheckInterval <= 0 {
		return errors.New("health check interval must be positive")
	}

	return cfg.ValidateServerLogLevel()
}

// Address is the host:port the API listens on.
func (cfg *ServerConfig) Address() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

func (cfg *ServerConfig) GetShutdownTimeout() time.Duration {
	if cfg.ShutdownTimeout == 0 {
		return defaultShutdownTimeout
	}
	return cfg.ShutdownTimeout
}

func (cfg *ServerConfig) ValidateServerLogLevel() error {
	// empty means the service default
	if cfg.LogLevel == "" {
		return nil
	}

	parsedLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if parsedLevel < zerolog.DebugLevel || parsedLevel > zerolog.FatalLevel {
		return fmt.Errorf("log level %q is outside debug..fatal", cfg.LogLevel)
	}
	return nil
}
