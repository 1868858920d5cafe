package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"salongate/pkg/client"
	"salongate/pkg/logger"
)

type Config struct {
	Port     string
	LogLevel string

	BackendBaseURL string
	BackendTimeout time.Duration
	BackendWait    time.Duration

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	AuditEnabled bool
	AuditTopic   string

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port:     getEnvStr(EnvPort, DefaultPort),
		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),

		BackendBaseURL: getEnvStr(EnvBackendBaseURL, DefaultBackendBaseURL),
		BackendTimeout: getEnvDuration(EnvBackendTimeout, DefaultBackendTimeout),
		BackendWait:    getEnvDuration(EnvBackendWait, DefaultBackendWait),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		AuditEnabled: getEnvBool(EnvAuditEnabled, DefaultAuditEnabled),
		AuditTopic:   getEnvStr(EnvAuditTopic, DefaultAuditTopic),
	}

	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    logger.JSON,
		AddSource: true,
		Service:   serviceName,
	})
	cfg.Client = client.New(cfg.BackendBaseURL, cfg.BackendTimeout)

	return cfg
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.BackendBaseURL == "" {
		errs = append(errs, "BackendBaseURL cannot be empty")
	} else if !regexp.MustCompile(`^https?://`).MatchString(cfg.BackendBaseURL) {
		errs = append(errs, fmt.Sprintf("BackendBaseURL must start with 'http://' or 'https://', got: %s", cfg.BackendBaseURL))
	}

	if cfg.BackendTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("BackendTimeout must be positive, got: %s", cfg.BackendTimeout))
	}

	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}

	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.AuditEnabled && cfg.AuditTopic == "" {
		errs = append(errs, "AuditTopic cannot be empty when auditing is enabled")
	}

	if len(errs) > 0 {
		msg := "Configuration validation failed:\n"
		for i, e := range errs {
			msg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", msg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded",
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"backend_base_url", cfg.BackendBaseURL,
		"backend_timeout", cfg.BackendTimeout,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"audit_enabled", cfg.AuditEnabled,
		"audit_topic", cfg.AuditTopic,
	)
}

func getEnvStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
