package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultBackendBaseURL = "http://localhost:4000/api"
	DefaultBackendTimeout = 10 * time.Second
	DefaultBackendWait    = 0 * time.Second

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultAuditEnabled = false
	DefaultAuditTopic   = "appointment.actions"
)
