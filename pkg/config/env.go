package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvBackendBaseURL = "BACKEND_BASE_URL"
	EnvBackendTimeout = "BACKEND_TIMEOUT"
	EnvBackendWait    = "BACKEND_STARTUP_WAIT"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvAuditEnabled = "AUDIT_ENABLED"
	EnvAuditTopic   = "AUDIT_TOPIC"
)
