package logger

// Accepted LOG_LEVEL values. Anything else logs at info.
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// LogFormatJSON selects the JSON handler; every other value selects text
const LogFormatJSON = "json"

// Fallbacks for empty config fields
const (
	DefaultServiceName = "questplanner"
	DefaultVersion     = "dev"
	EnvironmentDev     = "dev"
)

// Attribute keys shared by every log line
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeySessionID   = "session_id"
)
