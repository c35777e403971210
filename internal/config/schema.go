// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for easel.
package config

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	// Server configures the HTTP gateway.
	Server ServerConfig `yaml:"server"`

	// Canvas sets defaults for newly created sessions.
	Canvas CanvasConfig `yaml:"canvas"`

	// Audit configures the JSONL audit log. Empty path disables it.
	Audit AuditConfig `yaml:"audit,omitempty"`

	// Snapshots configures document snapshot persistence. Empty path
	// disables it, and autosave with it.
	Snapshots SnapshotConfig `yaml:"snapshots,omitempty"`

	// Autosave schedules periodic snapshots of every open session.
	Autosave AutosaveConfig `yaml:"autosave,omitempty"`

	// Tracing configures the OpenTelemetry exporter.
	Tracing TracingConfig `yaml:"tracing,omitempty"`

	// Presets adds deployment-time style presets on top of the built-in
	// library. Names must not shadow built-ins.
	Presets map[string]map[string]any `yaml:"presets,omitempty"`
}

// ServerConfig configures the HTTP gateway.
type ServerConfig struct {
	// Listen is the address the gateway binds, e.g. ":8080".
	Listen string `yaml:"listen"`

	// AuthToken, when set, is required as a bearer token on every API
	// request. Empty disables authentication.
	AuthToken string `yaml:"auth_token,omitempty"`

	// MaxSessions caps concurrently open sessions. Zero means unlimited.
	MaxSessions int `yaml:"max_sessions,omitempty"`

	// RateLimit throttles per-bucket request rates.
	RateLimit RateLimitConfig `yaml:"rate_limit,omitempty"`
}

// RateLimitConfig holds the sliding-window limits. Zero means the
// built-in default; negative disables the bucket.
type RateLimitConfig struct {
	ToolCallsPerMin int `yaml:"tool_calls_per_min,omitempty"`
	SessionsPerMin  int `yaml:"sessions_per_min,omitempty"`
}

// CanvasConfig sets the canvas dimensions used when a session is created
// without explicit ones.
type CanvasConfig struct {
	DefaultWidth  int `yaml:"default_width"`
	DefaultHeight int `yaml:"default_height"`
}

// AuditConfig configures the audit log.
type AuditConfig struct {
	// Path is the JSONL file audit events append to.
	Path string `yaml:"path,omitempty"`
}

// SnapshotConfig configures snapshot persistence.
type SnapshotConfig struct {
	// Path is the SQLite database file.
	Path string `yaml:"path,omitempty"`
}

// AutosaveConfig schedules periodic snapshots.
type AutosaveConfig struct {
	// Schedule is a cron expression, e.g. "@every 1m". Empty disables
	// autosave.
	Schedule string `yaml:"schedule,omitempty"`
}

// TracingConfig configures span export.
type TracingConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`

	// Endpoint is the OTLP HTTP collector address, e.g. "localhost:4318".
	Endpoint string `yaml:"endpoint,omitempty"`
}
