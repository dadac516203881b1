// Package config loads the server configuration from environment variables.
// Every setting has a default except the analyzer URL; the whole result is
// validated on startup so misconfiguration fails fast.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Analyzer AnalyzerConfig
	Upload   UploadConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 3000)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"3000"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// AnalyzerConfig points at the upstream analysis service.
type AnalyzerConfig struct {
	// URL is the analyze endpoint, e.g. http://localhost:8080/analyze (required)
	URL string `env:"ANALYZER_URL" envAlt:"ANALYZER_ENDPOINT" required:"true"`

	// APIKey is sent as X-API-Key when set
	APIKey string `env:"ANALYZER_API_KEY" secret:"true"`

	// Timeout bounds one analyzer request (default: 30s)
	Timeout time.Duration `env:"ANALYZER_TIMEOUT" default:"30s"`

	// MaxConcurrent is the number of analyses in flight (default: 5)
	MaxConcurrent int `env:"ANALYZER_MAX_CONCURRENT" default:"5"`

	// MaxWait is how long a request waits for a free slot (default: 10s)
	MaxWait time.Duration `env:"ANALYZER_MAX_WAIT" default:"10s"`
}

// UploadConfig limits submitted source code and report text.
type UploadConfig struct {
	// MaxSourceSize is the largest accepted source file in bytes (default: 1MB)
	MaxSourceSize int64 `env:"UPLOAD_MAX_SOURCE_SIZE" default:"1048576"`

	// MaxReportSize is the largest report accepted by /api/parse (default: 8MB)
	MaxReportSize int64 `env:"UPLOAD_MAX_REPORT_SIZE" default:"8388608"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the limit per client IP (default: 60)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"60"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// AllowedOrigins feeds Access-Control-Allow-Origin (default: *)
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"*"`

	// RequireAPIKey guards the /api routes with X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS" secret:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
