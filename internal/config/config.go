// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Session  SessionConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	School   SchoolConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig holds spreadsheet import settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 20MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"20971520"`

	// MaxConcurrent is the maximum number of imports decoded in parallel (default: 4)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for an import slot (default: 15s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"15s"`

	// Timeout is the maximum duration for a single import (default: 2m)
	Timeout time.Duration `env:"UPLOAD_TIMEOUT" default:"2m"`
}

// SessionConfig holds settings for the in-memory roster sessions.
type SessionConfig struct {
	// TTL is how long an idle session keeps its roster (default: 8h)
	TTL time.Duration `env:"SESSION_TTL" default:"8h"`

	// SweepInterval is how often expired sessions are discarded (default: 10m)
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" default:"10m"`

	// MaxSessions caps the number of live sessions (default: 200)
	MaxSessions int `env:"SESSION_MAX" default:"200"`

	// CookieName is the cookie carrying the session ID (default: roster_session)
	CookieName string `env:"SESSION_COOKIE_NAME" default:"roster_session"`

	// SecureCookie marks the session cookie Secure (default: false)
	SecureCookie bool `env:"SESSION_SECURE_COOKIE" default:"false"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// UploadLimit is requests per minute for import endpoints (default: 10)
	UploadLimit int `env:"RATE_LIMIT_UPLOAD" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// SchoolConfig holds the letterhead and option lists used by the printed
// roster and the manual entry form.
type SchoolConfig struct {
	Province string `env:"SCHOOL_PROVINCE" default:"PEMERINTAH PROVINSI SUMATERA UTARA"`
	Office   string `env:"SCHOOL_OFFICE" default:"DINAS PENDIDIKAN"`
	Name     string `env:"SCHOOL_NAME" default:"SMA NEGERI 2 PEMATANGSIANTAR"`
	Address  string `env:"SCHOOL_ADDRESS" default:"Jl. Patuan Anggi No. 8, Pematangsiantar, Kode Pos: 21146"`
	Email    string `env:"SCHOOL_EMAIL" default:"smandups@yahoo.co.id"`
	City     string `env:"SCHOOL_CITY" default:"Pematangsiantar"`

	// ReportTitle is printed above the roster grid.
	ReportTitle string `env:"SCHOOL_REPORT_TITLE" default:"DAFTAR VALIDASI DAN VERIFIKASI DAPODIK SISWA KELAS XII"`

	// SignatureDate is printed next to the city; empty means the print month.
	SignatureDate string `env:"SCHOOL_SIGNATURE_DATE"`

	VerifierTitle string `env:"SCHOOL_VERIFIER_TITLE" default:"Diverifikasi Oleh Pengawas"`
	VerifierName  string `env:"SCHOOL_VERIFIER_NAME" default:"APUL SITUMORANG, S.Pd, M.M"`
	VerifierNIP   string `env:"SCHOOL_VERIFIER_NIP" default:"196901261994121001"`

	PrincipalTitle string `env:"SCHOOL_PRINCIPAL_TITLE" default:"Kepala SMA Negeri 2 Pematangsiantar"`
	PrincipalName  string `env:"SCHOOL_PRINCIPAL_NAME" default:"EDWAR SIMARMATA, S.Pd, M.Si"`
	PrincipalNIP   string `env:"SCHOOL_PRINCIPAL_NIP" default:"196605101988031006"`

	// Classes offered by the manual entry form.
	Classes []string `env:"SCHOOL_CLASSES" default:"XII MIPA 1,XII MIPA 2,XII MIPA 3,XII MIPA 4,XII MIPA 5,XII MIPA 6,XII MIPA 7,XII IPS 1,XII IPS 2,XII IPS 3"`

	// Religions offered by the manual entry form.
	Religions []string `env:"SCHOOL_RELIGIONS" default:"Islam,Kristen,Katholik,Hindu,Buddha"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
