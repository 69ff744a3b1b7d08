package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Upload.MaxConcurrent != 4 {
		t.Errorf("Upload.MaxConcurrent = %d, want %d", cfg.Upload.MaxConcurrent, 4)
	}
	if cfg.Upload.MaxFileSize != 20971520 {
		t.Errorf("Upload.MaxFileSize = %d, want %d", cfg.Upload.MaxFileSize, 20971520)
	}
	if cfg.Session.TTL != 8*time.Hour {
		t.Errorf("Session.TTL = %v, want %v", cfg.Session.TTL, 8*time.Hour)
	}
	if cfg.Session.CookieName != "roster_session" {
		t.Errorf("Session.CookieName = %q, want %q", cfg.Session.CookieName, "roster_session")
	}
	if len(cfg.School.Classes) != 10 {
		t.Errorf("School.Classes has %d entries, want 10", len(cfg.School.Classes))
	}
	if cfg.School.Classes[0] != "XII MIPA 1" {
		t.Errorf("School.Classes[0] = %q, want %q", cfg.School.Classes[0], "XII MIPA 1")
	}
	if len(cfg.School.Religions) != 5 {
		t.Errorf("School.Religions has %d entries, want 5", len(cfg.School.Religions))
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("UPLOAD_MAX_CONCURRENT", "10")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SCHOOL_NAME", "SMA NEGERI 1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Upload.MaxConcurrent != 10 {
		t.Errorf("Upload.MaxConcurrent = %d, want %d", cfg.Upload.MaxConcurrent, 10)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.School.Name != "SMA NEGERI 1" {
		t.Errorf("School.Name = %q, want %q", cfg.School.Name, "SMA NEGERI 1")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 7070)
	}
}

func TestLoad_InvalidInteger(t *testing.T) {
	t.Setenv("SESSION_MAX", "lots")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for non-numeric SESSION_MAX")
	}
	if !strings.Contains(err.Error(), "SESSION_MAX") {
		t.Errorf("error should mention SESSION_MAX: %v", err)
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("UPLOAD_MAX_WAIT_TIME", "1m30s")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Upload.MaxWaitTime != 90*time.Second {
		t.Errorf("Upload.MaxWaitTime = %v, want %v", cfg.Upload.MaxWaitTime, 90*time.Second)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session.TTL = %v, want %v", cfg.Session.TTL, 30*time.Minute)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16")
	t.Setenv("SCHOOL_CLASSES", "X A, X B,,X C")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}

	classes := []string{"X A", "X B", "X C"}
	if len(cfg.School.Classes) != len(classes) {
		t.Fatalf("School.Classes = %v, want %v", cfg.School.Classes, classes)
	}
	for i, v := range classes {
		if cfg.School.Classes[i] != v {
			t.Errorf("School.Classes[%d] = %q, want %q", i, cfg.School.Classes[i], v)
		}
	}
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		Upload:  UploadConfig{MaxFileSize: 1, MaxConcurrent: 1, MaxWaitTime: time.Second, Timeout: time.Minute},
		Session: SessionConfig{TTL: time.Hour, SweepInterval: time.Minute, MaxSessions: 10, CookieName: "s"},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100, UploadLimit: 10},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		School:  SchoolConfig{Classes: []string{"X A"}, Religions: []string{"Islam"}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "invalid port", mutate: func(c *Config) { c.Server.Port = 99999 }, wantErr: "SERVER_PORT"},
		{name: "zero session ttl", mutate: func(c *Config) { c.Session.TTL = 0 }, wantErr: "SESSION_TTL"},
		{name: "blank cookie name", mutate: func(c *Config) { c.Session.CookieName = "  " }, wantErr: "SESSION_COOKIE_NAME"},
		{name: "no classes", mutate: func(c *Config) { c.School.Classes = nil }, wantErr: "SCHOOL_CLASSES"},
		{name: "invalid log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: "LOG_LEVEL"},
		{name: "invalid log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "LOG_FORMAT"},
		{
			name:   "rate limit disabled skips rate checks",
			mutate: func(c *Config) { c.Rate = RateLimitConfig{Enabled: false} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"localhost", 443, "localhost:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		got := cfg.Addr()
		if got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString(t *testing.T) {
	cfg := validConfig()
	cfg.School.Name = "SMA NEGERI 2"

	str := cfg.String()
	if !strings.Contains(str, `Name: "SMA NEGERI 2"`) {
		t.Errorf("String() should include school name: %s", str)
	}
	if !strings.Contains(str, "Port: 8080") {
		t.Errorf("String() should include port: %s", str)
	}
}

func TestServiceConfig(t *testing.T) {
	cfg := validConfig()
	sc := cfg.ServiceConfig()

	if sc.MaxFileSize != cfg.Upload.MaxFileSize {
		t.Errorf("MaxFileSize = %d, want %d", sc.MaxFileSize, cfg.Upload.MaxFileSize)
	}
	if sc.MaxWait != cfg.Upload.MaxWaitTime {
		t.Errorf("MaxWait = %s, want %s", sc.MaxWait, cfg.Upload.MaxWaitTime)
	}
	if sc.ImportTimeout != cfg.Upload.Timeout {
		t.Errorf("ImportTimeout = %s, want %s", sc.ImportTimeout, cfg.Upload.Timeout)
	}
	if sc.SessionTTL != cfg.Session.TTL || sc.MaxSessions != cfg.Session.MaxSessions {
		t.Errorf("session settings = (%s, %d), want (%s, %d)",
			sc.SessionTTL, sc.MaxSessions, cfg.Session.TTL, cfg.Session.MaxSessions)
	}
	if len(sc.Classes) != 1 || sc.Classes[0] != "X A" {
		t.Errorf("Classes = %v", sc.Classes)
	}
	if len(sc.Religions) != 1 || sc.Religions[0] != "Islam" {
		t.Errorf("Religions = %v", sc.Religions)
	}
}

func TestFill_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad int", map[string]string{"SERVER_PORT": "eighty"}, "SERVER_PORT"},
		{"bad duration", map[string]string{"SESSION_TTL": "8"}, "SESSION_TTL"},
		{"bad bool", map[string]string{"RATE_LIMIT_ENABLED": "maybe"}, "RATE_LIMIT_ENABLED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			err := fill(reflect.ValueOf(&cfg).Elem(), func(k string) string { return tt.env[k] })
			if err == nil {
				t.Fatal("fill() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %s: %v", tt.want, err)
			}
		})
	}
}

func TestFill_AltNameAndListTrimming(t *testing.T) {
	env := map[string]string{
		"PORT":           "7001",
		"SCHOOL_CLASSES": " X 1 , ,X 2",
	}
	var cfg Config
	if err := fill(reflect.ValueOf(&cfg).Elem(), func(k string) string { return env[k] }); err != nil {
		t.Fatalf("fill() error = %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want 7001", cfg.Server.Port)
	}
	if len(cfg.School.Classes) != 2 || cfg.School.Classes[0] != "X 1" || cfg.School.Classes[1] != "X 2" {
		t.Errorf("School.Classes = %q", cfg.School.Classes)
	}
}

func TestFill_Required(t *testing.T) {
	type secrets struct {
		Token string `env:"ROSTER_TOKEN" envAlt:"TOKEN" required:"true"`
	}

	var missing secrets
	err := fill(reflect.ValueOf(&missing).Elem(), func(string) string { return "" })
	if err == nil || !strings.Contains(err.Error(), "ROSTER_TOKEN") {
		t.Fatalf("fill() error = %v, want it to name ROSTER_TOKEN", err)
	}

	var viaAlt secrets
	env := map[string]string{"TOKEN": "abc"}
	if err := fill(reflect.ValueOf(&viaAlt).Elem(), func(k string) string { return env[k] }); err != nil {
		t.Fatalf("fill() error = %v", err)
	}
	if viaAlt.Token != "abc" {
		t.Errorf("Token = %q, want abc", viaAlt.Token)
	}
}
