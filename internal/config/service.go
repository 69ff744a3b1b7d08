package config

import "github.com/sman2ps/dapodik/internal/core"

// ServiceConfig returns the settings the roster service needs.
func (c *Config) ServiceConfig() core.ServiceConfig {
	return core.ServiceConfig{
		MaxFileSize:   c.Upload.MaxFileSize,
		MaxConcurrent: c.Upload.MaxConcurrent,
		MaxWait:       c.Upload.MaxWaitTime,
		ImportTimeout: c.Upload.Timeout,
		SessionTTL:    c.Session.TTL,
		MaxSessions:   c.Session.MaxSessions,
		Classes:       c.School.Classes,
		Religions:     c.School.Religions,
	}
}
