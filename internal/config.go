package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults for the two independent credential lifetimes. The session
// timeout is capped server-side at 12 hours for GetSessionToken under an
// IAM user, so the default rides that limit.
const (
	DefaultSessionTimeout     int64 = 43200
	DefaultRoleSessionTimeout int64 = 3600
	DefaultProfile                  = "default"

	// Provider-side caps: GetSessionToken accepts at most 36 hours,
	// AssumeRole at most 12. Anything larger is clamped rather than sent,
	// since the duration eventually travels as an int32 request field.
	MaxSessionTimeout     int64 = 129600
	MaxRoleSessionTimeout int64 = 43200
)

// Config holds durable defaults from ~/.assumectl/config.yaml. Every field
// is optional; environment variables override the file and flags/arguments
// override both.
type Config struct {
	Profile            string `yaml:"profile"`
	Region             string `yaml:"region"`
	SessionTimeout     int64  `yaml:"session_timeout"`
	RoleSessionTimeout int64  `yaml:"role_session_timeout"`
	AccountsFile       string `yaml:"accounts_file"`
}

// DefaultConfigPath is ~/.assumectl/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(os.Getenv("HOME"), ".assumectl", "config.yaml")
}

// LoadConfig reads the config file. A missing file yields a zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolved applies environment overrides and fills defaults. getenv is
// injected so tests never touch the process environment.
func (c Config) Resolved(getenv func(string) string) Config {
	out := c

	if v := getenv(EnvProfileOverride); v != "" {
		out.Profile = v
	}
	if out.Profile == "" {
		out.Profile = DefaultProfile
	}

	if v := getenv(EnvSessionTimeoutOverride); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			out.SessionTimeout = n
		}
	}
	if out.SessionTimeout == 0 {
		out.SessionTimeout = DefaultSessionTimeout
	}
	if out.SessionTimeout > MaxSessionTimeout {
		out.SessionTimeout = MaxSessionTimeout
	}

	if v := getenv(EnvRoleTimeoutOverride); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			out.RoleSessionTimeout = n
		}
	}
	if out.RoleSessionTimeout == 0 {
		out.RoleSessionTimeout = DefaultRoleSessionTimeout
	}
	if out.RoleSessionTimeout > MaxRoleSessionTimeout {
		out.RoleSessionTimeout = MaxRoleSessionTimeout
	}

	if out.AccountsFile == "" {
		out.AccountsFile = DefaultAccountsPath()
	}
	return out
}
