package config

import (
	"fmt"
	"strconv"
	"time"
)

// Browser engines the driver can launch.
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// DefaultImplicitWait is how long element lookups poll before giving up.
const DefaultImplicitWait = 10 * time.Second

// SessionConfig holds the launch options for one browser session.
// It is passed by value and never mutated after loading.
type SessionConfig struct {
	Browser            string
	Headless           bool
	NoSandbox          bool
	DisableDevShmUsage bool
	ImplicitWait       time.Duration
}

// DefaultSessionConfig returns the headless, sandboxless configuration used in CI.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Browser:            BrowserChromium,
		Headless:           true,
		NoSandbox:          true,
		DisableDevShmUsage: true,
		ImplicitWait:       DefaultImplicitWait,
	}
}

// LoadSessionConfig overlays environment overrides onto the defaults
func LoadSessionConfig(getenv func(string) string) (SessionConfig, error) {
	return DefaultSessionConfig().Overlay(getenv)
}

// Overlay returns a copy of c with any E2E_* variables from getenv applied.
func (c SessionConfig) Overlay(getenv func(string) string) (SessionConfig, error) {
	var err error

	if v := getenv("E2E_BROWSER"); v != "" {
		c.Browser = v
	}
	if c.Headless, err = boolEnv(getenv, "E2E_HEADLESS", c.Headless); err != nil {
		return c, err
	}
	if c.NoSandbox, err = boolEnv(getenv, "E2E_NO_SANDBOX", c.NoSandbox); err != nil {
		return c, err
	}
	if c.DisableDevShmUsage, err = boolEnv(getenv, "E2E_DISABLE_DEV_SHM", c.DisableDevShmUsage); err != nil {
		return c, err
	}
	if v := getenv("E2E_IMPLICIT_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("E2E_IMPLICIT_WAIT: %w", err)
		}
		c.ImplicitWait = d
	}

	return c, c.Validate()
}

// Validate reports whether the configuration can launch a session
func (c SessionConfig) Validate() error {
	switch c.Browser {
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		return fmt.Errorf("unsupported browser %q", c.Browser)
	}
	if c.ImplicitWait < 0 {
		return fmt.Errorf("implicit wait must not be negative, got %s", c.ImplicitWait)
	}
	return nil
}

// LaunchArgs renders the command-line switches passed to the browser binary.
// Headless mode is handled by the driver and is not included here.
func (c SessionConfig) LaunchArgs() []string {
	var args []string
	if c.NoSandbox {
		args = append(args, "--no-sandbox")
	}
	if c.DisableDevShmUsage {
		args = append(args, "--disable-dev-shm-usage")
	}
	return args
}

// ImplicitWaitMillis converts the implicit wait into driver timeout units.
func (c SessionConfig) ImplicitWaitMillis() float64 {
	return float64(c.ImplicitWait) / float64(time.Millisecond)
}

// DriverTimeoutMillis bounds every driver call other than element lookup.
// The driver treats 0 as no timeout, so a zero implicit wait falls back to
// DefaultImplicitWait here.
func (c SessionConfig) DriverTimeoutMillis() float64 {
	if c.ImplicitWait <= 0 {
		return float64(DefaultImplicitWait) / float64(time.Millisecond)
	}
	return c.ImplicitWaitMillis()
}

func boolEnv(getenv func(string) string, key string, fallback bool) (bool, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
