package config

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public site the suite targets.
const DefaultBaseURL = "https://the-internet.herokuapp.com/"

// TargetConfig holds the address of the site under test
type TargetConfig struct {
	BaseURL string
}

// LoadTargetConfig loads the target site from E2E_BASE_URL, falling back to the public site.
func LoadTargetConfig(getenv func(string) string) (TargetConfig, error) {
	base := getenv("E2E_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return NewTargetConfig(base)
}

// NewTargetConfig validates base and normalizes it to end with a slash.
func NewTargetConfig(base string) (TargetConfig, error) {
	u, err := url.Parse(base)
	if err != nil {
		return TargetConfig{}, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return TargetConfig{}, fmt.Errorf("base URL %q must use http or https", base)
	}
	if u.Host == "" {
		return TargetConfig{}, fmt.Errorf("base URL %q has no host", base)
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return TargetConfig{BaseURL: base}, nil
}

// Resolve joins a fixed page path onto the base URL.
func (c TargetConfig) Resolve(path string) string {
	return c.BaseURL + strings.TrimPrefix(path, "/")
}
