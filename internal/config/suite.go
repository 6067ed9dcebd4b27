package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSuiteFile is read from the working directory when present.
const DefaultSuiteFile = "theinternet.yaml"

// SuiteFile is the optional on-disk suite configuration.
//
//	base_url: http://localhost:7080/
//	session:
//	  headless: false
//	  implicit_wait: 5s
//	only: [Checkboxes, Dropdown]
type SuiteFile struct {
	BaseURL string       `yaml:"base_url"`
	Session SessionPatch `yaml:"session"`
	Only    []string     `yaml:"only"`
}

// SessionPatch overrides individual SessionConfig fields; nil means unset.
type SessionPatch struct {
	Browser            *string        `yaml:"browser"`
	Headless           *bool          `yaml:"headless"`
	NoSandbox          *bool          `yaml:"no_sandbox"`
	DisableDevShmUsage *bool          `yaml:"disable_dev_shm_usage"`
	ImplicitWait       *time.Duration `yaml:"implicit_wait"`
}

// Apply returns cfg with the patch's set fields copied over.
func (p SessionPatch) Apply(cfg SessionConfig) SessionConfig {
	if p.Browser != nil {
		cfg.Browser = *p.Browser
	}
	if p.Headless != nil {
		cfg.Headless = *p.Headless
	}
	if p.NoSandbox != nil {
		cfg.NoSandbox = *p.NoSandbox
	}
	if p.DisableDevShmUsage != nil {
		cfg.DisableDevShmUsage = *p.DisableDevShmUsage
	}
	if p.ImplicitWait != nil {
		cfg.ImplicitWait = *p.ImplicitWait
	}
	return cfg
}

// ParseSuiteFile decodes YAML suite configuration, rejecting unknown keys.
func ParseSuiteFile(data []byte) (SuiteFile, error) {
	var sf SuiteFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return SuiteFile{}, fmt.Errorf("failed to parse suite file: %w", err)
	}
	return sf, nil
}

// LoadSuiteFile reads path. A missing file yields an empty SuiteFile when
// optional is true.
func LoadSuiteFile(path string, optional bool) (SuiteFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return SuiteFile{}, nil
		}
		return SuiteFile{}, fmt.Errorf("failed to read suite file: %w", err)
	}
	return ParseSuiteFile(data)
}

// Resolved is the effective configuration for a run.
type Resolved struct {
	Target  TargetConfig
	Session SessionConfig
	Only    []string
}

// Resolve layers defaults, then the suite file, then the environment.
func (sf SuiteFile) Resolve(getenv func(string) string) (Resolved, error) {
	session, err := sf.Session.Apply(DefaultSessionConfig()).Overlay(getenv)
	if err != nil {
		return Resolved{}, err
	}

	base := getenv("E2E_BASE_URL")
	if base == "" {
		base = sf.BaseURL
	}
	if base == "" {
		base = DefaultBaseURL
	}
	target, err := NewTargetConfig(base)
	if err != nil {
		return Resolved{}, err
	}

	return Resolved{Target: target, Session: session, Only: sf.Only}, nil
}
