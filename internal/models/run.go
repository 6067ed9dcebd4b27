package models

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the lifecycle of a suite run
type RunStatus string

// Run statuses
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// Run is one invocation of the suite against a base URL
type Run struct {
	ID         string
	BaseURL    string
	Status     RunStatus
	Passed     int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Domain errors
var (
	ErrInvalidBaseURL          = errors.New("run base URL must be an absolute URL")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
	ErrEmptyScenario           = errors.New("scenario name cannot be empty")
	ErrInvalidResultStatus     = errors.New("invalid scenario result status")
)

// NewRun starts a run against baseURL
func NewRun(baseURL string) (*Run, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidBaseURL
	}

	return &Run{
		ID:        uuid.New().String(),
		BaseURL:   baseURL,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// Count adds a scenario outcome to the run's tallies
func (r *Run) Count(result *ScenarioResult) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot count results on a %s run", ErrInvalidStatusTransition, r.Status)
	}
	if result.Passed() {
		r.Passed++
	} else {
		r.Failed++
	}
	return nil
}

// Finish closes the run; it passes only when no scenario failed
func (r *Run) Finish() error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: run is already %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Status = RunStatusPassed
	if r.Failed > 0 {
		r.Status = RunStatusFailed
	}
	r.FinishedAt = time.Now()
	return nil
}

// IsRunning returns true until Finish is called
func (r *Run) IsRunning() bool {
	return r.Status == RunStatusRunning
}

// Duration returns how long the run took, or how long it has been running
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
