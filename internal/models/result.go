package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResultStatus is the outcome of one scenario
type ResultStatus string

// Result statuses. Error means the scenario never ran, e.g. the browser
// could not be launched.
const (
	ResultPassed ResultStatus = "passed"
	ResultFailed ResultStatus = "failed"
	ResultError  ResultStatus = "error"
)

// ScenarioResult records one scenario execution
type ScenarioResult struct {
	ID        string
	RunID     string
	Scenario  string
	SessionID string
	Status    ResultStatus
	Failures  []string
	StartedAt time.Time
	Duration  time.Duration
}

// NewScenarioResult starts a result for scenario
func NewScenarioResult(scenario string) (*ScenarioResult, error) {
	if strings.TrimSpace(scenario) == "" {
		return nil, ErrEmptyScenario
	}
	return &ScenarioResult{
		ID:        uuid.New().String(),
		Scenario:  scenario,
		Status:    ResultPassed,
		StartedAt: time.Now(),
	}, nil
}

// Fail records a failure message and marks the result failed. An errored
// result stays errored.
func (r *ScenarioResult) Fail(message string) {
	r.Failures = append(r.Failures, message)
	if r.Status != ResultError {
		r.Status = ResultFailed
	}
}

// Error records why the scenario could not run
func (r *ScenarioResult) Error(message string) {
	r.Failures = append(r.Failures, message)
	r.Status = ResultError
}

// Passed returns true when no failure was recorded
func (r *ScenarioResult) Passed() bool {
	return r.Status == ResultPassed
}

// Validate checks the status is one of the known values
func (r *ScenarioResult) Validate() error {
	if strings.TrimSpace(r.Scenario) == "" {
		return ErrEmptyScenario
	}
	switch r.Status {
	case ResultPassed, ResultFailed, ResultError:
		return nil
	default:
		return ErrInvalidResultStatus
	}
}
