package models

import (
	"errors"
	"testing"
)

func TestNewScenarioResult(t *testing.T) {
	if _, err := NewScenarioResult("  "); !errors.Is(err, ErrEmptyScenario) {
		t.Errorf("Expected ErrEmptyScenario, got %v", err)
	}

	res, err := NewScenarioResult("Checkboxes")
	if err != nil {
		t.Fatalf("NewScenarioResult() error = %v", err)
	}
	if !res.Passed() {
		t.Errorf("Expected a fresh result to pass, got %s", res.Status)
	}
	if res.ID == "" || res.StartedAt.IsZero() {
		t.Error("Expected ID and StartedAt to be set")
	}
}

func TestScenarioResult_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		apply      func(r *ScenarioResult)
		wantStatus ResultStatus
		wantCount  int
	}{
		{
			name:       "untouched",
			apply:      func(r *ScenarioResult) {},
			wantStatus: ResultPassed,
		},
		{
			name:       "one failure",
			apply:      func(r *ScenarioResult) { r.Fail("expected 2 checkboxes") },
			wantStatus: ResultFailed,
			wantCount:  1,
		},
		{
			name: "error then failure stays error",
			apply: func(r *ScenarioResult) {
				r.Error("browser did not launch")
				r.Fail("release failed")
			},
			wantStatus: ResultError,
			wantCount:  2,
		},
		{
			name: "failure then error becomes error",
			apply: func(r *ScenarioResult) {
				r.Fail("assertion")
				r.Error("panic")
			},
			wantStatus: ResultError,
			wantCount:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewScenarioResult("Inputs")
			if err != nil {
				t.Fatal(err)
			}

			tt.apply(res)

			if res.Status != tt.wantStatus {
				t.Errorf("Expected status %s, got %s", tt.wantStatus, res.Status)
			}
			if len(res.Failures) != tt.wantCount {
				t.Errorf("Expected %d failures, got %d", tt.wantCount, len(res.Failures))
			}
			if err := res.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestScenarioResult_Validate(t *testing.T) {
	if err := (&ScenarioResult{Scenario: "x", Status: "skipped"}).Validate(); !errors.Is(err, ErrInvalidResultStatus) {
		t.Errorf("Expected ErrInvalidResultStatus, got %v", err)
	}
	if err := (&ScenarioResult{Status: ResultPassed}).Validate(); !errors.Is(err, ErrEmptyScenario) {
		t.Errorf("Expected ErrEmptyScenario, got %v", err)
	}
}
