//go:build integration
// +build integration

package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kpi5/theinternet-e2e/internal/models"
	"github.com/kpi5/theinternet-e2e/internal/repository/testutil"
)

func newRun(t *testing.T) *models.Run {
	t.Helper()
	run, err := models.NewRun("http://127.0.0.1:7080/")
	if err != nil {
		t.Fatal(err)
	}
	return run
}

func TestRunRepository_CreateAndGet_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepository(testDB.DB)
	run := newRun(t)

	if err := repo.CreateRun(run); err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}

	got, err := repo.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got.BaseURL != run.BaseURL {
		t.Errorf("BaseURL mismatch: got %v, want %v", got.BaseURL, run.BaseURL)
	}
	if got.Status != models.RunStatusRunning {
		t.Errorf("Status mismatch: got %v, want %v", got.Status, models.RunStatusRunning)
	}
	if !got.FinishedAt.IsZero() {
		t.Error("Unfinished run should have zero FinishedAt")
	}
}

func TestRunRepository_GetRun_NotFound_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepository(testDB.DB)

	if _, err := repo.GetRun(uuid.New().String()); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound, got %v", err)
	}
}

func TestRunRepository_FinishRun_NotFound_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepository(testDB.DB)
	run := newRun(t)
	if err := run.Finish(); err != nil {
		t.Fatal(err)
	}

	if err := repo.FinishRun(run); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound, got %v", err)
	}
}

func TestRunRecorder_RecordsResultsAndFinishes_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepository(testDB.DB)
	recorder, err := repo.Recorder(newRun(t))
	if err != nil {
		t.Fatalf("Recorder() error = %v", err)
	}

	// GIVEN one passing and one failing scenario
	passed, _ := models.NewScenarioResult("Checkboxes")
	passed.SessionID = uuid.New().String()
	passed.Duration = 1500 * time.Millisecond

	time.Sleep(5 * time.Millisecond)
	failed, _ := models.NewScenarioResult("Dropdown")
	failed.Fail(`expected "Option 2", got "Option 1"`)
	failed.Fail("second failure")

	// WHEN both are recorded and the run is closed
	for _, res := range []*models.ScenarioResult{passed, failed} {
		if err := recorder.Record(res); err != nil {
			t.Fatalf("Record(%s) error = %v", res.Scenario, err)
		}
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// THEN the run is failed with tallies, and results round trip
	run, err := repo.GetRun(recorder.Run().ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.Status != models.RunStatusFailed || run.Passed != 1 || run.Failed != 1 {
		t.Errorf("Unexpected run state: status=%s passed=%d failed=%d", run.Status, run.Passed, run.Failed)
	}
	if run.FinishedAt.IsZero() {
		t.Error("Finished run should have FinishedAt")
	}

	results, err := repo.ListResults(run.ID)
	if err != nil {
		t.Fatalf("ListResults() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Scenario != "Checkboxes" || results[0].Duration != 1500*time.Millisecond || len(results[0].Failures) != 0 {
		t.Errorf("Unexpected first result: %+v", results[0])
	}
	if results[1].Status != models.ResultFailed || len(results[1].Failures) != 2 {
		t.Errorf("Unexpected second result: %+v", results[1])
	}
}

func TestRunRepository_RecordResult_RequiresRun_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepository(testDB.DB)
	res, _ := models.NewScenarioResult("Inputs")
	res.RunID = uuid.New().String()

	if err := repo.RecordResult(res); err == nil {
		t.Error("Expected foreign key error for unknown run, got nil")
	}
}


func TestRunRepository_SchemaIsolation_Integration(t *testing.T) {
	testDB1 := testutil.SetupTestDatabase(t)
	defer testDB1.Teardown(t)
	testDB2 := testutil.SetupTestDatabase(t)
	defer testDB2.Teardown(t)

	repo1 := NewRunRepository(testDB1.DB)
	repo2 := NewRunRepository(testDB2.DB)

	run := newRun(t)
	if err := repo1.CreateRun(run); err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}

	if _, err := repo2.GetRun(run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Run should not exist in second schema, got %v", err)
	}
}
