package cli

import (
	"errors"
	"fmt"

	"github.com/kpi5/theinternet-e2e/internal/config"
	"github.com/kpi5/theinternet-e2e/internal/database"
	"github.com/kpi5/theinternet-e2e/internal/models"
	"github.com/kpi5/theinternet-e2e/internal/repository"
	"github.com/kpi5/theinternet-e2e/internal/runner"
)

// ResultStore records a run into PostgreSQL. Close finishes the run and
// closes the connection.
type ResultStore struct {
	*repository.RunRecorder
	close func() error
}

var _ runner.Sink = (*ResultStore)(nil)

// Close stores the run's final status and closes the database.
func (s *ResultStore) Close() error {
	return errors.Join(s.RunRecorder.Close(), s.close())
}

// OpenResultStore connects, migrates and creates a run row for baseURL
func OpenResultStore(pgConfig *config.PostgresConfig, baseURL string) (*ResultStore, error) {
	run, err := models.NewRun(baseURL)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(pgConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	recorder, err := repository.NewRunRepository(db).Recorder(run)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &ResultStore{RunRecorder: recorder, close: db.Close}, nil
}
