package runner

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kpi5/theinternet-e2e/internal/browser"
	"github.com/kpi5/theinternet-e2e/internal/browser/browsertest"
	"github.com/kpi5/theinternet-e2e/internal/config"
	"github.com/kpi5/theinternet-e2e/internal/models"
	"github.com/kpi5/theinternet-e2e/internal/scenarios"
	"github.com/kpi5/theinternet-e2e/internal/site"
)

type memorySink struct {
	results []*models.ScenarioResult
	err     error
}

func (m *memorySink) Record(result *models.ScenarioResult) error {
	m.results = append(m.results, result)
	return m.err
}

func failingAcquire(err error) AcquireFunc {
	return func(config.SessionConfig, ...browser.Option) (*browser.Session, error) {
		return nil, err
	}
}

func TestRunScenario_AcquireError(t *testing.T) {
	// GIVEN a runner whose browser cannot start
	target, err := config.NewTargetConfig("http://127.0.0.1:1")
	require.NoError(t, err)
	r := New(target, config.DefaultSessionConfig(), zaptest.NewLogger(t))
	r.Acquire = failingAcquire(errors.New("no browser"))

	bodyRan := false
	sc := scenarios.Scenario{
		Name: "Sample",
		Path: "sample",
		Body: func(require.TestingT, *browser.Session) { bodyRan = true },
	}

	// WHEN the scenario runs
	res := r.RunScenario(sc)

	// THEN it is reported as an error without running the body
	assert.False(t, bodyRan)
	assert.Equal(t, models.ResultError, res.Status)
	assert.Equal(t, "Sample", res.Scenario)
	assert.Empty(t, res.SessionID)
	require.Len(t, res.Failures, 1)
	assert.Contains(t, res.Failures[0], "no browser")
}

func TestRunScenario_EmptyName(t *testing.T) {
	r := New(config.TargetConfig{}, config.DefaultSessionConfig(), nil)
	r.Acquire = failingAcquire(errors.New("must not be called"))

	res := r.RunScenario(scenarios.Scenario{})

	assert.Equal(t, models.ResultError, res.Status)
	assert.Contains(t, res.Failures[0], models.ErrEmptyScenario.Error())
}

func TestRun_SummaryAndSink(t *testing.T) {
	// GIVEN two scenarios and a sink that rejects everything
	r := New(config.TargetConfig{}, config.DefaultSessionConfig(), zaptest.NewLogger(t))
	r.Acquire = failingAcquire(errors.New("no browser"))
	sink := &memorySink{err: errors.New("database down")}
	r.Sink = sink

	list := []scenarios.Scenario{
		{Name: "One", Body: func(require.TestingT, *browser.Session) {}},
		{Name: "Two", Body: func(require.TestingT, *browser.Session) {}},
	}

	// WHEN the run completes
	sum := r.Run(list)

	// THEN every scenario is counted in order and sink errors do not stop the run
	require.Len(t, sum.Results, 2)
	assert.Equal(t, "One", sum.Results[0].Scenario)
	assert.Equal(t, "Two", sum.Results[1].Scenario)
	assert.Equal(t, 0, sum.Passed)
	assert.Equal(t, 2, sum.Failed)
	assert.False(t, sum.OK())
	assert.Len(t, sink.results, 2)
}

func TestSummary_OK(t *testing.T) {
	assert.True(t, Summary{}.OK())
	assert.True(t, Summary{Passed: 3}.OK())
	assert.False(t, Summary{Passed: 3, Failed: 1}.OK())
}

func TestRunScenario_AgainstLocalSite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	router, err := site.NewRouter(zaptest.NewLogger(t))
	require.NoError(t, err)
	srv := httptest.NewServer(router)
	defer srv.Close()

	target, err := config.NewTargetConfig(srv.URL)
	require.NoError(t, err)
	cfg := config.DefaultSessionConfig()
	cfg.ImplicitWait = 2 * time.Second

	// newRunner hands out sessions owned by t, so a missing browser skips t.
	newRunner := func(t *testing.T) (*Runner, *[]*browser.Session) {
		r := New(target, cfg, zaptest.NewLogger(t))
		var acquired []*browser.Session
		r.Acquire = func(cfg config.SessionConfig, opts ...browser.Option) (*browser.Session, error) {
			s := browsertest.New(t, cfg, opts...)
			acquired = append(acquired, s)
			return s, nil
		}
		return r, &acquired
	}

	t.Run("passing scenario", func(t *testing.T) {
		r, acquired := newRunner(t)
		sc, ok := scenarios.Lookup("Checkboxes")
		require.True(t, ok)

		res := r.RunScenario(sc)

		assert.True(t, res.Passed(), "failures: %v", res.Failures)
		require.Len(t, *acquired, 1)
		s := (*acquired)[0]
		assert.Equal(t, s.ID(), res.SessionID)
		assert.ErrorIs(t, s.Navigate(srv.URL), browser.ErrSessionReleased)
	})

	t.Run("aborted scenario still releases", func(t *testing.T) {
		r, acquired := newRunner(t)
		sc := scenarios.Scenario{
			Name: "Missing",
			Path: "checkboxes",
			Body: func(t require.TestingT, s *browser.Session) {
				_, err := s.Find(browser.ByID("does-not-exist"))
				require.NoError(t, err)
			},
		}

		res := r.RunScenario(sc)

		assert.Equal(t, models.ResultFailed, res.Status)
		require.NotEmpty(t, res.Failures)
		require.Len(t, *acquired, 1)
		assert.ErrorIs(t, (*acquired)[0].Navigate(srv.URL), browser.ErrSessionReleased)
	})
}
