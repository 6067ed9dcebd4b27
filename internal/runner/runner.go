// Package runner executes catalog scenarios outside of go test, one browser
// session per scenario, and reports a result for each.
package runner

import (
	"time"

	"go.uber.org/zap"

	"github.com/kpi5/theinternet-e2e/internal/browser"
	"github.com/kpi5/theinternet-e2e/internal/config"
	"github.com/kpi5/theinternet-e2e/internal/models"
	"github.com/kpi5/theinternet-e2e/internal/scenarios"
)

// AcquireFunc opens a browser session.
type AcquireFunc func(cfg config.SessionConfig, opts ...browser.Option) (*browser.Session, error)

// Sink receives every result as soon as its scenario finishes.
type Sink interface {
	Record(result *models.ScenarioResult) error
}

// Runner runs scenarios sequentially.
type Runner struct {
	Target  config.TargetConfig
	Session config.SessionConfig
	Logger  *zap.Logger
	Sink    Sink
	Acquire AcquireFunc
}

// New creates a runner with the real browser launcher.
func New(target config.TargetConfig, session config.SessionConfig, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Target:  target,
		Session: session,
		Logger:  logger,
		Acquire: browser.Acquire,
	}
}

// Summary aggregates a run.
type Summary struct {
	Results []*models.ScenarioResult
	Passed  int
	Failed  int
	Elapsed time.Duration
}

// OK reports whether every scenario passed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// Run executes list in order and returns the summary.
func (r *Runner) Run(list []scenarios.Scenario) Summary {
	start := time.Now()
	var sum Summary
	for _, sc := range list {
		res := r.RunScenario(sc)
		sum.Results = append(sum.Results, res)
		if res.Passed() {
			sum.Passed++
		} else {
			sum.Failed++
		}

		if r.Sink != nil {
			if err := r.Sink.Record(res); err != nil {
				r.Logger.Warn("Failed to record result", zap.String("scenario", sc.Name), zap.Error(err))
			}
		}
	}
	sum.Elapsed = time.Since(start)
	return sum
}

// RunScenario acquires a session, runs sc and releases the session whatever
// the outcome. A release failure fails the result.
func (r *Runner) RunScenario(sc scenarios.Scenario) *models.ScenarioResult {
	res, err := models.NewScenarioResult(sc.Name)
	if err != nil {
		res = &models.ScenarioResult{Scenario: "(unnamed)", StartedAt: time.Now()}
		res.Error(err.Error())
		return res
	}
	log := r.Logger.With(zap.String("scenario", sc.Name))

	session, err := r.Acquire(r.Session, browser.WithLogger(r.Logger))
	if err != nil {
		res.Error("acquire session: " + err.Error())
		res.Duration = time.Since(res.StartedAt)
		log.Error("Scenario could not start", zap.Error(err))
		return res
	}
	res.SessionID = session.ID()

	rec := execute(func(t *Recorder) {
		sc.Run(t, session, r.Target)
	})
	for _, f := range rec.Failures() {
		res.Fail(f)
	}

	if err := session.Release(); err != nil {
		res.Fail("release session: " + err.Error())
	}
	res.Duration = time.Since(res.StartedAt)

	if res.Passed() {
		log.Info("Scenario passed", zap.Duration("elapsed", res.Duration))
	} else {
		log.Warn("Scenario failed",
			zap.Duration("elapsed", res.Duration),
			zap.Bool("aborted", rec.Aborted()),
			zap.Strings("failures", res.Failures))
	}
	return res
}
