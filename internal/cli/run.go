package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kpi5/theinternet-e2e/internal/config"
	"github.com/kpi5/theinternet-e2e/internal/models"
	"github.com/kpi5/theinternet-e2e/internal/runner"
	"github.com/kpi5/theinternet-e2e/internal/scenarios"
)

// ErrScenariosFailed is returned by RunSuite when any scenario did not pass.
var ErrScenariosFailed = errors.New("scenarios failed")

// RunDependencies holds everything a suite run needs
type RunDependencies struct {
	Target    config.TargetConfig
	Session   config.SessionConfig
	Scenarios []scenarios.Scenario
	Logger    *zap.Logger
	Out       io.Writer

	// Optional
	Sink    runner.Sink
	Acquire runner.AcquireFunc
}

// RunSuite runs the selected scenarios and prints a summary to Out
func RunSuite(deps RunDependencies) (runner.Summary, error) {
	r := runner.New(deps.Target, deps.Session, deps.Logger)
	if deps.Acquire != nil {
		r.Acquire = deps.Acquire
	}
	r.Sink = deps.Sink

	r.Logger.Info("Starting run",
		zap.String("base_url", deps.Target.BaseURL),
		zap.Int("scenarios", len(deps.Scenarios)),
		zap.String("browser", deps.Session.Browser))

	sum := r.Run(deps.Scenarios)
	if deps.Out != nil {
		PrintSummary(deps.Out, sum)
	}
	if !sum.OK() {
		return sum, fmt.Errorf("%w: %d of %d", ErrScenariosFailed, sum.Failed, len(sum.Results))
	}
	return sum, nil
}

// PrintSummary writes one line per result followed by the totals
func PrintSummary(w io.Writer, sum runner.Summary) {
	for _, res := range sum.Results {
		fmt.Fprintf(w, "%-6s %-20s %s\n", statusLabel(res.Status), res.Scenario, res.Duration.Round(time.Millisecond))
		for _, f := range res.Failures {
			for _, line := range strings.Split(strings.TrimSpace(f), "\n") {
				fmt.Fprintf(w, "       %s\n", line)
			}
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed in %s\n", sum.Passed, sum.Failed, sum.Elapsed.Round(time.Millisecond))
}

// RunList writes the catalog with the URL each scenario opens
func RunList(w io.Writer, list []scenarios.Scenario, target config.TargetConfig) {
	for _, sc := range list {
		fmt.Fprintf(w, "%-20s %s\n", sc.Name, target.Resolve(sc.Path))
	}
}

func statusLabel(s models.ResultStatus) string {
	switch s {
	case models.ResultPassed:
		return "PASS"
	case models.ResultFailed:
		return "FAIL"
	default:
		return "ERROR"
	}
}
