// Package browsertest hands browser sessions to Go tests and guarantees
// they are released when the test ends.
package browsertest

import (
	"errors"
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/kpi5/theinternet-e2e/internal/browser"
	"github.com/kpi5/theinternet-e2e/internal/config"
)

// RequireEnv makes a missing browser a test failure instead of a skip.
const RequireEnv = "E2E_REQUIRE_BROWSER"

// New acquires a session for t and releases it in t.Cleanup, so release runs
// after the test body whether it passed, failed or called FailNow. A
// release error fails the test.
//
// When the driver or browser is not installed the test is skipped unless
// E2E_REQUIRE_BROWSER=1. Any other acquire error fails the test.
func New(t testing.TB, cfg config.SessionConfig, opts ...browser.Option) *browser.Session {
	t.Helper()

	opts = append([]browser.Option{
		browser.WithLogger(zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel))),
	}, opts...)

	s, err := browser.Acquire(cfg, opts...)
	if err != nil {
		if skippable(err, os.Getenv) {
			t.Skipf("browser unavailable (set %s=1 to fail instead): %v", RequireEnv, err)
		}
		t.Fatalf("Failed to acquire browser session: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Release(); err != nil {
			t.Errorf("Failed to release browser session %s: %v", s.ID(), err)
		}
	})
	return s
}

// skippable reports whether an acquire error means the browser is simply
// not installed here and the run did not ask for one.
func skippable(err error, getenv func(string) string) bool {
	return errors.Is(err, browser.ErrNotInstalled) && getenv(RequireEnv) != "1"
}
