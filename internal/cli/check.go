package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kpi5/theinternet-e2e/internal/preflight"
	"github.com/kpi5/theinternet-e2e/internal/scenarios"
)

// ErrPagesNotReady is returned by RunCheck when a page is unreachable or
// lacks an element its scenario starts from.
var ErrPagesNotReady = errors.New("pages not ready")

// RunCheck fetches every scenario page and prints one line per page
func RunCheck(ctx context.Context, checker *preflight.Checker, list []scenarios.Scenario, w io.Writer) error {
	failed := 0
	for _, f := range checker.Check(ctx, list) {
		switch {
		case f.Err != nil:
			failed++
			fmt.Fprintf(w, "%-6s %-20s %s: %v\n", "DOWN", f.Scenario, f.URL, f.Err)
		case len(f.Missing) > 0:
			failed++
			fmt.Fprintf(w, "%-6s %-20s %s: missing %s\n", "MISS", f.Scenario, f.URL, strings.Join(f.Missing, ", "))
		default:
			fmt.Fprintf(w, "%-6s %-20s %s\n", "OK", f.Scenario, f.URL)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPagesNotReady, failed, len(list))
	}
	return nil
}
