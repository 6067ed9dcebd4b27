// Package preflight checks over plain HTTP that the target site serves the
// elements each scenario starts from, without launching a browser.
package preflight

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kpi5/theinternet-e2e/internal/config"
	"github.com/kpi5/theinternet-e2e/internal/scenarios"
)

// Finding is the outcome for one scenario page.
type Finding struct {
	Scenario string
	URL      string
	Status   int
	Missing  []string
	Err      error
}

// OK reports whether the page loaded and every required element was found.
func (f Finding) OK() bool {
	return f.Err == nil && len(f.Missing) == 0
}

// Checker fetches scenario pages.
type Checker struct {
	client *http.Client
	target config.TargetConfig
	logger *zap.Logger
}

// New creates a checker. A nil client gets a 30s timeout client.
func New(client *http.Client, target config.TargetConfig, logger *zap.Logger) *Checker {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{client: client, target: target, logger: logger}
}

// Check fetches every scenario page in order.
func (c *Checker) Check(ctx context.Context, list []scenarios.Scenario) []Finding {
	findings := make([]Finding, 0, len(list))
	for _, sc := range list {
		f := c.CheckScenario(ctx, sc)
		if f.OK() {
			c.logger.Debug("Page ready", zap.String("scenario", sc.Name), zap.String("url", f.URL))
		} else {
			c.logger.Warn("Page not ready",
				zap.String("scenario", sc.Name),
				zap.String("url", f.URL),
				zap.Strings("missing", f.Missing),
				zap.Error(f.Err))
		}
		findings = append(findings, f)
	}
	return findings
}

// CheckScenario fetches one page and looks for its required elements.
// Elements created by scripts after load are not visible here.
func (c *Checker) CheckScenario(ctx context.Context, sc scenarios.Scenario) Finding {
	f := Finding{Scenario: sc.Name, URL: c.target.Resolve(sc.Path)}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		f.Err = fmt.Errorf("failed to build request: %w", err)
		return f
	}
	resp, err := c.client.Do(req)
	if err != nil {
		f.Err = fmt.Errorf("request failed: %w", err)
		return f
	}
	defer resp.Body.Close()

	f.Status = resp.StatusCode
	if resp.StatusCode >= 400 {
		f.Err = fmt.Errorf("received status code %d", resp.StatusCode)
		return f
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		f.Err = fmt.Errorf("failed to parse HTML: %w", err)
		return f
	}

	for _, by := range sc.Requires {
		css, err := by.CSS()
		if err != nil {
			f.Err = err
			return f
		}
		if doc.Find(css).Length() == 0 {
			f.Missing = append(f.Missing, by.String())
		}
	}
	return f
}
