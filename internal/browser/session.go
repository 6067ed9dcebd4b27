// Package browser wraps a playwright-go page in a session with
// WebDriver-style element lookups: an implicit wait on single lookups and
// element references that go stale when the page navigates.
package browser

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/kpi5/theinternet-e2e/internal/config"
)

// Session is one live browser owned by a single test case.
type Session struct {
	id     string
	cfg    config.SessionConfig
	page   playwright.Page
	logger *zap.Logger

	// generation advances on every main-frame navigation
	generation atomic.Uint64

	mu       sync.Mutex
	cleanups []cleanup

	releaseOnce sync.Once
	releaseErr  error
	released    atomic.Bool
}

type cleanup struct {
	name string
	fn   func() error
}

// Acquire starts the driver, launches a browser configured by cfg and opens
// a page whose lookups wait up to cfg.ImplicitWait. If any step fails the
// steps that already succeeded are undone before returning.
func Acquire(cfg config.SessionConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	o := buildOptions(opts)
	s := newSession(cfg, o.logger)

	var runOpts []*playwright.RunOptions
	if o.runOptions != nil {
		runOpts = append(runOpts, o.runOptions)
	}
	pw, err := playwright.Run(runOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright driver: %w", markNotInstalled(err))
	}
	s.onRelease("driver", pw.Stop)

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	}
	if cfg.Browser == config.BrowserChromium {
		launch.Args = cfg.LaunchArgs()
	}
	b, err := browserType(pw, cfg.Browser).Launch(launch)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to launch %s: %w", cfg.Browser, markNotInstalled(err)), s.Release())
	}
	s.onRelease("browser", func() error { return b.Close() })

	page, err := b.NewPage()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to open page: %w", err), s.Release())
	}
	s.attach(page)

	s.logger.Info("Session acquired",
		zap.String("browser", cfg.Browser),
		zap.Bool("headless", cfg.Headless),
		zap.Duration("implicit_wait", cfg.ImplicitWait))
	return s, nil
}

func newSession(cfg config.SessionConfig, logger *zap.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:     id,
		cfg:    cfg,
		logger: logger.With(zap.String("session_id", id)),
	}
}

func (s *Session) attach(page playwright.Page) {
	page.SetDefaultTimeout(s.cfg.DriverTimeoutMillis())
	page.SetDefaultNavigationTimeout(s.cfg.DriverTimeoutMillis())
	page.OnFrameNavigated(func(f playwright.Frame) {
		if f.ParentFrame() == nil {
			s.generation.Add(1)
		}
	})
	s.page = page
}

func browserType(pw *playwright.Playwright, name string) playwright.BrowserType {
	switch name {
	case config.BrowserFirefox:
		return pw.Firefox
	case config.BrowserWebKit:
		return pw.WebKit
	default:
		return pw.Chromium
	}
}

// onRelease registers fn to run during Release. Functions run in reverse
// registration order.
func (s *Session) onRelease(name string, fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanups = append(s.cleanups, cleanup{name: name, fn: fn})
}

// Release closes the browser and then stops the driver. It runs once; later
// calls return the first call's result. Errors from every step are joined.
func (s *Session) Release() error {
	s.releaseOnce.Do(func() {
		s.released.Store(true)

		s.mu.Lock()
		steps := s.cleanups
		s.cleanups = nil
		s.mu.Unlock()

		var errs []error
		for i := len(steps) - 1; i >= 0; i-- {
			if err := steps[i].fn(); err != nil {
				s.logger.Warn("Release step failed", zap.String("step", steps[i].name), zap.Error(err))
				errs = append(errs, fmt.Errorf("release %s: %w", steps[i].name, err))
			}
		}
		s.releaseErr = errors.Join(errs...)
		s.logger.Info("Session released")
	})
	return s.releaseErr
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Config returns the configuration the session was acquired with.
func (s *Session) Config() config.SessionConfig {
	return s.cfg
}

func (s *Session) live() error {
	if s.released.Load() || s.page == nil {
		return ErrSessionReleased
	}
	return nil
}

// Navigate loads url and invalidates every element located before the call.
func (s *Session) Navigate(url string) error {
	if err := s.live(); err != nil {
		return err
	}
	s.logger.Debug("Navigating", zap.String("url", url))
	s.generation.Add(1)
	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Back goes one step back in history.
func (s *Session) Back() error {
	if err := s.live(); err != nil {
		return err
	}
	s.generation.Add(1)
	if _, err := s.page.GoBack(); err != nil {
		return fmt.Errorf("failed to navigate back: %w", err)
	}
	return nil
}

// URL returns the current page URL.
func (s *Session) URL() string {
	if s.live() != nil {
		return ""
	}
	return s.page.URL()
}

// WaitForURL blocks until the current URL contains substr or the driver
// timeout elapses. Clicking a link returns before the new page commits.
func (s *Session) WaitForURL(substr string) error {
	if err := s.live(); err != nil {
		return err
	}
	err := s.page.WaitForURL(regexp.MustCompile(regexp.QuoteMeta(substr)), playwright.PageWaitForURLOptions{
		Timeout:   playwright.Float(s.cfg.DriverTimeoutMillis()),
		WaitUntil: playwright.WaitUntilStateCommit,
	})
	if err != nil {
		return fmt.Errorf("url %q never contained %q: %w", s.page.URL(), substr, err)
	}
	return nil
}

// Find returns the first element matching by, polling up to the implicit
// wait. It returns ErrNoSuchElement when nothing matches in time.
func (s *Session) Find(by By) (*Element, error) {
	if err := s.live(); err != nil {
		return nil, err
	}
	sel, err := by.selector()
	if err != nil {
		return nil, err
	}
	gen := s.generation.Load()

	var handle playwright.ElementHandle
	if s.cfg.ImplicitWait <= 0 {
		handle, err = s.page.QuerySelector(sel)
	} else {
		handle, err = s.page.WaitForSelector(sel, playwright.PageWaitForSelectorOptions{
			State:   playwright.WaitForSelectorStateAttached,
			Timeout: playwright.Float(s.cfg.ImplicitWaitMillis()),
		})
	}
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return nil, fmt.Errorf("%w: %s after %s", ErrNoSuchElement, by, s.cfg.ImplicitWait)
		}
		return nil, fmt.Errorf("failed to find %s: %w", by, err)
	}
	if handle == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchElement, by)
	}

	s.logger.Debug("Found element", zap.Stringer("by", by))
	return &Element{session: s, handle: handle, generation: gen, by: by}, nil
}

// FindAll returns every element currently matching by. It does not wait;
// an empty result is not an error.
func (s *Session) FindAll(by By) ([]*Element, error) {
	if err := s.live(); err != nil {
		return nil, err
	}
	sel, err := by.selector()
	if err != nil {
		return nil, err
	}
	gen := s.generation.Load()

	handles, err := s.page.QuerySelectorAll(sel)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", by, err)
	}
	elements := make([]*Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &Element{session: s, handle: h, generation: gen, by: by})
	}
	return elements, nil
}

// PageText returns the visible text of the document body.
func (s *Session) PageText() (string, error) {
	body, err := s.Find(ByTagName("body"))
	if err != nil {
		return "", err
	}
	return body.Text()
}

// DragAndDrop presses the mouse over src, moves to dst and releases.
func (s *Session) DragAndDrop(src, dst *Element) error {
	if err := src.check(); err != nil {
		return err
	}
	if err := dst.check(); err != nil {
		return err
	}

	mouse := s.page.Mouse()
	if err := src.handle.Hover(); err != nil {
		return fmt.Errorf("failed to hover drag source: %w", err)
	}
	if err := mouse.Down(); err != nil {
		return fmt.Errorf("failed to press mouse: %w", err)
	}
	if err := dst.handle.Hover(); err != nil {
		return errors.Join(fmt.Errorf("failed to hover drop target: %w", err), mouse.Up())
	}
	if err := mouse.Up(); err != nil {
		return fmt.Errorf("failed to release mouse: %w", err)
	}
	return nil
}
