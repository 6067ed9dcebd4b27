package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// attributeScript reads a live DOM property when it holds a scalar and
// falls back to the HTML attribute otherwise, so "value" reflects typing
// and "href" is absolute.
const attributeScript = `(el, name) => {
	const prop = el[name];
	if (prop !== undefined && prop !== null && typeof prop !== "object" && typeof prop !== "function") {
		return String(prop);
	}
	return el.getAttribute(name);
}`

// Element is a reference to one located element. It is valid only until the
// page navigates or the element leaves the DOM; after that every method
// returns ErrStaleElement and the caller must look the element up again.
type Element struct {
	session    *Session
	handle     playwright.ElementHandle
	generation uint64
	by         By
}

func (e *Element) check() error {
	if err := e.session.live(); err != nil {
		return err
	}
	if e.generation != e.session.generation.Load() {
		return fmt.Errorf("%w: %s located before navigation", ErrStaleElement, e.by)
	}
	connected, err := e.handle.Evaluate("el => el.isConnected")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStaleElement, e.by, err)
	}
	if ok, _ := connected.(bool); !ok {
		return fmt.Errorf("%w: %s is no longer attached", ErrStaleElement, e.by)
	}
	return nil
}

// Click clicks the element's center.
func (e *Element) Click() error {
	if err := e.check(); err != nil {
		return err
	}
	if err := e.handle.Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", e.by, err)
	}
	return nil
}

// Clear empties an input or textarea.
func (e *Element) Clear() error {
	if err := e.check(); err != nil {
		return err
	}
	if err := e.handle.Fill(""); err != nil {
		return fmt.Errorf("failed to clear %s: %w", e.by, err)
	}
	return nil
}

// SendKeys types text as keystrokes, appending to any existing value.
func (e *Element) SendKeys(text string) error {
	if err := e.check(); err != nil {
		return err
	}
	if err := e.handle.Type(text); err != nil {
		return fmt.Errorf("failed to type into %s: %w", e.by, err)
	}
	return nil
}

// Displayed reports whether the element is rendered and visible.
func (e *Element) Displayed() (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	return e.handle.IsVisible()
}

// Selected reports whether a checkbox or radio is checked or an option is selected.
func (e *Element) Selected() (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	v, err := e.handle.Evaluate("el => !!(el.checked || el.selected)")
	if err != nil {
		return false, fmt.Errorf("failed to read selection of %s: %w", e.by, err)
	}
	selected, _ := v.(bool)
	return selected, nil
}

// Text returns the element's rendered text, trimmed.
func (e *Element) Text() (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	text, err := e.handle.InnerText()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", e.by, err)
	}
	return strings.TrimSpace(text), nil
}

// Attribute returns the named property or attribute, or "" when neither exists.
func (e *Element) Attribute(name string) (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	v, err := e.handle.Evaluate(attributeScript, name)
	if err != nil {
		return "", fmt.Errorf("failed to read %q of %s: %w", name, e.by, err)
	}
	s, _ := v.(string)
	return s, nil
}

// TagName returns the lower-case tag name.
func (e *Element) TagName() (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	v, err := e.handle.Evaluate("el => el.tagName.toLowerCase()")
	if err != nil {
		return "", fmt.Errorf("failed to read tag of %s: %w", e.by, err)
	}
	s, _ := v.(string)
	return s, nil
}
