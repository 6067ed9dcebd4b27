package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Select drives a <select> element.
type Select struct {
	el *Element
}

// NewSelect wraps el, which must be a select element.
func NewSelect(el *Element) (*Select, error) {
	tag, err := el.TagName()
	if err != nil {
		return nil, err
	}
	if tag != "select" {
		return nil, fmt.Errorf("%w: %s is <%s>", ErrNotSelect, el.by, tag)
	}
	return &Select{el: el}, nil
}

// SelectByText selects the option whose visible text equals text.
func (s *Select) SelectByText(text string) error {
	return s.choose(playwright.SelectOptionValues{Labels: playwright.StringSlice(text)}, "text", text)
}

// SelectByValue selects the option whose value attribute equals value.
func (s *Select) SelectByValue(value string) error {
	return s.choose(playwright.SelectOptionValues{Values: playwright.StringSlice(value)}, "value", value)
}

func (s *Select) choose(values playwright.SelectOptionValues, mode, want string) error {
	if err := s.el.check(); err != nil {
		return err
	}
	chosen, err := s.el.handle.SelectOption(values)
	if err != nil {
		return fmt.Errorf("failed to select %s %q in %s: %w", mode, want, s.el.by, err)
	}
	if len(chosen) == 0 {
		return fmt.Errorf("%w: option with %s %q in %s", ErrNoSuchElement, mode, want, s.el.by)
	}
	return nil
}

// SelectedOptionText returns the visible text of the selected option, or
// "" when nothing is selected.
func (s *Select) SelectedOptionText() (string, error) {
	if err := s.el.check(); err != nil {
		return "", err
	}
	v, err := s.el.handle.Evaluate(`el => {
		const opt = el.options[el.selectedIndex];
		return opt ? opt.text.trim() : "";
	}`)
	if err != nil {
		return "", fmt.Errorf("failed to read selected option of %s: %w", s.el.by, err)
	}
	text, _ := v.(string)
	return text, nil
}
