package scenarios

import "github.com/kpi5/theinternet-e2e/internal/browser"

// SetChecked clicks el only when its checked state differs from want.
func SetChecked(el *browser.Element, want bool) error {
	got, err := el.Selected()
	if err != nil {
		return err
	}
	if got == want {
		return nil
	}
	return el.Click()
}

// ReplaceText clears el and types text into it.
func ReplaceText(el *browser.Element, text string) error {
	if err := el.Clear(); err != nil {
		return err
	}
	return el.SendKeys(text)
}
