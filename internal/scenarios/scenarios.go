// Package scenarios holds the catalog of page scenarios shared by the go
// test suite and the CLI runner.
package scenarios

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stretchr/testify/require"

	"github.com/kpi5/theinternet-e2e/internal/browser"
	"github.com/kpi5/theinternet-e2e/internal/config"
)

// Scenario is one independent test case: it navigates to Path and then
// runs Body against the same session. Failures are reported through t;
// a FailNow aborts the scenario.
type Scenario struct {
	Name string
	Path string
	Body func(t require.TestingT, s *browser.Session)

	// Requires lists elements the page must serve before any interaction.
	Requires []browser.By
}

// Run navigates to the scenario's page and executes its body.
func (sc Scenario) Run(t require.TestingT, s *browser.Session, target config.TargetConfig) {
	require.NoError(t, s.Navigate(target.Resolve(sc.Path)), "navigate to %s", sc.Path)
	sc.Body(t, s)
}

// Catalog returns every scenario in execution order.
func Catalog() []Scenario {
	return []Scenario{
		{
			Name: "AddRemoveElements", Path: "add_remove_elements/", Body: AddRemoveElements,
			Requires: []browser.By{browser.ByCSS("button[onclick='addElement()']")},
		},
		{
			Name: "Checkboxes", Path: "checkboxes", Body: Checkboxes,
			Requires: []browser.By{browser.ByCSS("#checkboxes input[type='checkbox']")},
		},
		{
			Name: "Dropdown", Path: "dropdown", Body: Dropdown,
			Requires: []browser.By{browser.ByID("dropdown")},
		},
		{
			Name: "Inputs", Path: "inputs", Body: Inputs,
			Requires: []browser.By{browser.ByCSS("input[type='number']")},
		},
		{
			Name: "StatusCodes", Path: "status_codes", Body: StatusCodes,
			Requires: []browser.By{
				browser.ByCSS("a[href='status_codes/200']"),
				browser.ByCSS("a[href='status_codes/404']"),
			},
		},
		{
			Name: "DragAndDrop", Path: "drag_and_drop", Body: DragAndDrop,
			Requires: []browser.By{browser.ByID("column-a"), browser.ByID("column-b")},
		},
		{
			Name: "ShiftingContent", Path: "shifting_content/menu", Body: ShiftingContent,
			Requires: []browser.By{browser.ByCSS(".example ul li a")},
		},
		{
			Name: "Geolocation", Path: "geolocation", Body: Geolocation,
			Requires: []browser.By{browser.ByCSS("button[onclick='getLocation()']")},
		},
		{
			Name: "JavaScriptError", Path: "javascript_error", Body: JavaScriptError,
			Requires: []browser.By{browser.ByTagName("body")},
		},
		{
			Name: "ExitIntent", Path: "exit_intent", Body: ExitIntent,
			Requires: []browser.By{browser.ByID("ouibounce-modal")},
		},
	}
}

// Lookup finds a scenario by name, ignoring case.
func Lookup(name string) (Scenario, bool) {
	for _, sc := range Catalog() {
		if strings.EqualFold(sc.Name, name) {
			return sc, true
		}
	}
	return Scenario{}, false
}

// Filter returns the named scenarios in catalog order. A list that is empty
// or holds only blank names selects the whole catalog. Unknown names are an
// error.
func Filter(names []string) ([]Scenario, error) {
	want := make(map[string]bool, len(names))
	var unknown []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		sc, ok := Lookup(n)
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		want[sc.Name] = true
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown scenarios: %s", strings.Join(unknown, ", "))
	}
	if len(want) == 0 {
		return Catalog(), nil
	}

	var out []Scenario
	for _, sc := range Catalog() {
		if want[sc.Name] {
			out = append(out, sc)
		}
	}
	return out, nil
}
