package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpi5/theinternet-e2e/internal/scenarios"
)

// Feature: Add/Remove Elements
//
//	Given I am on the add/remove elements page
//	When I add an element
//	Then a delete button is shown
//	And deleting it leaves no delete buttons
func TestAddRemoveElements(t *testing.T) { runScenario(t, "AddRemoveElements") }

// Feature: Checkboxes
//
//	Given I am on the checkboxes page
//	Then there are exactly two checkboxes
//	And I can make the first checked and the second unchecked
func TestCheckboxes(t *testing.T) { runScenario(t, "Checkboxes") }

// Feature: Dropdown
//
//	Given I am on the dropdown page
//	When I select "Option 1" by text, then value "2"
//	Then the selected option reads "Option 1", then "Option 2"
func TestDropdown(t *testing.T) { runScenario(t, "Dropdown") }

// Feature: Inputs
//
//	Given I am on the inputs page
//	When I type into the number field, clearing in between
//	Then the field holds only the last value
func TestInputs(t *testing.T) { runScenario(t, "Inputs") }

// Feature: Status Codes
//
//	Given I am on the status codes page
//	When I follow the 200 link, go back and follow the 404 link
//	Then the URL names each code
func TestStatusCodes(t *testing.T) { runScenario(t, "StatusCodes") }

// Feature: Drag and Drop
//
//	Given I am on the drag and drop page
//	When I drag column A onto column B
//	Then both columns still exist
func TestDragAndDrop(t *testing.T) { runScenario(t, "DragAndDrop") }

// Feature: Shifting Content menu
//
//	Given I am on the shifting content menu page
//	Then there are five menu links, each with an href
func TestShiftingContent(t *testing.T) { runScenario(t, "ShiftingContent") }

// Feature: Geolocation
//
//	Given I am on the geolocation page
//	When I ask for my location
//	Then the button is still there
func TestGeolocation(t *testing.T) { runScenario(t, "Geolocation") }

// Feature: JavaScript onload error
//
//	Given I am on the JavaScript error page
//	Then the page text describes the onload error
func TestJavaScriptError(t *testing.T) { runScenario(t, "JavaScriptError") }

// Feature: Exit Intent
//
//	Given I am on the exit intent page
//	Then the modal exists but is hidden
func TestExitIntent(t *testing.T) { runScenario(t, "ExitIntent") }

// TestCatalogCovered fails when a catalog scenario has no test above.
func TestCatalogCovered(t *testing.T) {
	covered := map[string]bool{
		"AddRemoveElements": true,
		"Checkboxes":        true,
		"Dropdown":          true,
		"Inputs":            true,
		"StatusCodes":       true,
		"DragAndDrop":       true,
		"ShiftingContent":   true,
		"Geolocation":       true,
		"JavaScriptError":   true,
		"ExitIntent":        true,
	}
	for _, sc := range scenarios.Catalog() {
		if !covered[sc.Name] {
			t.Errorf("scenario %s has no e2e test", sc.Name)
		}
	}
}

func TestSelection(t *testing.T) {
	tests := []struct {
		name    string
		only    []string
		want    []string
		wantErr string
	}{
		{name: "no list selects every scenario", only: nil, want: []string{"AddRemoveElements", "ExitIntent"}},
		{name: "names match ignoring case", only: []string{"checkboxes"}, want: []string{"Checkboxes"}},
		{name: "misspelled name fails", only: []string{"Chekboxes"}, wantErr: "unknown scenarios: Chekboxes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selection(tt.only)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, name := range tt.want {
				assert.True(t, got[name], "%s should be selected", name)
			}
			if len(tt.only) > 0 {
				assert.Len(t, got, len(tt.want))
			} else {
				assert.Len(t, got, len(scenarios.Catalog()))
			}
		})
	}
}
