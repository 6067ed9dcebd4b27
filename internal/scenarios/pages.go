package scenarios

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpi5/theinternet-e2e/internal/browser"
)

// AddRemoveElements adds one element and deletes it again.
func AddRemoveElements(t require.TestingT, s *browser.Session) {
	add, err := s.Find(browser.ByCSS("button[onclick='addElement()']"))
	require.NoError(t, err)
	require.NoError(t, add.Click())

	del, err := s.Find(browser.ByCSS("button.added-manually"))
	require.NoError(t, err)
	shown, err := del.Displayed()
	require.NoError(t, err)
	assert.True(t, shown, "delete button should be displayed")

	require.NoError(t, del.Click())

	// the old reference is gone with the element
	remaining, err := s.FindAll(browser.ByCSS("button.added-manually"))
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

// Checkboxes drives both checkboxes to a known state.
func Checkboxes(t require.TestingT, s *browser.Session) {
	boxes, err := s.FindAll(browser.ByCSS("#checkboxes input[type='checkbox']"))
	require.NoError(t, err)
	require.Len(t, boxes, 2)

	require.NoError(t, SetChecked(boxes[0], true))
	checked, err := boxes[0].Selected()
	require.NoError(t, err)
	assert.True(t, checked, "first checkbox should be checked")

	require.NoError(t, SetChecked(boxes[1], false))
	checked, err = boxes[1].Selected()
	require.NoError(t, err)
	assert.False(t, checked, "second checkbox should be unchecked")
}

// Dropdown selects by visible text and then by value.
func Dropdown(t require.TestingT, s *browser.Session) {
	el, err := s.Find(browser.ByID("dropdown"))
	require.NoError(t, err)
	dropdown, err := browser.NewSelect(el)
	require.NoError(t, err)

	require.NoError(t, dropdown.SelectByText("Option 1"))
	text, err := dropdown.SelectedOptionText()
	require.NoError(t, err)
	assert.Equal(t, "Option 1", text)

	require.NoError(t, dropdown.SelectByValue("2"))
	text, err = dropdown.SelectedOptionText()
	require.NoError(t, err)
	assert.Equal(t, "Option 2", text)
}

// Inputs types into the number field, replacing its value between entries.
func Inputs(t require.TestingT, s *browser.Session) {
	input, err := s.Find(browser.ByCSS("input[type='number']"))
	require.NoError(t, err)

	require.NoError(t, input.SendKeys("123"))
	value, err := input.Attribute("value")
	require.NoError(t, err)
	assert.Equal(t, "123", value)

	require.NoError(t, ReplaceText(input, "abc"))

	require.NoError(t, ReplaceText(input, "456"))
	value, err = input.Attribute("value")
	require.NoError(t, err)
	assert.Equal(t, "456", value)
}

// StatusCodes follows the 200 link, goes back and follows the 404 link.
func StatusCodes(t require.TestingT, s *browser.Session) {
	link, err := s.Find(browser.ByCSS("a[href='status_codes/200']"))
	require.NoError(t, err)
	require.NoError(t, link.Click())
	require.NoError(t, s.WaitForURL("200"))
	assert.Contains(t, s.URL(), "200")

	require.NoError(t, s.Back())

	link, err = s.Find(browser.ByCSS("a[href='status_codes/404']"))
	require.NoError(t, err)
	require.NoError(t, link.Click())
	require.NoError(t, s.WaitForURL("404"))
	assert.Contains(t, s.URL(), "404")
}

// DragAndDrop drags column A onto column B and re-locates both columns.
// The resulting column order is not asserted.
func DragAndDrop(t require.TestingT, s *browser.Session) {
	colA, err := s.Find(browser.ByID("column-a"))
	require.NoError(t, err)
	colB, err := s.Find(browser.ByID("column-b"))
	require.NoError(t, err)

	text, err := colA.Text()
	require.NoError(t, err)
	assert.Equal(t, "A", text)
	text, err = colB.Text()
	require.NoError(t, err)
	assert.Equal(t, "B", text)

	require.NoError(t, s.DragAndDrop(colA, colB))

	colA, err = s.Find(browser.ByID("column-a"))
	require.NoError(t, err)
	colB, err = s.Find(browser.ByID("column-b"))
	require.NoError(t, err)
	assert.NotNil(t, colA)
	assert.NotNil(t, colB)
}

// ShiftingContent checks the menu has five links, each with an href.
func ShiftingContent(t require.TestingT, s *browser.Session) {
	items, err := s.FindAll(browser.ByCSS(".example ul li a"))
	require.NoError(t, err)
	require.Len(t, items, 5)

	for i, item := range items {
		href, err := item.Attribute("href")
		require.NoError(t, err)
		assert.NotEmpty(t, href, "menu item %d has no href", i)
	}
}

// Geolocation presses the locate button.
func Geolocation(t require.TestingT, s *browser.Session) {
	button, err := s.Find(browser.ByCSS("button[onclick='getLocation()']"))
	require.NoError(t, err)
	require.NoError(t, button.Click())
	assert.NotNil(t, button)
}

// JavaScriptError checks the page text survives the onload error.
func JavaScriptError(t require.TestingT, s *browser.Session) {
	text, err := s.PageText()
	require.NoError(t, err)
	assert.Contains(t, text, "This page has a JavaScript error in the onload event")
}

// ExitIntent checks the modal is present but hidden until the mouse leaves.
func ExitIntent(t require.TestingT, s *browser.Session) {
	modal, err := s.Find(browser.ByID("ouibounce-modal"))
	require.NoError(t, err)
	shown, err := modal.Displayed()
	require.NoError(t, err)
	assert.False(t, shown, "exit intent modal should start hidden")
	assert.NotNil(t, modal)
}
