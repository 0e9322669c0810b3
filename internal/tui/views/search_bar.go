package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// SearchBar filters the chat list by a server-side name query. Submitting
// an empty query restores the full list.
type SearchBar struct {
	*tview.InputField
	onQuery func(query string)
}

// NewSearchBar creates a new search bar.
func NewSearchBar() *SearchBar {
	input := tview.NewInputField().
		SetLabel(" Search: ").
		SetFieldWidth(0)

	sb := &SearchBar{InputField: input}

	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && sb.onQuery != nil {
			sb.onQuery(sb.GetText())
		}
	})

	return sb
}

// SetOnQuery sets the callback when a search query is submitted.
func (sb *SearchBar) SetOnQuery(fn func(query string)) {
	sb.onQuery = fn
}
