package views

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Composer is the input line at the bottom of a conversation. It trims
// the text and swallows blank submissions, mirroring the engine's
// blank-message no-op, so Enter on an empty line never fires a request.
type Composer struct {
	*tview.InputField
	onSend func(text string)
}

// NewComposer creates a new message composer.
func NewComposer() *Composer {
	input := tview.NewInputField().
		SetLabel(" Message: ").
		SetPlaceholder("write a message, Enter sends").
		SetFieldWidth(0)

	c := &Composer{InputField: input}

	input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		text := strings.TrimSpace(c.GetText())
		if text == "" {
			c.SetText("")
			return
		}
		if c.onSend != nil {
			c.onSend(text)
		}
		c.SetText("")
	})

	return c
}

// SetOnSend sets the callback invoked with the trimmed message text.
func (c *Composer) SetOnSend(fn func(text string)) {
	c.onSend = fn
}
