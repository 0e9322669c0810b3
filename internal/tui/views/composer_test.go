package views

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func pressEnter(c *Composer) {
	c.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(tview.Primitive) {})
}

func TestComposerTrimsBeforeSend(t *testing.T) {
	c := NewComposer()
	var sent []string
	c.SetOnSend(func(text string) { sent = append(sent, text) })

	c.SetText("  need this by friday?  ")
	pressEnter(c)

	if len(sent) != 1 || sent[0] != "need this by friday?" {
		t.Errorf("sent = %q, want the trimmed text", sent)
	}
	if c.GetText() != "" {
		t.Errorf("field = %q, want cleared after send", c.GetText())
	}
}

func TestComposerSwallowsBlankSubmission(t *testing.T) {
	c := NewComposer()
	var sent []string
	c.SetOnSend(func(text string) { sent = append(sent, text) })

	c.SetText("   ")
	pressEnter(c)

	if len(sent) != 0 {
		t.Errorf("sent = %q, want nothing for whitespace-only input", sent)
	}
	if c.GetText() != "" {
		t.Errorf("field = %q, want cleared", c.GetText())
	}
}
