package views

import (
	"fmt"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/chat"
	"github.com/rivo/tview"
)

// MessageView displays messages for a single chat.
type MessageView struct {
	*tview.TextView
	chatName string
}

// NewMessageView creates a new message view.
func NewMessageView() *MessageView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true).SetTitle(" Messages ")

	return &MessageView{TextView: tv}
}

// SetChatName updates the title with the chat name.
func (mv *MessageView) SetChatName(name string) {
	mv.chatName = name
	mv.SetTitle(fmt.Sprintf(" %s ", name))
}

// Update refreshes the message view with new messages.
func (mv *MessageView) Update(msgs []chat.Message) {
	mv.Clear()

	for _, m := range msgs {
		sender := mv.chatName
		if m.IsOwn {
			sender = "You"
		}
		line := fmt.Sprintf("[::b]%s[-:-:-] [::d]%s[-:-:-]\n%s\n\n",
			tview.Escape(sender), m.Timestamp, tview.Escape(sanitizeForTerminal(m.Text)))
		_, _ = fmt.Fprint(mv, line)
	}

	mv.ScrollToEnd()
}
