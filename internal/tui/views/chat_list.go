package views

import (
	"fmt"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/chat"
	"github.com/rivo/tview"
)

// ChatList is the main chat list view (K9s-inspired table).
type ChatList struct {
	*tview.Table
	chats      []chat.Summary
	selectedFn func() (int, int)
}

// NewChatList creates a new chat list table.
func NewChatList() *ChatList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true).SetTitle(" Chats ")

	cl := &ChatList{Table: table}
	cl.selectedFn = table.GetSelection
	return cl
}

// Update refreshes the chat list with new data.
func (cl *ChatList) Update(chats []chat.Summary) {
	cl.chats = chats
	cl.Clear()

	// Header row.
	cl.SetCell(0, 0, tview.NewTableCell(" Name").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))
	cl.SetCell(0, 1, tview.NewTableCell(" Last Message").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))
	cl.SetCell(0, 2, tview.NewTableCell(" Time").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))

	for i, c := range chats {
		row := i + 1
		name := c.DisplayName
		if name == "" {
			name = fmt.Sprintf("chat %d", c.ID)
		}
		if c.IsOnline {
			name = "● " + name
		}
		if c.UnreadCount > 0 {
			name = fmt.Sprintf("%s (%d)", name, c.UnreadCount)
		}

		cl.SetCell(row, 0, tview.NewTableCell(" "+tview.Escape(name)).SetMaxWidth(30).SetExpansion(1))
		cl.SetCell(row, 1, tview.NewTableCell(" "+tview.Escape(sanitizeForTerminal(c.LastMessageText))).SetMaxWidth(40).SetExpansion(2))
		cl.SetCell(row, 2, tview.NewTableCell(" "+c.LastMessageTimestamp).SetMaxWidth(12))
	}
}

// Selected returns the currently highlighted chat, or nil when the cursor
// is not on a chat row.
func (cl *ChatList) Selected() *chat.Summary {
	row, _ := cl.selectedFn()
	idx := row - 1 // account for header
	if idx >= 0 && idx < len(cl.chats) {
		c := cl.chats[idx]
		return &c
	}
	return nil
}
