package chat

import "github.com/innocencedq/hackathon-mpit-kitwit/internal/backend"

// FromBackendChat maps a backend chat record to the display model.
// Pure field renaming; inputs are well-typed post-normalization.
func FromBackendChat(c backend.Chat) Summary {
	return Summary{
		ID:                   c.ID,
		DisplayName:          c.Name,
		LastMessageText:      c.LastMessage,
		LastMessageTimestamp: c.LastMessageTime,
		UnreadCount:          c.UnreadCount,
		IsOnline:             c.Online,
		PartnerID:            c.PartnerID,
		ListingID:            c.AdvertID,
	}
}

// FromBackendChats maps a backend chat list wholesale.
func FromBackendChats(chats []backend.Chat) []Summary {
	out := make([]Summary, len(chats))
	for i, c := range chats {
		out[i] = FromBackendChat(c)
	}
	return out
}

// FromBackendMessage maps a backend message record to the display model.
func FromBackendMessage(m backend.Message) Message {
	return Message{
		ID:        m.ID,
		ChatID:    m.ChatID,
		Text:      m.Text,
		Timestamp: m.Timestamp,
		IsOwn:     m.IsOwn,
		Read:      m.Read,
	}
}

// FromBackendMessages maps a backend message list wholesale.
func FromBackendMessages(msgs []backend.Message) []Message {
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = FromBackendMessage(m)
	}
	return out
}
