package chat

import (
	"testing"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/backend"
)

func TestFromBackendChat(t *testing.T) {
	in := backend.Chat{
		ID:              3,
		Name:            "Alice",
		LastMessage:     "see you",
		LastMessageTime: "18:05",
		UnreadCount:     4,
		Online:          true,
		PartnerID:       10,
		AdvertID:        100,
	}

	got := FromBackendChat(in)

	want := Summary{
		ID:                   3,
		DisplayName:          "Alice",
		LastMessageText:      "see you",
		LastMessageTimestamp: "18:05",
		UnreadCount:          4,
		IsOnline:             true,
		PartnerID:            10,
		ListingID:            100,
	}
	if got != want {
		t.Errorf("FromBackendChat() = %+v, want %+v", got, want)
	}
}

func TestFromBackendMessage(t *testing.T) {
	in := backend.Message{ID: 9, ChatID: 3, Text: "hi", Timestamp: "18:06", IsOwn: true, Read: false}

	got := FromBackendMessage(in)

	want := Message{ID: 9, ChatID: 3, Text: "hi", Timestamp: "18:06", IsOwn: true, Read: false}
	if got != want {
		t.Errorf("FromBackendMessage() = %+v, want %+v", got, want)
	}
}

func TestFromBackendChatsEmpty(t *testing.T) {
	got := FromBackendChats(nil)
	if len(got) != 0 {
		t.Errorf("FromBackendChats(nil) = %v, want empty", got)
	}
}
