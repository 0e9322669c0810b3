package chat

// Summary is one conversation from the current user's perspective,
// in display form.
type Summary struct {
	ID                   int64
	DisplayName          string
	LastMessageText      string
	LastMessageTimestamp string
	UnreadCount          int
	IsOnline             bool
	PartnerID            int64
	ListingID            int64
}

// Message is one chat message in display form. Timestamp is the
// server-formatted display string, not a parseable time.
type Message struct {
	ID        int64
	ChatID    int64
	Text      string
	Timestamp string
	IsOwn     bool
	Read      bool
}
