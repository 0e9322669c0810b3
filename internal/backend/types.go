package backend

// Chat is a conversation as the backend serializes it, from the
// requesting user's perspective (name/partner fields already resolved
// to the other participant).
type Chat struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	LastMessage     string `json:"last_message"`
	LastMessageTime string `json:"last_message_time"`
	UnreadCount     int    `json:"unread_count"`
	Online          bool   `json:"online"`
	PartnerID       int64  `json:"partner_id"`
	AdvertID        int64  `json:"advert_id"`
}

// Message is a chat message as the backend serializes it.
type Message struct {
	ID        int64  `json:"id"`
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	IsOwn     bool   `json:"is_own"`
	Read      bool   `json:"read"`
}

// UserStatus is a presence record.
type UserStatus struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Online   bool   `json:"online"`
	LastSeen string `json:"last_seen"`
}

// User is the authenticated marketplace user returned by users/get.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	UserPic  string `json:"user_pic"`
}

// SendMessageRequest is the messages/send body.
type SendMessageRequest struct {
	ChatID   int64  `json:"chat_id"`
	Text     string `json:"text"`
	SenderID int64  `json:"sender_id"`
}

// CreateChatRequest is the chats/create body. The backend returns the
// existing chat when one already exists for the (advert, user pair).
type CreateChatRequest struct {
	AdvertID  int64  `json:"advert_id"`
	User1ID   int64  `json:"user1_id"`
	User2ID   int64  `json:"user2_id"`
	User1Name string `json:"user1_name"`
	User2Name string `json:"user2_name"`
}

// MarkReadRequest is the messages/mark-read body.
type MarkReadRequest struct {
	ChatID int64 `json:"chat_id"`
	UserID int64 `json:"user_id"`
}

// UpdateStatusRequest is the user-status/update body.
type UpdateStatusRequest struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Online   bool   `json:"online"`
}
