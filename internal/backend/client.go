package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/transport"
	"go.uber.org/zap"
)

// Client is the typed API surface over the transport and the envelope
// normalizer. Every method performs exactly one request.
type Client struct {
	tr     *transport.Client
	logger *zap.Logger
}

// NewClient creates a backend client on top of the given transport.
func NewClient(tr *transport.Client, logger *zap.Logger) *Client {
	return &Client{tr: tr, logger: logger}
}

// Chats lists the user's conversations.
func (c *Client) Chats(ctx context.Context, userID int64) ([]Chat, error) {
	res, err := c.call(ctx, http.MethodGet, fmt.Sprintf("chats/%d", userID), nil, KindChats)
	if err != nil {
		return nil, err
	}
	var chats []Chat
	if err := json.Unmarshal(res.Data, &chats); err != nil {
		return nil, fmt.Errorf("decode chats: %w", err)
	}
	return chats, nil
}

// ChatMessages lists messages in a chat, scoped by the requesting user.
func (c *Client) ChatMessages(ctx context.Context, chatID, userID int64) ([]Message, error) {
	res, err := c.call(ctx, http.MethodGet, fmt.Sprintf("chats/%d/messages/%d", chatID, userID), nil, KindMessages)
	if err != nil {
		return nil, err
	}
	var msgs []Message
	if err := json.Unmarshal(res.Data, &msgs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return msgs, nil
}

// SearchChats searches the user's conversations by partner name.
func (c *Client) SearchChats(ctx context.Context, userID int64, query string) ([]Chat, error) {
	endpoint := fmt.Sprintf("chats/search/%d?query=%s", userID, url.QueryEscape(query))
	res, err := c.call(ctx, http.MethodGet, endpoint, nil, KindChats)
	if err != nil {
		return nil, err
	}
	var chats []Chat
	if err := json.Unmarshal(res.Data, &chats); err != nil {
		return nil, fmt.Errorf("decode chats: %w", err)
	}
	return chats, nil
}

// SendMessage posts a message and returns the server-assigned record.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	res, err := c.call(ctx, http.MethodPost, "messages/send", req, KindMessage)
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := json.Unmarshal(res.Data, &msg); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	return &msg, nil
}

// CreateChat creates (or fetches an existing) chat for a listing. The bool
// reports whether the chat was newly created.
func (c *Client) CreateChat(ctx context.Context, req CreateChatRequest) (*Chat, bool, error) {
	res, err := c.call(ctx, http.MethodPost, "chats/create", req, KindChat)
	if err != nil {
		return nil, false, err
	}
	var chat Chat
	if err := json.Unmarshal(res.Data, &chat); err != nil {
		return nil, false, fmt.Errorf("decode chat: %w", err)
	}
	return &chat, res.IsNew, nil
}

// MarkRead marks a chat's messages read for the user. The success payload
// is an informational string, so only the envelope outcome matters.
func (c *Client) MarkRead(ctx context.Context, chatID, userID int64) error {
	raw, err := c.tr.Do(ctx, http.MethodPost, "messages/mark-read", MarkReadRequest{ChatID: chatID, UserID: userID})
	if err != nil {
		return err
	}
	_, err = Normalize(raw)
	return err
}

// UpdateStatus reports the user's online/offline presence. The bool reports
// whether a presence record was newly created.
func (c *Client) UpdateStatus(ctx context.Context, userID int64, userName string, online bool) (*UserStatus, bool, error) {
	req := UpdateStatusRequest{UserID: userID, UserName: userName, Online: online}
	res, err := c.call(ctx, http.MethodPost, "user-status/update", req, KindStatus)
	if err != nil {
		return nil, false, err
	}
	var status UserStatus
	if err := json.Unmarshal(res.Data, &status); err != nil {
		return nil, false, fmt.Errorf("decode status: %w", err)
	}
	return &status, res.IsNew, nil
}

// Status fetches a user's presence record.
func (c *Client) Status(ctx context.Context, userID int64) (*UserStatus, error) {
	res, err := c.call(ctx, http.MethodGet, fmt.Sprintf("user-status/%d", userID), nil, KindStatus)
	if err != nil {
		return nil, err
	}
	var status UserStatus
	if err := json.Unmarshal(res.Data, &status); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	return &status, nil
}

// CurrentUser fetches the authenticated user's profile. users/get predates
// the success envelope and returns a bare {"user": ...} object.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	raw, err := c.tr.Do(ctx, http.MethodGet, "users/get", nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if payload.User == nil {
		return nil, fmt.Errorf("users/get: missing user payload")
	}
	return payload.User, nil
}

// call performs a request and normalizes the envelope, enforcing the
// payload kind the endpoint is expected to return. A recognized-but-wrong
// kind is an error. KindRaw survives Normalize so callers that want the
// raw payload can have it, but the typed client has nothing to decode it
// into: it logs the schema mismatch and rejects the response.
func (c *Client) call(ctx context.Context, method, endpoint string, body any, want Kind) (*Result, error) {
	raw, err := c.tr.Do(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	res, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	if res.Kind == KindRaw {
		c.logger.Warn("schema mismatch: unrecognized success payload",
			zap.String("endpoint", endpoint),
			zap.String("want", want.String()))
		return nil, fmt.Errorf("%s: unrecognized success payload", endpoint)
	}
	if res.Kind != want {
		return nil, fmt.Errorf("%s: payload kind %s, want %s", endpoint, res.Kind, want)
	}
	return res, nil
}
