package sync

import (
	"context"
	"slices"
	"strings"
	gosync "sync"
	"time"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/backend"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/bus"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/chat"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/identity"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/status"
	"go.uber.org/zap"
)

// Backend is the API surface the engine depends on.
type Backend interface {
	Chats(ctx context.Context, userID int64) ([]backend.Chat, error)
	ChatMessages(ctx context.Context, chatID, userID int64) ([]backend.Message, error)
	SearchChats(ctx context.Context, userID int64, query string) ([]backend.Chat, error)
	SendMessage(ctx context.Context, req backend.SendMessageRequest) (*backend.Message, error)
}

// Identity supplies the local user, if available. An unavailable identity
// suspends all engine activity.
type Identity interface {
	Current() (identity.User, bool)
}

// Presence fires best-effort online/offline reports.
type Presence interface {
	Report(ctx context.Context, online bool)
}

// State is a point-in-time snapshot of the engine's view of the
// conversation data. Messages are scoped to Selected.
type State struct {
	Chats       []chat.Summary
	Selected    *chat.Summary
	Messages    []chat.Message
	Loading     bool
	Error       string
	SearchQuery string
}

// Config holds the polling cadence.
type Config struct {
	ChatPollInterval    time.Duration
	MessagePollInterval time.Duration
}

// Engine keeps the local view of chats and messages consistent with the
// backend under polling. It exclusively owns the state; the presentation
// layer reads snapshots and invokes operations, and gets refresh signals
// over the bus ("sync.*" events).
//
// All operations are synchronous and safe for concurrent use. A failed
// refresh sets Error and leaves the previous data in place; the next poll
// is the retry.
type Engine struct {
	mu          gosync.Mutex
	chats       []chat.Summary
	selected    *chat.Summary
	messages    []chat.Message
	loading     bool
	errMsg      string
	searchQuery string

	api      Backend
	identity Identity
	presence Presence
	machine  *status.Machine
	bus      *bus.Bus
	logger   *zap.Logger

	chatInterval    time.Duration
	messageInterval time.Duration

	ctx           context.Context
	cancel        context.CancelFunc
	msgPollCancel context.CancelFunc
}

// NewEngine creates a sync engine. Zero intervals fall back to the
// 5s/3s defaults.
func NewEngine(api Backend, id Identity, pr Presence, m *status.Machine, b *bus.Bus, logger *zap.Logger, cfg Config) *Engine {
	if cfg.ChatPollInterval <= 0 {
		cfg.ChatPollInterval = 5 * time.Second
	}
	if cfg.MessagePollInterval <= 0 {
		cfg.MessagePollInterval = 3 * time.Second
	}
	return &Engine{
		api:             api,
		identity:        id,
		presence:        pr,
		machine:         m,
		bus:             b,
		logger:          logger,
		chatInterval:    cfg.ChatPollInterval,
		messageInterval: cfg.MessagePollInterval,
	}
}

// Start arms the engine. It waits for "identity.ready" (or an already
// resolved identity), then reports presence online, performs the initial
// chat-list fetch and begins chat-list polling for the engine's lifetime.
func (e *Engine) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.ctx = ctx
	e.cancel = cancel
	e.mu.Unlock()

	ch, unsub := e.bus.Subscribe("identity.", 8)

	go func() {
		defer unsub()
		if _, ok := e.identity.Current(); ok {
			e.activate(ctx)
			return
		}
		for {
			select {
			case <-ch:
				e.activate(ctx)
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop tears the engine down: both pollers stop, the view state becomes
// terminal and a final presence-offline report is fired. In-flight fetches
// are not canceled; their results resolve against the stale-selection
// checks and are discarded as needed.
func (e *Engine) Stop() {
	e.stopMessagePolling()

	e.mu.Lock()
	cancel := e.cancel
	e.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	_ = e.machine.Transition(status.Stopped)

	// The engine context is already gone; the offline report gets its own
	// short deadline.
	ctx, cancelReport := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancelReport()
	e.presence.Report(ctx, false)

	e.logger.Info("sync engine stopped")
}

func (e *Engine) activate(ctx context.Context) {
	_ = e.machine.Transition(status.ListView)
	e.presence.Report(ctx, true)
	e.LoadChats(ctx)

	go func() {
		ticker := time.NewTicker(e.chatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				e.LoadChats(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// LoadChats refreshes the chat list. No-op while identity is unavailable.
// On success the list is replaced wholesale; on failure the previous list
// stays and Error is set. Concurrent refreshes (poll vs. search) are
// last-write-wins: both represent the current desired view and staleness
// is bounded by the poll interval.
func (e *Engine) LoadChats(ctx context.Context) {
	user, ok := e.identity.Current()
	if !ok {
		return
	}

	e.beginLoad()
	defer e.endLoad()

	chats, err := e.api.Chats(ctx, user.ID)
	if err != nil {
		e.setError("failed to load chats: " + err.Error())
		return
	}

	e.mu.Lock()
	e.chats = chat.FromBackendChats(chats)
	e.mu.Unlock()
	e.publish("sync.chats_updated")
}

// LoadMessages refreshes the message list for chatID. No-op while identity
// is unavailable. The result is applied only if chatID is still the
// current selection when it arrives; a response for a superseded selection
// is discarded. On success the matching chat's unread count is zeroed
// locally (the fetch itself is treated as the read receipt).
func (e *Engine) LoadMessages(ctx context.Context, chatID int64) {
	user, ok := e.identity.Current()
	if !ok {
		return
	}

	msgs, err := e.api.ChatMessages(ctx, chatID, user.ID)
	if err != nil {
		e.setError("failed to load messages: " + err.Error())
		return
	}

	e.mu.Lock()
	if e.selected == nil || e.selected.ID != chatID {
		e.mu.Unlock()
		e.logger.Debug("discarding messages for superseded selection", zap.Int64("chat_id", chatID))
		return
	}
	e.messages = chat.FromBackendMessages(msgs)
	e.selected.UnreadCount = 0
	for i := range e.chats {
		if e.chats[i].ID == chatID {
			e.chats[i].UnreadCount = 0
		}
	}
	e.mu.Unlock()
	e.publish("sync.messages_updated")
}

// SelectChat transitions between the list view and a conversation.
// Selecting nil clears the selection and stops message polling. Selecting
// a chat loads its messages and (re)starts message polling; re-arming
// always clears the previous poller first, so at most one message poller
// exists.
func (e *Engine) SelectChat(ctx context.Context, c *chat.Summary) {
	if c == nil {
		e.stopMessagePolling()
		e.mu.Lock()
		e.selected = nil
		e.messages = nil
		e.mu.Unlock()
		_ = e.machine.Transition(status.ListView)
		e.publish("sync.selection_changed")
		return
	}

	sel := *c
	e.mu.Lock()
	e.selected = &sel
	e.loading = true
	e.errMsg = ""
	e.mu.Unlock()
	_ = e.machine.Transition(status.ConversationView)
	e.publish("sync.selection_changed")

	e.LoadMessages(ctx, sel.ID)

	e.mu.Lock()
	e.loading = false
	e.mu.Unlock()

	e.restartMessagePolling()
}

// SendMessage posts text to the selected chat. No-op without a selection,
// without identity, or for blank text. There is no optimistic echo: the
// message list grows only with the server-returned record, and only if the
// chat is still selected when the response arrives. The chat summary's
// preview fields are updated either way.
func (e *Engine) SendMessage(ctx context.Context, text string) {
	user, ok := e.identity.Current()
	if !ok {
		return
	}
	if strings.TrimSpace(text) == "" {
		return
	}

	e.mu.Lock()
	if e.selected == nil {
		e.mu.Unlock()
		return
	}
	chatID := e.selected.ID
	e.errMsg = ""
	e.mu.Unlock()

	msg, err := e.api.SendMessage(ctx, backend.SendMessageRequest{
		ChatID:   chatID,
		Text:     text,
		SenderID: user.ID,
	})
	if err != nil {
		e.setError("failed to send message: " + err.Error())
		return
	}

	m := chat.FromBackendMessage(*msg)
	e.mu.Lock()
	if e.selected != nil && e.selected.ID == chatID {
		e.messages = append(e.messages, m)
	}
	for i := range e.chats {
		if e.chats[i].ID == chatID {
			e.chats[i].LastMessageText = text
			e.chats[i].LastMessageTimestamp = m.Timestamp
			e.chats[i].UnreadCount = 0
		}
	}
	e.mu.Unlock()
	e.publish("sync.messages_updated")
	e.publish("sync.chats_updated")
}

// SearchChats filters the chat list server-side. A blank query clears the
// filter by reloading the full list. Selection and messages are untouched.
func (e *Engine) SearchChats(ctx context.Context, query string) {
	user, ok := e.identity.Current()
	if !ok {
		return
	}

	e.mu.Lock()
	e.searchQuery = query
	e.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		e.LoadChats(ctx)
		return
	}

	e.beginLoad()
	defer e.endLoad()

	chats, err := e.api.SearchChats(ctx, user.ID, query)
	if err != nil {
		e.setError("search failed: " + err.Error())
		return
	}

	e.mu.Lock()
	e.chats = chat.FromBackendChats(chats)
	e.mu.Unlock()
	e.publish("sync.chats_updated")
}

// ClearError dismisses the current error banner.
func (e *Engine) ClearError() {
	e.mu.Lock()
	e.errMsg = ""
	e.mu.Unlock()
	e.publish("sync.error_cleared")
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := State{
		Chats:       slices.Clone(e.chats),
		Messages:    slices.Clone(e.messages),
		Loading:     e.loading,
		Error:       e.errMsg,
		SearchQuery: e.searchQuery,
	}
	if e.selected != nil {
		sel := *e.selected
		st.Selected = &sel
	}
	return st
}

func (e *Engine) restartMessagePolling() {
	e.mu.Lock()
	if e.msgPollCancel != nil {
		e.msgPollCancel()
	}
	parent := e.ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	e.msgPollCancel = cancel
	e.mu.Unlock()

	go func() {
		ticker := time.NewTicker(e.messageInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				// Always target the latest selection; a captured id would
				// poll the wrong chat after a fast selection change.
				e.mu.Lock()
				var chatID int64
				if e.selected != nil {
					chatID = e.selected.ID
				}
				e.mu.Unlock()
				if chatID != 0 {
					e.LoadMessages(ctx, chatID)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (e *Engine) stopMessagePolling() {
	e.mu.Lock()
	if e.msgPollCancel != nil {
		e.msgPollCancel()
		e.msgPollCancel = nil
	}
	e.mu.Unlock()
}

func (e *Engine) beginLoad() {
	e.mu.Lock()
	e.loading = true
	e.errMsg = ""
	e.mu.Unlock()
}

func (e *Engine) endLoad() {
	e.mu.Lock()
	e.loading = false
	e.mu.Unlock()
}

func (e *Engine) setError(msg string) {
	e.mu.Lock()
	e.errMsg = msg
	e.mu.Unlock()
	e.logger.Warn("sync error", zap.String("error", msg))
	e.publish("sync.error")
}

func (e *Engine) publish(kind string) {
	e.bus.Publish(bus.Event{Kind: kind, Timestamp: time.Now()})
}
