package backend

import (
	"encoding/json"
	"fmt"
)

// Kind identifies which payload key a success envelope carried.
type Kind int

const (
	KindChats Kind = iota
	KindMessages
	KindMessage
	KindChat
	KindStatus
	// KindRaw is the forward-compatibility escape hatch: success with no
	// recognized payload key. Callers log it as a schema mismatch.
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindChats:
		return "chats"
	case KindMessages:
		return "messages"
	case KindMessage:
		return "message"
	case KindChat:
		return "chat"
	case KindStatus:
		return "status"
	default:
		return "raw"
	}
}

// DomainError is a backend-reported failure (success=false).
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

const genericErrorMessage = "request failed"

// Result is the normalized envelope: the discriminant plus the raw bytes
// of the winning payload key. Typed decoding happens at the call site,
// which knows which shape it expects.
type Result struct {
	Kind  Kind
	Data  json.RawMessage
	IsNew bool
}

// Normalize maps the backend's variant response envelope into a Result.
// Payload keys are tested in a fixed priority order: chats, messages,
// message, chat, status — the first one present wins. success=false maps
// to DomainError with the backend's error string (or a generic fallback).
func Normalize(raw json.RawMessage) (*Result, error) {
	var env struct {
		Success  bool            `json:"success"`
		Error    string          `json:"error"`
		Chats    json.RawMessage `json:"chats"`
		Messages json.RawMessage `json:"messages"`
		Message  json.RawMessage `json:"message"`
		Chat     json.RawMessage `json:"chat"`
		Status   json.RawMessage `json:"status"`
		IsNew    bool            `json:"is_new"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = genericErrorMessage
		}
		return nil, &DomainError{Message: msg}
	}

	switch {
	case env.Chats != nil:
		return &Result{Kind: KindChats, Data: env.Chats}, nil
	case env.Messages != nil:
		return &Result{Kind: KindMessages, Data: env.Messages}, nil
	case env.Message != nil:
		return &Result{Kind: KindMessage, Data: env.Message, IsNew: env.IsNew}, nil
	case env.Chat != nil:
		return &Result{Kind: KindChat, Data: env.Chat, IsNew: env.IsNew}, nil
	case env.Status != nil:
		return &Result{Kind: KindStatus, Data: env.Status, IsNew: env.IsNew}, nil
	}

	return &Result{Kind: KindRaw, Data: raw}, nil
}
