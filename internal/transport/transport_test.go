package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testClient(url string) *Client {
	return New(url, "query_id=test", 2*time.Second, zap.NewNop())
}

func TestDoAttachesCredential(t *testing.T) {
	var gotInitData, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotInitData = r.Header.Get("initData")
		gotRequestID = r.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.Do(context.Background(), http.MethodGet, "chats/1", nil); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if gotInitData != "query_id=test" {
		t.Errorf("initData header = %q, want query_id=test", gotInitData)
	}
	if gotRequestID == "" {
		t.Error("X-Request-Id header missing")
	}
}

func TestDoEncodesBody(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	body := map[string]any{"chat_id": 7, "text": "hi"}
	if _, err := c.Do(context.Background(), http.MethodPost, "messages/send", body); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got["text"] != "hi" {
		t.Errorf("body text = %v, want hi", got["text"])
	}
}

func TestDoNon2xxReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success": false, "error": "chat not found"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Do(context.Background(), http.MethodGet, "chats/1/messages/2", nil)
	if err == nil {
		t.Fatal("Do() expected error for 404")
	}

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if terr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", terr.StatusCode)
	}
	if terr.Message != "chat not found" {
		t.Errorf("Message = %q, want backend error string", terr.Message)
	}
}

func TestDoNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Closed server: connection refused.

	c := testClient(srv.URL)
	_, err := c.Do(context.Background(), http.MethodGet, "chats/1", nil)

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if terr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for network failure", terr.StatusCode)
	}
}

func TestDoSingleAttempt(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, _ = c.Do(context.Background(), http.MethodGet, "chats/1", nil)
	if calls != 1 {
		t.Errorf("server saw %d calls, want 1 (no automatic retry)", calls)
	}
}
