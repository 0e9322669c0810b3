package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Default polling cadence. The backend has no push channel, so the client
// refreshes the chat list and the open conversation on fixed intervals.
const (
	DefaultChatPollIntervalMS    = 5000
	DefaultMessagePollIntervalMS = 3000
	DefaultRequestTimeoutMS      = 10000
)

// Global represents the global ~/.kitwit/config.toml.
type Global struct {
	DefaultProfile string `toml:"default_profile"`
}

// Profile represents a per-profile profile.toml.
type Profile struct {
	// APIBaseURL is the backend root, e.g. "https://kitwit.example.com/api".
	APIBaseURL string `toml:"api_base_url"`

	// InitData is the opaque identity credential attached to every request.
	InitData string `toml:"init_data"`

	ChatPollIntervalMS    int `toml:"chat_poll_interval_ms"`
	MessagePollIntervalMS int `toml:"message_poll_interval_ms"`
	RequestTimeoutMS      int `toml:"request_timeout_ms"`
}

// ChatPollInterval returns the chat-list polling interval as a duration.
func (p *Profile) ChatPollInterval() time.Duration {
	return time.Duration(p.ChatPollIntervalMS) * time.Millisecond
}

// MessagePollInterval returns the message polling interval as a duration.
func (p *Profile) MessagePollInterval() time.Duration {
	return time.Duration(p.MessagePollIntervalMS) * time.Millisecond
}

// RequestTimeout returns the per-request HTTP timeout as a duration.
func (p *Profile) RequestTimeout() time.Duration {
	return time.Duration(p.RequestTimeoutMS) * time.Millisecond
}

// LoadGlobal reads the global config from the given path.
func LoadGlobal(path string) (*Global, error) {
	var cfg Global
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveGlobal writes the global config, creating parent dirs as needed.
func SaveGlobal(path string, cfg *Global) error {
	return save(path, cfg)
}

// LoadProfile reads a profile config and fills in defaults for any
// interval left unset or non-positive.
func LoadProfile(path string) (*Profile, error) {
	var cfg Profile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// SaveProfile writes a profile config, creating parent dirs as needed.
func SaveProfile(path string, cfg *Profile) error {
	return save(path, cfg)
}

func applyDefaults(cfg *Profile) {
	if cfg.ChatPollIntervalMS <= 0 {
		cfg.ChatPollIntervalMS = DefaultChatPollIntervalMS
	}
	if cfg.MessagePollIntervalMS <= 0 {
		cfg.MessagePollIntervalMS = DefaultMessagePollIntervalMS
	}
	if cfg.RequestTimeoutMS <= 0 {
		cfg.RequestTimeoutMS = DefaultRequestTimeoutMS
	}
}

func save(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(v)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
