package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/backend"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/config"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/identity"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/logging"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/profile"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/transport"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	profileFlag string
	jsonFlag    bool
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "kitwitctl",
	Short: "Kitwit marketplace chat CLI",
	Long:  "Command-line interface for the Kitwit chat backend.\nInspect chats, send messages, and manage presence without the TUI.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "profile name (overrides config default)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "log requests to the profile log and stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newBackend resolves the profile and builds a backend client from its
// config. CLI invocations are one-shot and print their own output, so
// logging is off unless --verbose asks for the file+stderr tee.
func newBackend() (*backend.Client, error) {
	name := profile.Resolve(profileFlag)
	if err := profile.ValidateName(name); err != nil {
		return nil, err
	}

	cfg, err := config.LoadProfile(profile.ConfigPath(name))
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", name, err)
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("profile %q has no api_base_url", name)
	}

	logger := zap.NewNop()
	if verboseFlag {
		logger, err = logging.New(profile.LogPath(name), name)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
	}

	tr := transport.New(cfg.APIBaseURL, cfg.InitData, cfg.RequestTimeout(), logger)
	return backend.NewClient(tr, logger), nil
}

// currentUser fetches the identity the credential resolves to.
func currentUser(ctx context.Context, api *backend.Client) (identity.User, error) {
	u, err := api.CurrentUser(ctx)
	if err != nil {
		return identity.User{}, fmt.Errorf("resolve identity: %w", err)
	}
	return identity.User{ID: u.ID, Name: u.Name}, nil
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
