package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(presenceCmd)
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the user the configured credential resolves to",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newBackend()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext()
		defer cancel()

		user, err := currentUser(ctx, api)
		if err != nil {
			return err
		}
		if jsonFlag {
			return outputJSON(user)
		}
		fmt.Printf("User:  %s\n", user.Name)
		fmt.Printf("ID:    %d\n", user.ID)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status [user-id]",
	Short: "Show a user's online status (defaults to yourself)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newBackend()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext()
		defer cancel()

		var userID int64
		if len(args) == 1 {
			userID, err = parseID(args[0], "user-id")
			if err != nil {
				return err
			}
		} else {
			user, err := currentUser(ctx, api)
			if err != nil {
				return err
			}
			userID = user.ID
		}

		st, err := api.Status(ctx, userID)
		if err != nil {
			return err
		}
		if jsonFlag {
			return outputJSON(st)
		}
		state := "offline"
		if st.Online {
			state = "online"
		}
		fmt.Printf("User %d is %s (last seen %s)\n", st.UserID, state, st.LastSeen)
		return nil
	},
}

var presenceCmd = &cobra.Command{
	Use:   "presence <online|offline>",
	Short: "Report your own presence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var online bool
		switch args[0] {
		case "online":
			online = true
		case "offline":
			online = false
		default:
			return fmt.Errorf("argument must be online or offline, got %q", args[0])
		}

		api, err := newBackend()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext()
		defer cancel()

		user, err := currentUser(ctx, api)
		if err != nil {
			return err
		}
		st, _, err := api.UpdateStatus(ctx, user.ID, user.Name, online)
		if err != nil {
			return err
		}
		if jsonFlag {
			return outputJSON(st)
		}
		fmt.Printf("Reported %s for user %d\n", args[0], user.ID)
		return nil
	},
}
