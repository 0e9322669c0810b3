package main

import (
	"fmt"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/backend"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/chat"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chatsCmd)
	rootCmd.AddCommand(searchCmd)
	createChatCmd.Flags().StringVar(&partnerNameFlag, "partner-name", "", "display name for the other participant")
	rootCmd.AddCommand(createChatCmd)
}

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "List chats",
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
		raw, err := api.Chats(ctx, user.ID)
		if err != nil {
			return err
		}
		return printChats(chat.FromBackendChats(raw))
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search chats by partner name",
	Args:  cobra.ExactArgs(1),
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
		raw, err := api.SearchChats(ctx, user.ID, args[0])
		if err != nil {
			return err
		}
		return printChats(chat.FromBackendChats(raw))
	},
}

var partnerNameFlag string

var createChatCmd = &cobra.Command{
	Use:   "create-chat <partner-id> <listing-id>",
	Short: "Open (or reuse) a chat with a seller about a listing",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		partnerID, err := parseID(args[0], "partner-id")
		if err != nil {
			return err
		}
		listingID, err := parseID(args[1], "listing-id")
		if err != nil {
			return err
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
		created, isNew, err := api.CreateChat(ctx, backend.CreateChatRequest{
			AdvertID:  listingID,
			User1ID:   user.ID,
			User1Name: user.Name,
			User2ID:   partnerID,
			User2Name: partnerNameFlag,
		})
		if err != nil {
			return err
		}

		c := chat.FromBackendChat(*created)
		if jsonFlag {
			return outputJSON(map[string]any{"chat": c, "is_new": isNew})
		}
		verb := "Reusing existing"
		if isNew {
			verb = "Created"
		}
		fmt.Printf("%s chat %d with %s\n", verb, c.ID, c.DisplayName)
		return nil
	},
}

func printChats(chats []chat.Summary) error {
	if jsonFlag {
		return outputJSON(chats)
	}
	if len(chats) == 0 {
		fmt.Println("No chats found.")
		return nil
	}
	for _, c := range chats {
		unread := ""
		if c.UnreadCount > 0 {
			unread = fmt.Sprintf(" [%d unread]", c.UnreadCount)
		}
		online := ""
		if c.IsOnline {
			online = " (online)"
		}
		fmt.Printf("%-6d %-25s %s%s%s\n", c.ID, c.DisplayName+online, c.LastMessageText, " "+c.LastMessageTimestamp, unread)
	}
	return nil
}

func parseID(s, name string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(s, "%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return id, nil
}
