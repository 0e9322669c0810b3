package main

import (
	"fmt"
	"strings"

	"github.com/innocencedq/hackathon-mpit-kitwit/internal/backend"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/chat"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(messagesCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(markReadCmd)
}

var messagesCmd = &cobra.Command{
	Use:   "messages <chat-id>",
	Short: "Show the messages of a chat",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chatID, err := parseID(args[0], "chat-id")
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
		raw, err := api.ChatMessages(ctx, chatID, user.ID)
		if err != nil {
			return err
		}
		msgs := chat.FromBackendMessages(raw)

		if jsonFlag {
			return outputJSON(msgs)
		}
		for _, m := range msgs {
			who := "them"
			if m.IsOwn {
				who = "you"
			}
			fmt.Printf("[%s] %-4s %s\n", m.Timestamp, who, m.Text)
		}
		return nil
	},
}

var sendCmd = &cobra.Command{
	Use:   "send <chat-id> <text>...",
	Short: "Send a message to a chat",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chatID, err := parseID(args[0], "chat-id")
		if err != nil {
			return err
		}
		text := strings.Join(args[1:], " ")
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("message text is empty")
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
		msg, err := api.SendMessage(ctx, backend.SendMessageRequest{
			ChatID:   chatID,
			Text:     text,
			SenderID: user.ID,
		})
		if err != nil {
			return err
		}

		if jsonFlag {
			return outputJSON(chat.FromBackendMessage(*msg))
		}
		fmt.Printf("Sent message %d to chat %d\n", msg.ID, chatID)
		return nil
	},
}

var markReadCmd = &cobra.Command{
	Use:   "mark-read <chat-id>",
	Short: "Mark a chat's incoming messages as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chatID, err := parseID(args[0], "chat-id")
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
		if err := api.MarkRead(ctx, chatID, user.ID); err != nil {
			return err
		}
		fmt.Printf("Marked chat %d as read\n", chatID)
		return nil
	},
}
