package cmd

import (
	"fmt"
	"strings"

	"github.com/killallgit/parley/pkg/backend"
	"github.com/killallgit/parley/pkg/config"
	"github.com/spf13/cobra"
)

var sendFrom int64

var sendCmd = &cobra.Command{
	Use:   "send <chat id> <text...>",
	Short: "Send a message without starting the TUI",
	Long: `Send a message to a chat. With --from the message is stored as if it
came from another sender, which running TUIs report as incoming.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chatID, err := parseChatID(args[0])
		if err != nil {
			return err
		}

		cfg := config.Get()
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		text := strings.Join(args[1:], " ")
		var id backend.MessageID
		if sendFrom != 0 && sendFrom != cfg.Store.SelfID {
			id, err = st.InsertIncoming(cmd.Context(), chatID, sendFrom, text)
		} else {
			id, err = st.SendTextMessage(cmd.Context(), chatID, text)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sent message %d to chat %d\n", id, chatID)
		return nil
	},
}

func init() {
	sendCmd.Flags().Int64Var(&sendFrom, "from", 0, "sender id to store the message under")
}
