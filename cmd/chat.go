package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/killallgit/parley/pkg/backend"
	"github.com/killallgit/parley/pkg/config"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Manage chats",
}

var chatCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a chat",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(config.Get())
		if err != nil {
			return err
		}
		defer st.Close()

		name := strings.Join(args, " ")
		id, err := st.CreateChat(cmd.Context(), name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created chat %d #%s\n", id, strings.TrimSpace(name))
		return nil
	},
}

var chatListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(config.Get())
		if err != nil {
			return err
		}
		defer st.Close()

		chats, err := st.Chats()
		if err != nil {
			return err
		}
		for _, c := range chats {
			n, err := st.ChatMessages(c.ID, 0, 0)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t#%s\t%d messages\n", c.ID, c.Name, len(n))
		}
		return nil
	},
}

var chatRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a chat",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseChatID(args[0])
		if err != nil {
			return err
		}

		st, err := openStore(config.Get())
		if err != nil {
			return err
		}
		defer st.Close()

		name := strings.Join(args[1:], " ")
		if err := st.RenameChat(cmd.Context(), id, name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "renamed chat %d to #%s\n", id, name)
		return nil
	},
}

func init() {
	chatCmd.AddCommand(chatCreateCmd)
	chatCmd.AddCommand(chatListCmd)
	chatCmd.AddCommand(chatRenameCmd)
}

func parseChatID(s string) (backend.ChatID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid chat id %q", s)
	}
	return backend.ChatID(id), nil
}
