package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/parley/pkg/config"
	"github.com/killallgit/parley/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Terminal chat client",
	Long: `parley is a terminal chat client. Each chat gets its own page; Tab
and Shift-Tab move between pages and PgUp/PgDn scroll through history.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunApplication(cmd.Context(), config.Get())
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .parley/settings.yaml)")

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "show the debug event page")
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(cfgFile); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(); err != nil {
		return err
	}
	logger.WithComponent("cmd").Debug("Config loaded", "file", viper.ConfigFileUsed(), "command", cmd.Name())
	return nil
}
