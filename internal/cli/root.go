package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "gatectl",
		Short: "CLI tool for the circuit master gateway",
		Long: `gatectl is a CLI tool for operating the circuit master gateway.

It provisions invite codes, inspects ledger entries, checks gateway health,
and can act as a websocket client to exercise the action protocol.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Gateway base URL (env: GATECTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for direct store access (env: REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Identity token for websocket calls (env: GATECTL_TOKEN)")

	// Add subcommands
	rootCmd.AddCommand(newInviteCmd())
	rootCmd.AddCommand(newLedgerCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newCallCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
