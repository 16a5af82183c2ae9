package main

import "github.com/spf13/cobra"

// NewRootCmd creates the root command. Without a subcommand it serves.
func NewRootCmd() *cobra.Command {
	serve := NewServeCmd()

	cmd := &cobra.Command{
		Use:   "tokenauth",
		Short: "Username/password authentication service",
		Long: `tokenauth registers users, issues short-lived access tokens and
refresh tokens, and serves the authenticated account endpoint.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
