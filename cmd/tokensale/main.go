package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jubbslineu/tokensale/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tokensale",
		Short: "Token sale backend",
		Long:  `Token sale backend with phased pricing, referral rewards and crypto and fiat payment rails.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
