package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tasnim.dev/orgctl/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orgctl",
		Short: "AWS Organization automation tools",
	}
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(cmd.NewCredsCmd())
	rootCmd.AddCommand(cmd.NewCreateOUCmd())
	rootCmd.AddCommand(cmd.NewCreateAccountCmd())
	rootCmd.AddCommand(cmd.NewBootstrapCmd())
	rootCmd.AddCommand(cmd.NewServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
