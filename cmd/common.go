package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tasnim.dev/orgctl/internal/logger"
)

func newLogger(cmd *cobra.Command) zerolog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	return logger.Setup(debug)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
