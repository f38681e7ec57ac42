package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	awsclient "tasnim.dev/orgctl/internal/aws"
	"tasnim.dev/orgctl/internal/config"
	"tasnim.dev/orgctl/internal/provision"
	"tasnim.dev/orgctl/internal/server"
)

func NewServeCmd() *cobra.Command {
	var profile, region, listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the credential provisioner over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			profile, region = cfg.Merge(profile, region)
			log := newLogger(cmd)

			ctx := context.Background()
			svc, err := awsclient.NewServiceClient(ctx, profile, region)
			if err != nil {
				return fmt.Errorf("loading AWS config: %w", err)
			}

			app := server.New(provision.New(svc, log), log)
			log.Info().Str("addr", listen).Msg("listening")
			return app.Listen(listen)
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region for the credentials")
	cmd.Flags().StringVarP(&listen, "listen", "l", ":5000", "address to listen on")

	return cmd
}
