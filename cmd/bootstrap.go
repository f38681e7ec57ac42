package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	awsclient "tasnim.dev/orgctl/internal/aws"
	"tasnim.dev/orgctl/internal/bootstrap"
	"tasnim.dev/orgctl/internal/config"
)

func NewBootstrapCmd() *cobra.Command {
	var profile, region string

	cmd := &cobra.Command{
		Use:   "bootstrap-org",
		Short: "Create the AWS Organization using the caller's own credentials",
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

			b := &bootstrap.Bootstrapper{Orgs: svc.Orgs, STS: svc.STS, Log: log}
			org, err := b.Run(ctx)
			if err != nil {
				return err
			}
			return printJSON(org)
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region for the credentials")

	return cmd
}
