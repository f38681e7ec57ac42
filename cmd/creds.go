package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	awsclient "tasnim.dev/orgctl/internal/aws"
	"tasnim.dev/orgctl/internal/config"
	"tasnim.dev/orgctl/internal/provision"
)

func NewCredsCmd() *cobra.Command {
	var profile, region, role string

	cmd := &cobra.Command{
		Use:   "creds",
		Short: "Provision the organization admin role and print temporary credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			profile, region = cfg.Merge(profile, region)
			role = cfg.Role(role)
			log := newLogger(cmd)

			ctx := context.Background()
			svc, err := awsclient.NewServiceClient(ctx, profile, region)
			if err != nil {
				return fmt.Errorf("loading AWS config: %w", err)
			}

			creds, err := provision.New(svc, log).Provision(ctx, role)
			if err != nil {
				return err
			}
			return printJSON(creds)
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region for the credentials")
	cmd.Flags().StringVar(&role, "role", "", "admin role name to provision and assume")

	return cmd
}
