package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tasnim.dev/orgctl/internal/account"
	awsclient "tasnim.dev/orgctl/internal/aws"
	"tasnim.dev/orgctl/internal/config"
)

func NewCreateAccountCmd() *cobra.Command {
	var profile, region, role string

	cmd := &cobra.Command{
		Use:   "create-account <name> <email> <ou>",
		Short: "Create a member account and move it into an OU",
		Long: `Create a member account and move it into an OU.

The <ou> argument is either an OU name resolved at the organization root
or a literal OU ID (ou-...). Account creation is asynchronous; the command
polls until the request reaches a terminal state.`,
		Args: cobra.ExactArgs(3),
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

			res, err := account.NewCreator(svc, log).Create(ctx, account.CreateInput{
				Name:     args[0],
				Email:    args[1],
				OU:       args[2],
				RoleName: role,
			})
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region for the credentials")
	cmd.Flags().StringVar(&role, "role", "", "admin role name to provision and assume")

	return cmd
}
