package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	awsclient "tasnim.dev/orgctl/internal/aws"
	"tasnim.dev/orgctl/internal/config"
	"tasnim.dev/orgctl/internal/orgunit"
)

func NewCreateOUCmd() *cobra.Command {
	var profile, region, role, parentID, parentName string

	cmd := &cobra.Command{
		Use:   "create-ou <name>",
		Short: "Create an organizational unit, reusing one that already exists",
		Args:  cobra.ExactArgs(1),
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

			res, err := orgunit.NewCreator(svc, log).Create(ctx, orgunit.CreateInput{
				Name:       args[0],
				ParentID:   parentID,
				ParentName: parentName,
				RoleName:   role,
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
	cmd.Flags().StringVar(&parentID, "parent-id", "", "parent OU ID (defaults to the organization root)")
	cmd.Flags().StringVar(&parentName, "parent-name", "", "parent OU name, resolved at the root level")

	return cmd
}
