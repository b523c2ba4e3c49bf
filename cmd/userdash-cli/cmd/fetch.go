package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/userdash/cmd/userdash-cli/internal/output"
)

func newProfileCmd(o *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "profile <user-id>",
		Short: "Print a user's profile",
		Long: `Fetch a user's profile from the upstream source and print it.

Examples:
  userdash-cli profile 1
  userdash-cli profile 1 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !output.ValidFormat(format) {
				return fmt.Errorf("invalid format %q: valid formats are table, json", format)
			}

			profile, err := o.client().FetchUserProfile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching profile of user %s: %w", args[0], err)
			}

			if format == output.FormatJSON {
				return output.JSON(cmd.OutOrStdout(), profile)
			}
			return output.Profile(cmd.OutOrStdout(), profile)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", output.FormatTable, "output format (table, json)")
	return cmd
}

func newActivitiesCmd(o *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "activities <user-id>",
		Short: "Print a user's activities",
		Long: `Fetch a user's activities from the upstream source and print them in
upstream order.

Examples:
  userdash-cli activities 1
  userdash-cli activities 1 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !output.ValidFormat(format) {
				return fmt.Errorf("invalid format %q: valid formats are table, json", format)
			}

			activities, err := o.client().FetchUserActivities(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching activities of user %s: %w", args[0], err)
			}

			if format == output.FormatJSON {
				return output.JSON(cmd.OutOrStdout(), activities)
			}
			return output.Activities(cmd.OutOrStdout(), activities)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", output.FormatTable, "output format (table, json)")
	return cmd
}
