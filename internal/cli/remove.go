package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRemoveCmd(rootArgs *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:               "remove <profile>",
		Aliases:           []string{"rm"},
		Short:             "Delete a profile file",
		Long:              "Delete a profile file. Removing a profile that does not exist is not an error.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: profileCompletion(rootArgs, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(rootArgs)
			if err != nil {
				return err
			}

			err = a.manager.RemoveProfile(args[0])
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

			mustN(fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0]))

			return nil
		},
	}
}
