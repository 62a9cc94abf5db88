package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewUseCmd(rootArgs *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:               "use <profile>",
		Short:             "Activate a profile and persist it to the settings file",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: profileCompletion(rootArgs, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(rootArgs)
			if err != nil {
				return err
			}

			// Listing seeds the bundled profiles on first use.
			_, err = a.manager.Profiles()
			if err != nil {
				return fmt.Errorf("list profiles: %w", err)
			}

			err = a.manager.LoadProfile(args[0])
			if err != nil {
				return a.suggest(args[0], err)
			}

			err = a.manager.SaveContext(cmd.Context())
			if err != nil {
				return fmt.Errorf("save minimum needs: %w", err)
			}

			mustN(fmt.Fprintf(cmd.OutOrStdout(), "Using profile %s\n", args[0]))

			return nil
		},
	}
}
