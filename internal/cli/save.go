package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewSaveCmd(rootArgs *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "save <profile>",
		Short: "Write the active profile to a profile file, replacing any existing file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(rootArgs)
			if err != nil {
				return err
			}

			a.manager.LoadContext(cmd.Context())

			err = a.manager.SaveProfile(args[0])
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

			path, err := a.manager.Store().Path(args[0])
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

			mustN(fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path))

			return nil
		},
	}
}
