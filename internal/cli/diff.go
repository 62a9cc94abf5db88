package cli

import (
	"fmt"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/cobra"

	"github.com/macropower/needs/api/v1beta1/profiles"
)

func NewDiffCmd(rootArgs *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:               "diff <profile> <profile>",
		Short:             "Show a unified diff between two profile files",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: profileCompletion(rootArgs, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(rootArgs)
			if err != nil {
				return err
			}

			store := a.manager.Store()

			_, err = store.List(a.manager.Locale())
			if err != nil {
				return fmt.Errorf("list profiles: %w", err)
			}

			contents := make([]string, len(args))

			for i, name := range args {
				data, err := store.ReadBytes(name)
				if err != nil {
					return a.suggest(name, err)
				}

				contents[i] = string(data)
			}

			unified := udiff.Unified(args[0]+profiles.Ext, args[1]+profiles.Ext, contents[0], contents[1])
			mustN(fmt.Fprint(cmd.OutOrStdout(), unified))

			return nil
		},
	}
}
