package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macropower/needs/pkg/sentence"
)

func NewSentenceCmd(_ *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "sentence <template> [key=value...]",
		Short: "Fill the placeholders of a readable sentence template",
		Example: `  needs sentence 'Each person needs {{ Default }}{{ Unit }} of{{ Name }}.' \
    Default=2.8 Unit=kg Name=rice`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record := make(map[string]string, len(args)-1)

			for _, kv := range args[1:] {
				key, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("invalid argument %q: expected key=value", kv)
				}

				record[strings.TrimSpace(key)] = value
			}

			out, err := sentence.Format(args[0], record)
			if err != nil {
				return fmt.Errorf("format sentence: %w", err)
			}

			mustN(fmt.Fprintln(cmd.OutOrStdout(), out))

			return nil
		},
	}
}
