package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macropower/needs/api"
	"github.com/macropower/needs/api/v1beta1/profiles"
	"github.com/macropower/needs/pkg/parameter"
)

// Output formats for the show command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var showFormats = []string{FormatText, FormatJSON, FormatYAML}

type ShowArgs struct {
	*RootArgs

	Format string
}

func (sa *ShowArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sa.Format, "format", "o", FormatText, fmt.Sprintf("Output format, one of: %s", showFormats))

	err := cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions(showFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

// shownProfile is the serialized form of the show command output.
type shownProfile struct {
	Source     string                 `json:"source"`
	Name       string                 `json:"name,omitempty"`
	Provenance string                 `json:"provenance"`
	Parameters []*parameter.Parameter `json:"parameters"`
}

func NewShowCmd(rootArgs *RootArgs) *cobra.Command {
	sa := &ShowArgs{RootArgs: rootArgs}

	cmd := &cobra.Command{
		Use:   "show [profile]",
		Short: "Show the active profile, or a named profile, and its parameters",
		Long: `Show the active profile and the parameters derived from it.

The active profile is read from the settings file. When none is stored, the
first profile in locale order is used, and failing that a builtin profile.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: profileCompletion(rootArgs, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(sa.RootArgs)
			if err != nil {
				return err
			}

			out := shownProfile{}

			if len(args) == 1 {
				_, err = a.manager.Profiles()
				if err != nil {
					return fmt.Errorf("list profiles: %w", err)
				}

				err = a.manager.LoadProfile(args[0])
				if err != nil {
					return a.suggest(args[0], err)
				}

				out.Source = "profile file"
				out.Name = args[0]
			} else {
				res := a.manager.LoadContext(cmd.Context())
				out.Source = res.Source.String()
				out.Name = res.Name
			}

			out.Parameters, err = a.manager.Parameters()
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

			out.Provenance, err = a.manager.Provenance()
			if err != nil {
				return fmt.Errorf("read provenance: %w", err)
			}

			return render(cmd.OutOrStdout(), sa.Format, out)
		},
	}
	sa.AddFlags(cmd)

	return cmd
}

func render(w io.Writer, format string, out shownProfile) error {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}

		mustN(fmt.Fprintln(w, string(b)))

	case FormatYAML:
		b, err := api.MarshalYAML(out)
		if err != nil {
			return err //nolint:wrapcheck // Already wrapped.
		}

		mustN(fmt.Fprint(w, string(b)))

	case FormatText:
		renderText(w, out)

	default:
		return fmt.Errorf("invalid argument: unknown format %q", format)
	}

	return nil
}

func renderText(w io.Writer, out shownProfile) {
	title := lipgloss.NewStyle().Bold(true)

	source := out.Source
	if out.Name != "" {
		source = fmt.Sprintf("%s (%s%s)", out.Source, out.Name, profiles.Ext)
	}

	mustN(fmt.Fprintf(w, "%s %s\n", title.Render("Source:"), source))
	mustN(fmt.Fprintf(w, "%s %s\n\n", title.Render("Provenance:"), out.Provenance))

	t := table.New().
		Headers("RESOURCE", "VALUE", "MIN", "MAX", "FREQUENCY", "DESCRIPTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return title.Padding(0, 1)
			}

			return lipgloss.NewStyle().Padding(0, 1)
		})

	if !isTerminal(w) {
		t = t.Border(lipgloss.HiddenBorder())
	}

	for _, p := range out.Parameters {
		t.Row(
			p.Name,
			p.String(),
			strconv.FormatFloat(p.Minimum, 'f', -1, 64),
			strconv.FormatFloat(p.Maximum, 'f', -1, 64),
			p.Frequency,
			p.Description,
		)
	}

	mustN(fmt.Fprintln(w, t.Render()))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int.
}
