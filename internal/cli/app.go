package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/macropower/needs/pkg/parameter"
	"github.com/macropower/needs/pkg/profile"
	"github.com/macropower/needs/pkg/settings"

	v1settings "github.com/macropower/needs/api/v1beta1/settings"
)

// app wires the profile manager, backed by the settings file, for one
// command run.
type app struct {
	manager *profile.Manager
}

func newApp(ra *RootArgs) (*app, error) {
	env, err := profile.ParseEnvironment()
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	resolver := profile.RootResolver{
		Host: profile.HostPathsFunc(ra.settingsDir),
		Env:  env,
	}

	sf, err := settings.OpenFile(v1settings.GetPath(resolver.Resolve()))
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	opts := []profile.ManagerOpt{profile.WithRootResolver(resolver)}
	if ra.Locale != "" {
		opts = append(opts, profile.WithLocale(ra.Locale))
	}

	m := profile.NewManager(sf, opts...)
	m.Subscribe(profile.ConsumerFunc(func(params []*parameter.Parameter, provenance string) {
		slog.Debug("minimum needs updated",
			slog.Int("parameters", len(params)),
			slog.String("provenance", provenance),
		)
	}))

	return &app{manager: m}, nil
}

// suggest annotates a profile-not-found error with the closest existing
// profile name, if any.
func (a *app) suggest(name string, err error) error {
	if !errors.Is(err, profile.ErrProfileNotFound) {
		return err
	}

	names, listErr := a.manager.Profiles()
	if listErr != nil || len(names) == 0 {
		return err
	}

	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return err
	}

	return fmt.Errorf("%w (did you mean %q?)", err, matches[0].Str)
}

// profileCompletion completes profile names for the first argument.
func profileCompletion(ra *RootArgs, maxArgs int) cobra.CompletionFunc {
	return func(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) >= maxArgs {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		a, err := newApp(ra)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		names, err := a.manager.Profiles()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		completions := make([]cobra.Completion, 0, len(names))
		for _, name := range names {
			completions = append(completions, cobra.Completion(name))
		}

		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}
