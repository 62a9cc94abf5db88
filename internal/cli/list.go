package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/macropower/needs/api/v1beta1/profiles"
	"github.com/macropower/needs/pkg/log"
)

type ListArgs struct {
	*RootArgs

	Long  bool
	Watch bool
}

func (la *ListArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&la.Long, "long", "l", false, "Show file size and modification time")
	cmd.Flags().BoolVarP(&la.Watch, "watch", "w", false, "Keep listing whenever the profile directory changes")
}

func NewListCmd(rootArgs *RootArgs) *cobra.Command {
	la := &ListArgs{RootArgs: rootArgs}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the available profiles in locale order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(la.RootArgs)
			if err != nil {
				return err
			}

			err = a.list(cmd.OutOrStdout(), la.Long)
			if err != nil || !la.Watch {
				return err
			}

			ctx := cmd.Context()
			store := a.manager.Store()

			//nolint:wrapcheck // Already wrapped.
			return store.Watch(ctx, func(evt fsnotify.Event) {
				log.WithContext(ctx).DebugContext(ctx, "profile directory changed",
					slog.String("event", evt.String()),
				)

				mustN(fmt.Fprintln(cmd.OutOrStdout()))

				err := a.list(cmd.OutOrStdout(), la.Long)
				if err != nil {
					log.WithContext(ctx).ErrorContext(ctx, "list profiles", slog.Any("err", err))
				}
			})
		},
	}
	la.AddFlags(cmd)

	return cmd
}

func (a *app) list(w io.Writer, long bool) error {
	store := a.manager.Store()
	loc := a.manager.Locale()

	if !long {
		names, err := store.List(loc)
		if err != nil {
			return fmt.Errorf("list profiles: %w", err)
		}

		for _, name := range names {
			mustN(fmt.Fprintln(w, name))
		}

		return nil
	}

	infos, err := store.Entries(loc)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}

	width := 0
	for _, info := range infos {
		width = max(width, len(info.Name())-len(profiles.Ext))
	}

	for _, info := range infos {
		mustN(fmt.Fprintf(w, "%-*s  %8s  %s\n",
			width,
			strings.TrimSuffix(info.Name(), profiles.Ext),
			humanize.Bytes(uint64(info.Size())), //nolint:gosec // G115: file sizes are non-negative.
			humanize.Time(info.ModTime()),
		))
	}

	return nil
}
