package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/entrhq/kindred/pkg/journal"
	"github.com/entrhq/kindred/pkg/views"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Limit int
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a person's overview",
		Long: `Show the hero card, personal facts and overview of a person: recent
memories, upcoming events and the recent past. Without ID the active
person is shown.`,
		Args: rangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.target(args)
			if err != nil {
				return err
			}
			now := opts.keeper.Now()
			facts := views.PersonalFacts(p, now)
			ov := views.Partition(p.Events, now, opts.Limit)

			data := struct {
				Person   *journal.Person `json:"person"`
				Facts    views.Facts     `json:"facts"`
				Overview views.Overview  `json:"overview"`
			}{p, facts, ov}
			return opts.out.Success(data, func(w io.Writer) {
				renderHero(w, p, now)
				renderFacts(w, facts)
				renderOverview(w, ov, now)
			})
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", views.DefaultLimit, "entries per overview list")
	return cmd
}

// NewPrefsCommand creates the prefs command.
func NewPrefsCommand(rootOpts *RootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "prefs [ID]",
		Short: "List preferences grouped by category",
		Args:  rangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rootOpts.target(args)
			if err != nil {
				return err
			}
			groups := views.GroupPreferences(p.Preferences)
			if !all {
				groups = views.NonEmpty(groups)
			}
			return rootOpts.out.Success(groups, func(w io.Writer) {
				fmt.Fprintln(w, titleStyle.Render(p.DisplayGlyph()+" "+p.Name))
				renderGroups(w, groups)
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include empty categories")
	return cmd
}

// NewTimelineCommand creates the timeline command.
func NewTimelineCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline [ID]",
		Short: "List every event, newest first",
		Args:  rangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rootOpts.target(args)
			if err != nil {
				return err
			}
			events := views.Timeline(p.Events)
			return rootOpts.out.Success(events, func(w io.Writer) {
				fmt.Fprintln(w, titleStyle.Render(p.DisplayGlyph()+" "+p.Name+" · timeline"))
				renderEvents(w, events, rootOpts.keeper.Now())
			})
		},
	}
}

// NewMemoriesCommand creates the memories command.
func NewMemoriesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "memories [ID]",
		Short: "List memories and milestones, newest first",
		Args:  rangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rootOpts.target(args)
			if err != nil {
				return err
			}
			events := views.MemoryFeed(p.Events)
			return rootOpts.out.Success(events, func(w io.Writer) {
				fmt.Fprintln(w, titleStyle.Render(p.DisplayGlyph()+" "+p.Name+" · memories"))
				if len(events) == 0 {
					fmt.Fprintln(w, mutedStyle.Render("No memories yet. Record a small, warm detail with `kindred memory add` ✨"))
					return
				}
				renderEvents(w, events, rootOpts.keeper.Now())
			})
		},
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the active person's preferences and events",
		Long: `Search the active person's preferences (label, note, category) and
events (title, note, place, type). Matching is case-insensitive.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := rootOpts.activePerson(); err != nil {
				return err
			}
			rootOpts.keeper.SetQuery(args[0])
			hits := rootOpts.keeper.SearchResults()
			if hits == nil {
				hits = []views.Hit{}
			}
			data := struct {
				Query string      `json:"query"`
				Hits  []views.Hit `json:"hits"`
			}{rootOpts.keeper.Query(), hits}
			return rootOpts.out.Success(data, func(w io.Writer) {
				renderHits(w, hits)
			})
		},
	}
}
