package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/entrhq/kindred/pkg/journal"
)

// PrefOptions holds flags for the pref add command.
type PrefOptions struct {
	*RootOptions
	Category   string
	Importance int
	Note       string
	Like       bool
	Dislike    bool
}

// NewPrefCommand creates the pref command group.
func NewPrefCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pref",
		Short: "Record or remove the active person's preferences",
	}
	cmd.AddCommand(newPrefAddCommand(rootOpts))
	cmd.AddCommand(&cobra.Command{
		Use:   "rm ID",
		Short: "Remove a preference",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.updateActive(journal.RemovePreference(args[0]), "Removed preference from")
		},
	})
	return cmd
}

func newPrefAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PrefOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add LABEL",
		Short: "Add a preference",
		Long: fmt.Sprintf(`Add a preference to the active person.

Categories: %s

Examples:
  kindred pref add Sushi --category food --importance 4 --like
  kindred pref add "Wood Sage & Sea Salt" --category fragrance --note "the 100ml bottle"`,
			joinCategories()),
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := exclusive(cmd.Flags(), "like", "dislike"); err != nil {
				return err
			}
			draft := journal.PreferenceDraft{
				Category:   journal.Category(strings.ToLower(opts.Category)),
				Label:      args[0],
				Note:       opts.Note,
				Importance: opts.Importance,
			}
			switch {
			case opts.Like:
				draft.Polarity = journal.PolarityLike
			case opts.Dislike:
				draft.Polarity = journal.PolarityDislike
			}
			return opts.updateActive(journal.AddPreference(draft), "Noted a preference for")
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", string(journal.CategoryFood), "preference category")
	cmd.Flags().IntVarP(&opts.Importance, "importance", "i", 3, "importance from 1 to 5")
	cmd.Flags().StringVarP(&opts.Note, "note", "n", "", "free-form note")
	cmd.Flags().BoolVar(&opts.Like, "like", false, "mark as a like")
	cmd.Flags().BoolVar(&opts.Dislike, "dislike", false, "mark as a dislike")
	return cmd
}

func joinCategories() string {
	names := make([]string, 0, len(journal.Categories))
	for _, c := range journal.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// EventOptions holds flags for the event add command.
type EventOptions struct {
	*RootOptions
	Type  string
	When  string
	Place string
	Note  string
}

// NewEventCommand creates the event command group.
func NewEventCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Record or remove the active person's events",
	}
	cmd.AddCommand(newEventAddCommand(rootOpts))
	cmd.AddCommand(&cobra.Command{
		Use:   "rm ID",
		Short: "Remove an event",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.updateActive(journal.RemoveEvent(args[0]), "Removed event from")
		},
	})
	return cmd
}

func newEventAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EventOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add an event",
		Long: `Add a date, gift, memory, milestone or anniversary to the active person.
--when accepts RFC 3339, "YYYY-MM-DD HH:MM", "YYYY-MM-DDTHH:MM" or
"YYYY-MM-DD" in local time and defaults to now.

Examples:
  kindred event add "Dinner at Nori" --type date --when "2024-06-01 19:30" --place Nori
  kindred event add "Ceramic mug" --type gift --note "blue glaze"`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when := opts.keeper.Now()
			if opts.When != "" {
				t, err := journal.ParseWhen(opts.When, time.Local)
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid --when", err)
				}
				when = t
			}
			draft := journal.EventDraft{
				Type:  journal.EventType(strings.ToLower(opts.Type)),
				Title: args[0],
				When:  when,
				Place: opts.Place,
				Note:  opts.Note,
			}
			return opts.updateActive(journal.AddEvent(draft), "Recorded an event for")
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", string(journal.EventDate), "date, gift, memory, milestone or anniversary")
	cmd.Flags().StringVarP(&opts.When, "when", "w", "", "when it happens (defaults to now)")
	cmd.Flags().StringVarP(&opts.Place, "place", "p", "", "where it happens")
	cmd.Flags().StringVarP(&opts.Note, "note", "n", "", "free-form note")
	return cmd
}

// NewMemoryCommand creates the memory command group.
func NewMemoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Record a quick memory",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add TEXT",
		Short: "Record a memory timestamped now",
		Long: `Record a memory for the active person. The first line of TEXT becomes
the title and the whole text is kept as the note.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := rootOpts.activePerson(); err != nil {
				return err
			}
			if err := rootOpts.keeper.UpdateActive(journal.AddMemory(args[0], rootOpts.keeper.Now())); err != nil {
				return err
			}
			p := rootOpts.keeper.Active()
			ev := p.Events[0]
			return rootOpts.out.Success(ev, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s\n", successStyle.Render("Remembered"), ev.Title)
				fmt.Fprintln(w, mutedStyle.Render("id: "+ev.ID))
			})
		},
	})
	return cmd
}
