package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/entrhq/kindred/pkg/journal"
	"github.com/entrhq/kindred/pkg/views"
)

// activePerson returns the selected person or a not-found error.
func (o *RootOptions) activePerson() (*journal.Person, error) {
	p := o.keeper.Active()
	if p == nil {
		return nil, WrapExitError(ExitFailure, "no person selected", journal.ErrPersonNotFound)
	}
	return p, nil
}

// target returns the person named by args[0], or the active person.
func (o *RootOptions) target(args []string) (*journal.Person, error) {
	if len(args) == 0 {
		return o.activePerson()
	}
	p := o.keeper.Find(args[0])
	if p == nil {
		return nil, fmt.Errorf("%w: %s", journal.ErrPersonNotFound, args[0])
	}
	return p, nil
}

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Match string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the people in the journal",
		Long: `List every person in the journal. The active person is marked.

Examples:
  kindred list
  kindred list --match 'a*'`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := views.MatchPeople(opts.keeper.People(), opts.Match)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --match", err)
			}
			var activeID string
			if a := opts.keeper.Active(); a != nil {
				activeID = a.ID
			}
			data := struct {
				Active string            `json:"active,omitempty"`
				People []*journal.Person `json:"people"`
			}{activeID, people}
			return opts.out.Success(data, func(w io.Writer) {
				renderPeople(w, people, activeID)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Match, "match", "", "glob pattern filtering names (case-insensitive)")
	return cmd
}

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Glyph    string
	Photo    string
	Birthday string
	Since    string
	Links    []string
	Select   bool
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a person",
		Long: `Add a person to the journal.

Examples:
  kindred add Ivy --glyph 🌿 --birthday 1995-05-15 --since 2023-09-01
  kindred add Ivy --link "Blog=https://example.com" --select`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := journal.PersonDraft{Name: args[0], Glyph: opts.Glyph, Photo: opts.Photo}

			var err error
			if draft.Birthday, err = journal.ParseOptionalDate(opts.Birthday); err != nil {
				return WrapExitError(ExitCommandError, "invalid --birthday", err)
			}
			if draft.TogetherSince, err = journal.ParseOptionalDate(opts.Since); err != nil {
				return WrapExitError(ExitCommandError, "invalid --since", err)
			}
			for _, raw := range opts.Links {
				draft.Links = append(draft.Links, parseLink(raw))
			}

			p, err := opts.keeper.AddPerson(draft)
			if err != nil {
				return err
			}
			if opts.Select {
				if err := opts.keeper.Select(p.ID); err != nil {
					return err
				}
			}
			return opts.out.Success(p, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s %s\n", successStyle.Render("Added"), p.DisplayGlyph(), p.Name)
				fmt.Fprintln(w, mutedStyle.Render("id: "+p.ID))
			})
		},
	}

	cmd.Flags().StringVar(&opts.Glyph, "glyph", "", "emoji shown next to the name")
	cmd.Flags().StringVar(&opts.Photo, "photo", "", "photo URL or data URL")
	cmd.Flags().StringVar(&opts.Birthday, "birthday", "", "birthday (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Since, "since", "", "together since (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&opts.Links, "link", nil, "link as LABEL=URL or URL (repeatable)")
	cmd.Flags().BoolVar(&opts.Select, "select", false, "make the new person active")
	return cmd
}

// parseLink splits LABEL=URL. A bare URL gets no label.
func parseLink(raw string) journal.Link {
	label, url, ok := strings.Cut(raw, "=")
	if !ok || strings.Contains(label, "://") {
		return journal.Link{URL: raw}
	}
	return journal.Link{Label: label, URL: url}
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a person with all their preferences and events",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := rootOpts.keeper.Find(args[0])
			if p == nil {
				return fmt.Errorf("%w: %s", journal.ErrPersonNotFound, args[0])
			}
			if !yes {
				return NewExitError(ExitCommandError, fmt.Sprintf("refusing to remove %s without --yes", p.Name))
			}
			if err := rootOpts.keeper.RemovePerson(p.ID); err != nil {
				return err
			}
			return rootOpts.out.Success(map[string]string{"removed": p.ID}, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s\n", successStyle.Render("Removed"), p.Name)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the removal")
	return cmd
}

// NewSelectCommand creates the select command.
func NewSelectCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "select ID",
		Short: "Make a person active",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.keeper.Select(args[0]); err != nil {
				return err
			}
			p := rootOpts.keeper.Active()
			return rootOpts.out.Success(p, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s %s\n", successStyle.Render("Selected"), p.DisplayGlyph(), p.Name)
			})
		},
	}
}

// NewRenameCommand creates the rename command.
func NewRenameCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename NAME",
		Short: "Rename the active person",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.updateActive(journal.Rename(args[0]), "Renamed")
		},
	}
}

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Glyph         string
	Photo         string
	Birthday      string
	Since         string
	ClearBirthday bool
	ClearSince    bool
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change the active person's glyph, photo or dates",
		Long: `Change details of the active person. All given flags are applied as
one update.

Setting a glyph clears the photo and setting a photo clears the glyph.

Examples:
  kindred edit --glyph 🌸
  kindred edit --birthday 1995-05-15 --since 2023-09-01
  kindred edit --clear-since`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ms []journal.Mutation
			flags := cmd.Flags()
			if err := exclusive(flags, "glyph", "photo"); err != nil {
				return err
			}
			if flags.Changed("birthday") && opts.ClearBirthday {
				return NewExitError(ExitCommandError, "--birthday and --clear-birthday cannot be combined")
			}
			if flags.Changed("since") && opts.ClearSince {
				return NewExitError(ExitCommandError, "--since and --clear-since cannot be combined")
			}

			if flags.Changed("glyph") {
				ms = append(ms, journal.SetGlyph(opts.Glyph))
			}
			if flags.Changed("photo") {
				ms = append(ms, journal.SetPhoto(opts.Photo))
			}
			if flags.Changed("birthday") || opts.ClearBirthday {
				d, err := journal.ParseOptionalDate(opts.Birthday)
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid --birthday", err)
				}
				ms = append(ms, journal.SetBirthday(d))
			}
			if flags.Changed("since") || opts.ClearSince {
				d, err := journal.ParseOptionalDate(opts.Since)
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid --since", err)
				}
				ms = append(ms, journal.SetTogetherSince(d))
			}
			if len(ms) == 0 {
				return NewExitError(ExitCommandError, "nothing to change")
			}
			return opts.updateActive(journal.Chain(ms...), "Updated")
		},
	}

	cmd.Flags().StringVar(&opts.Glyph, "glyph", "", "emoji shown next to the name (empty for the default)")
	cmd.Flags().StringVar(&opts.Photo, "photo", "", "photo URL or data URL")
	cmd.Flags().StringVar(&opts.Birthday, "birthday", "", "birthday (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Since, "since", "", "together since (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.ClearBirthday, "clear-birthday", false, "remove the birthday")
	cmd.Flags().BoolVar(&opts.ClearSince, "clear-since", false, "remove the together-since date")
	return cmd
}

// NewLinkCommand creates the link command group.
func NewLinkCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage the active person's links",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add URL [LABEL]",
		Short: "Add a link",
		Args:  rangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := ""
			if len(args) > 1 {
				label = args[1]
			}
			return rootOpts.updateActive(journal.AddLink(label, args[0]), "Linked")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm INDEX",
		Short: "Remove the link at INDEX (starting at 1)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid index", err)
			}
			return rootOpts.updateActive(journal.RemoveLink(n-1), "Unlinked")
		},
	})

	return cmd
}

// exclusive fails with ExitCommandError when both flags are set.
func exclusive(flags *pflag.FlagSet, a, b string) error {
	if flags.Changed(a) && flags.Changed(b) {
		return NewExitError(ExitCommandError, fmt.Sprintf("--%s and --%s cannot be combined", a, b))
	}
	return nil
}

// updateActive applies m to the active person and reports the result.
func (o *RootOptions) updateActive(m journal.Mutation, verb string) error {
	if _, err := o.activePerson(); err != nil {
		return err
	}
	if err := o.keeper.UpdateActive(m); err != nil {
		return err
	}
	p := o.keeper.Active()
	return o.out.Success(p, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s %s\n", successStyle.Render(verb), p.DisplayGlyph(), p.Name)
	})
}
