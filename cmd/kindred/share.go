package main

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/entrhq/kindred/pkg/journal"
	"github.com/entrhq/kindred/pkg/views"
)

// CopyOptions holds flags for the copy command.
type CopyOptions struct {
	*RootOptions
	Markdown bool
	Stdout   bool
}

// NewCopyCommand creates the copy command.
func NewCopyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CopyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "copy [ID]",
		Short: "Copy a person's snapshot to the clipboard",
		Long: `Copy a person as indented JSON, or as a Markdown card with --markdown.
When the clipboard is unavailable the snapshot is printed instead.`,
		Args: rangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.target(args)
			if err != nil {
				return err
			}

			var snapshot []byte
			if opts.Markdown {
				snapshot, err = views.RenderMarkdown(p, opts.keeper.Now())
			} else {
				snapshot, err = journal.MarshalSnapshot(p)
			}
			if err != nil {
				return err
			}

			copied := false
			if !opts.Stdout {
				if err := clipboard.WriteAll(string(snapshot)); err != nil {
					opts.log.Warnf("clipboard unavailable: %v", err)
				} else {
					copied = true
				}
			}

			data := struct {
				Copied   bool   `json:"copied"`
				Snapshot string `json:"snapshot,omitempty"`
			}{Copied: copied}
			if !copied {
				data.Snapshot = string(snapshot)
			}
			return opts.out.Success(data, func(w io.Writer) {
				if copied {
					fmt.Fprintf(w, "%s %s\n", successStyle.Render("Copied"), p.Name)
					return
				}
				w.Write(snapshot)
				if len(snapshot) > 0 && snapshot[len(snapshot)-1] != '\n' {
					fmt.Fprintln(w)
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Markdown, "markdown", "m", false, "copy a Markdown card instead of JSON")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "print instead of using the clipboard")
	return cmd
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var selectImported bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a person from a Markdown card",
		Long: `Import a person from a Markdown card written by "kindred copy --markdown".
Use - to read from standard input. A clashing id is replaced.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read card", err)
			}

			parsed, err := views.ParseMarkdown(raw)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to parse card", err)
			}
			p, err := rootOpts.keeper.Import(parsed)
			if err != nil {
				return err
			}
			if selectImported {
				if err := rootOpts.keeper.Select(p.ID); err != nil {
					return err
				}
			}
			return rootOpts.out.Success(p, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s %s\n", successStyle.Render("Imported"), p.DisplayGlyph(), p.Name)
				fmt.Fprintln(w, mutedStyle.Render("id: "+p.ID))
			})
		},
	}

	cmd.Flags().BoolVar(&selectImported, "select", false, "make the imported person active")
	return cmd
}
