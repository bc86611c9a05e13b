package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/entrhq/kindred/pkg/config"
	"github.com/entrhq/kindred/pkg/keeper"
	"github.com/entrhq/kindred/pkg/logging"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{formatText, formatJSON}

// RootOptions holds global flags and the resources opened for a command.
type RootOptions struct {
	ConfigPath string
	DataDir    string
	Medium     string
	Format     string
	Verbose    bool

	cfg    *config.Config
	log    *logging.Logger
	keeper *keeper.Keeper
	out    *OutputFormatter
}

// NewRootCommand creates the root command for the kindred CLI.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kindred",
		Short: "kindred - remember what matters to the people you love",
		Long: `kindred is a personal relationship journal.

Record the preferences, dates, gifts, milestones and small memories of the
people important to you, then bring them back up with an overview, a
timeline and search.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.open(cmd)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", defaultConfigPath(), "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "directory holding the journal (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Medium, "medium", "", "storage medium: file, sqlite or memory (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", formatText, "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewSelectCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewRenameCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewLinkCommand(opts))
	cmd.AddCommand(NewPrefCommand(opts))
	cmd.AddCommand(NewPrefsCommand(opts))
	cmd.AddCommand(NewEventCommand(opts))
	cmd.AddCommand(NewMemoryCommand(opts))
	cmd.AddCommand(NewTimelineCommand(opts))
	cmd.AddCommand(NewMemoriesCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewCopyCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewSparklesCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))

	return cmd
}

func defaultConfigPath() string {
	dir, err := config.DefaultDataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// open loads configuration, starts logging and opens the store.
func (o *RootOptions) open(cmd *cobra.Command) error {
	o.out = &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
	if !isValidFormat(o.Format) {
		o.out.Format = formatText
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.Medium != "" {
		cfg.Medium = o.Medium
	}
	if o.Verbose {
		cfg.Verbosity = "verbose"
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	o.cfg = cfg

	// NewLogger falls back to stderr and says so itself.
	o.log, _ = logging.NewLogger(cfg.LogDir, "kindred")
	o.log.SetLevel(logging.ParseLevel(cfg.Verbosity))
	o.out.VerboseLog("log file: %s", o.log.LogPath())

	k, err := keeper.Open(cfg, o.log)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	o.keeper = k
	return nil
}

// Close flushes the store and closes the log.
func (o *RootOptions) Close() error {
	var err error
	if o.keeper != nil {
		err = o.keeper.Close()
		o.keeper = nil
	}
	if o.log != nil {
		o.log.Close()
		o.log = nil
	}
	return err
}

// report writes err to the command's output and returns the exit code.
func (o *RootOptions) report(err error, stderr io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	if o.out == nil {
		o.out = &OutputFormatter{Format: formatText, Writer: stderr, ErrWriter: stderr}
	}
	o.out.Error(err)
	return GetExitCode(err)
}

// exactArgs is cobra.ExactArgs reporting misuse with ExitCommandError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}

// rangeArgs is cobra.RangeArgs reporting misuse with ExitCommandError.
func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(lo, hi)(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
