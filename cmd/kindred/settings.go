package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/entrhq/kindred/pkg/config"
	"github.com/entrhq/kindred/pkg/keeper"
)

// NewSparklesCommand creates the sparkles command.
func NewSparklesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "sparkles [on|off]",
		Short:     "Show or toggle the sparkles effect",
		Args:      rangeArgs(0, 1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				switch strings.ToLower(args[0]) {
				case "on", "true":
					rootOpts.keeper.SetSparkles(true)
				case "off", "false":
					rootOpts.keeper.SetSparkles(false)
				default:
					return NewExitError(ExitCommandError, fmt.Sprintf("expected on or off, got %q", args[0]))
				}
			}
			on := rootOpts.keeper.Sparkles()
			return rootOpts.out.Success(map[string]bool{"sparkles": on}, func(w io.Writer) {
				if on {
					fmt.Fprintln(w, "Sparkles "+successStyle.Render("on ✨"))
					return
				}
				fmt.Fprintln(w, "Sparkles "+mutedStyle.Render("off"))
			})
		},
	}
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show configuration and storage keys",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.cfg
			data := struct {
				Config  *config.Config    `json:"config"`
				Keys    map[string]string `json:"keys"`
				Log     string            `json:"log,omitempty"`
				People  int               `json:"people"`
				Durable bool              `json:"durable"`
			}{
				Config: cfg,
				Keys: map[string]string{
					"database": cfg.Key(keeper.SlotDatabase),
					"active":   cfg.Key(keeper.SlotActive),
					"sparkles": cfg.Key(keeper.SlotSparkles),
				},
				Log:     rootOpts.log.LogPath(),
				People:  len(rootOpts.keeper.People()),
				Durable: rootOpts.keeper.Durable(),
			}
			return rootOpts.out.Success(data, func(w io.Writer) {
				row := func(label, value string) {
					fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value))
				}
				fmt.Fprintln(w, titleStyle.Render("kindred"))
				row("Config", rootOpts.ConfigPath)
				row("Data dir", cfg.DataDir)
				row("Medium", cfg.Medium)
				row("Persistence", cfg.Persistence)
				if !data.Durable {
					row("", errorStyle.Render("changes are kept in memory only"))
				}
				row("Namespace", cfg.Namespace)
				row("Log", data.Log)
				row("People", fmt.Sprint(data.People))
				fmt.Fprintln(w, sectionStyle.Render("Keys"))
				for _, k := range []string{"database", "active", "sparkles"} {
					row(k, data.Keys[k])
				}
			})
		},
	}
}
