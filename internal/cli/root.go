// Package cli implements planctl, the manager console for the plan catalogs.
package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

const (
	groupCatalogs = "catalogs"
	groupSession  = "session"
	groupTooling  = "tooling"
)

// options holds the global flags.
type options struct {
	configDir  string
	jsonOutput bool
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// Execute runs planctl with the process arguments.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:     "planctl",
		Version: version,
		Short:   "Manage academy and turf plan catalogs",
		Long: `planctl administers the academy membership plans and turf booking plans
of a facility through the catalog service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.SetHelpFunc(customHelpFunc)

	root.PersistentFlags().StringVar(&opts.configDir, "config", ".", "Directory holding config.yaml and .env")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	root.AddGroup(
		&cobra.Group{ID: groupCatalogs, Title: "Catalogs:"},
		&cobra.Group{ID: groupSession, Title: "Session:"},
		&cobra.Group{ID: groupTooling, Title: "CLI & Tooling:"},
	)

	academy := newCatalogCmd(opts, academyKit)
	academy.GroupID = groupCatalogs
	turf := newCatalogCmd(opts, turfKit)
	turf.GroupID = groupCatalogs
	turf.AddCommand(newBookingsCmd(opts))

	console := newConsoleCmd(opts)
	console.GroupID = groupSession
	token := newTokenCmd(opts)
	token.GroupID = groupSession

	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the planctl version",
		Args:    cobra.NoArgs,
		GroupID: groupTooling,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cmd.Root().Version)
		},
	}
	helpCmd := &cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: groupTooling,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _, err := cmd.Root().Find(args)
			if err != nil || len(args) == 0 {
				target = cmd.Root()
			}
			return target.Help()
		},
	}
	root.SetHelpCommand(helpCmd)
	root.AddCommand(academy, turf, console, token, versionCmd)
	return root
}

// customHelpFunc colors group titles and lists grouped subcommands.
func customHelpFunc(cmd *cobra.Command, args []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	} else if cmd.Short != "" {
		help.WriteString(cmd.Short)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	for _, group := range cmd.Groups() {
		help.WriteString(groupTitleColor.Sprint(group.Title))
		help.WriteString("\n")
		for _, c := range cmd.Commands() {
			if c.GroupID == group.ID && !c.Hidden {
				fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
			}
		}
		help.WriteString("\n")
	}

	hasUngrouped := false
	for _, c := range cmd.Commands() {
		if c.GroupID == "" && !c.Hidden && c.IsAvailableCommand() {
			if !hasUngrouped {
				help.WriteString(sectionTitleColor.Sprint("Commands:"))
				help.WriteString("\n")
				hasUngrouped = true
			}
			fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
		}
	}
	if hasUngrouped {
		help.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailableInheritedFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
		help.WriteString("\n")
	}

	fmt.Fprintf(&help, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	fmt.Fprint(cmd.OutOrStdout(), help.String())
}
