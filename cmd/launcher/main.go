package main

import (
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/spf13/cobra"
)

var (
	styleBold = lipgloss.NewStyle().Bold(true)
	styleOk   = lipgloss.NewStyle().Bold(true).Foreground(charmtone.Guac)
	styleErr  = lipgloss.NewStyle().Bold(true).Foreground(charmtone.Cherry)
	styleWarn = lipgloss.NewStyle().Bold(true).Foreground(charmtone.Mustard)
	styleDim  = lipgloss.NewStyle().Foreground(charmtone.Squid)
	styleRule = lipgloss.NewStyle().Foreground(charmtone.Charple)
)

func main() {
	stderr := newConsole(os.Stderr, os.Getenv("NO_COLOR") != "")
	os.Exit(execute(os.Args[1:], stderr))
}

// execute runs the root command with args; errors go to stderr.
func execute(args []string, stderr *console) int {
	code := 0
	cmd := newRootCmd(&code)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		stderr.Println(styleErr.Render("Error:"), err)
		return 1
	}
	return code
}

// newRootCmd builds the command; the launch sequence's exit code lands in code.
func newRootCmd(code *int) *cobra.Command {
	return &cobra.Command{
		Use:   "goldpredict",
		Short: "Prepare and launch Gold Predict on this machine",
		Long: `Checks for Node.js and npm, validates .env, installs dependencies,
builds the app, pushes the database schema and starts the server.

The launcher works in the directory it is installed in. Set GOLDPREDICT_ROOT
to point it at another checkout.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := newLauncher()
			if err != nil {
				return err
			}
			*code = l.Run(cmd.Context())
			return nil
		},
	}
}
