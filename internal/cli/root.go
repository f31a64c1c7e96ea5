// Package cli implements the perchtrace command tree.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phanxgames/perch/internal/ui"
)

var version = "0.1.0"

// NewRootCmd builds the perchtrace command tree.
func NewRootCmd() *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "perchtrace",
		Short: "Replay and inspect chart pointer interactions",
		Long: ui.Brand.Sprint("perchtrace") + " drives perch charts headlessly\n" +
			ui.Subtle.Sprint("Replay scripted pointer traces, place tooltips and lay out labels from the command line"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	root.SetVersionTemplate("perchtrace {{ .Version }}\n")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		replayCmd(),
		placeCmd(),
		distributeCmd(),
		legendCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args, printing any error.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		ui.Bad.Fprintf(root.ErrOrStderr(), "perchtrace: %v\n", err)
	}
	return err
}
