package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version, typically
// injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the cxblueprint CLI and returns an error if a command fails.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "cxblueprint",
		Short:        "Compile, validate and inspect contact-flow documents",
		Long:         "cxblueprint works with the JSON flow documents consumed by the call-routing engine: it validates them, rewrites them in canonical form with a deterministic layout, and summarizes their structure.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("cxblueprint %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newFmtCmd())
	root.AddCommand(newInspectCmd())

	return root.ExecuteContext(context.Background())
}
