package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sem/internal/version"
)

var (
	// verboseFlag raises the log level: once for info, twice for debug.
	verboseFlag int
)

var rootCmd = &cobra.Command{
	Use:   "sem",
	Short: "sem - semantic diff for your repository",
	Long: `sem reports changes at the level of named program entities — functions,
classes, configuration properties, document sections, table rows — instead of
text lines, and tells cosmetic rewrites apart from structural ones.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("sem version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v",
		"increase log verbosity (-v info, -vv debug)")
}

// fail prints one red line to stderr and exits non-zero. All command errors
// funnel through here.
func fail(err error) {
	color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// failf is fail with a formatted message.
func failf(format string, args ...interface{}) {
	fail(fmt.Errorf(format, args...))
}
