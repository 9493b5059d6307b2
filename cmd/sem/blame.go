package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sem/internal/history"
	"sem/internal/parser"
)

var (
	blameDepth int
	blameJSON  bool
)

var blameCmd = &cobra.Command{
	Use:   "blame <file>",
	Short: "Attribute each entity of a file to the commit that last changed it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, err := setupEnv()
		if err != nil {
			fail(err)
		}

		depth := blameDepth
		if depth == 0 {
			depth = env.cfg.BlameDepth
		}

		results, err := history.Blame(cmd.Context(), env.bridge,
			parser.NewDefaultRegistry(), args[0], depth, env.logger)
		if err != nil {
			fail(err)
		}
		if len(results) == 0 {
			fmt.Fprintf(os.Stderr, "no entities found in %s\n", args[0])
			return
		}

		if blameJSON {
			printJSON(results)
			return
		}

		bold := color.New(color.Bold)
		fmt.Printf("%s\n", bold.Sprint(args[0]))
		for _, r := range results {
			fmt.Printf("  %-10s %-24s %4d-%-4d  %s  %s  %s\n",
				r.EntityType, r.Name, r.StartLine, r.EndLine,
				color.YellowString(r.ShortSha), r.Author, r.Message)
		}
	},
}

func init() {
	blameCmd.Flags().IntVar(&blameDepth, "depth", 0, "maximum commits to inspect")
	blameCmd.Flags().BoolVar(&blameJSON, "json", false, "emit machine-readable JSON")
	rootCmd.AddCommand(blameCmd)
}
