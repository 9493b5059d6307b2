package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sem/internal/history"
	"sem/internal/parser"
	"sem/internal/storage"
)

var (
	historyDepth int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history <file::type::name | name>",
	Short: "Track one entity backward through commits",
	Long: `Walks an entity's file history and reports every commit where the entity
appeared, changed structurally, or disappeared. Bare names are resolved
against the snapshot saved by "sem save".`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, err := setupEnv()
		if err != nil {
			fail(err)
		}

		// The store is only needed to resolve bare names; open it lazily and
		// tolerate its absence for fully-qualified queries.
		var db *storage.DB
		if _, statErr := os.Stat(env.bridge.RepoRoot() + "/.sem/sem.db"); statErr == nil {
			if opened, openErr := storage.Open(env.bridge.RepoRoot(), env.logger); openErr == nil {
				db = opened
				defer db.Close()
			}
		}

		query, err := history.ParseQuery(args[0], db)
		if err != nil {
			fail(err)
		}

		depth := historyDepth
		if depth == 0 {
			depth = env.cfg.HistoryDepth
		}

		events, err := history.Track(cmd.Context(), env.bridge,
			parser.NewDefaultRegistry(), query, depth, env.logger)
		if err != nil {
			fail(err)
		}

		if historyJSON {
			printJSON(events)
			return
		}
		if len(events) == 0 {
			fmt.Printf("no recorded transitions for %s in the last %d commits\n", args[0], depth)
			return
		}

		fmt.Printf("%s\n", color.New(color.Bold).Sprintf("%s (%s)", query.Name, query.FilePath))
		for _, ev := range events {
			c := changeColors[ev.ChangeType]
			fmt.Printf("  %s  %s  %-9s %s\n",
				color.YellowString(ev.Commit.ShortSha), ev.Commit.Date,
				c.Sprint(string(ev.ChangeType)), ev.Commit.Message)
		}
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyDepth, "depth", 0, "maximum commits to walk")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "emit machine-readable JSON")
	rootCmd.AddCommand(historyCmd)
}
