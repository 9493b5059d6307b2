package main

import (
	"github.com/spf13/cobra"

	"sem/internal/storage"
)

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a read-only SQL query against .sem/sem.db",
	Long: `Runs an arbitrary SELECT against the entity store and prints the rows as
JSON. Tables: entities, changes, metadata, labels, comments.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, err := setupEnv()
		if err != nil {
			fail(err)
		}

		db, err := storage.Open(env.bridge.RepoRoot(), env.logger)
		if err != nil {
			fail(err)
		}
		defer db.Close()

		rows, err := db.Query(args[0])
		if err != nil {
			fail(err)
		}
		if rows == nil {
			rows = []map[string]interface{}{}
		}
		printJSON(rows)
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
