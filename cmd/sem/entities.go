package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sem/internal/storage"
)

var (
	entitiesFile     string
	entitiesSnapshot string
	entitiesJSON     bool
)

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "List entities recorded in a snapshot",
	Args:  cobra.NoArgs,
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

		entities, err := db.GetEntities(entitiesSnapshot, entitiesFile)
		if err != nil {
			fail(err)
		}

		if entitiesJSON {
			printJSON(entities)
			return
		}

		lastFile := ""
		for _, e := range entities {
			if e.FilePath != lastFile {
				fmt.Printf("%s\n", color.New(color.Bold).Sprint(e.FilePath))
				lastFile = e.FilePath
			}
			fmt.Printf("  %-10s %-30s %4d-%d\n", e.EntityType, e.Name, e.StartLine, e.EndLine)
		}
		fmt.Printf("\n%d entities\n", len(entities))
	},
}

func init() {
	entitiesCmd.Flags().StringVar(&entitiesFile, "file", "", "restrict to one file")
	entitiesCmd.Flags().StringVar(&entitiesSnapshot, "snapshot", "current", "snapshot name")
	entitiesCmd.Flags().BoolVar(&entitiesJSON, "json", false, "emit machine-readable JSON")
	rootCmd.AddCommand(entitiesCmd)
}
