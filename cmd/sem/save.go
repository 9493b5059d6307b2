package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sem/internal/model"
	"sem/internal/parser"
	"sem/internal/storage"
)

var saveSnapshot string

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Extract every tracked file and persist the entities as a snapshot",
	Long: `Walks the tracked files of the repository, extracts their entities and
replaces the named snapshot wholesale. The "current" snapshot powers bare
entity-name lookups in sem history and ad-hoc SQL via sem query.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := setupEnv()
		if err != nil {
			fail(err)
		}

		files, err := env.bridge.ListFiles()
		if err != nil {
			fail(err)
		}

		registry := parser.NewDefaultRegistry()
		var entities []model.Entity
		for _, file := range files {
			if err := cmd.Context().Err(); err != nil {
				failf("save cancelled")
			}
			content, err := env.bridge.ReadWorkingFile(cmd.Context(), file)
			if err != nil {
				continue
			}
			plugin := registry.GetPlugin(file)
			entities = append(entities, plugin.ExtractEntities(content, file)...)
		}

		db, err := storage.Open(env.bridge.RepoRoot(), env.logger)
		if err != nil {
			fail(err)
		}
		defer db.Close()

		headSha, _ := env.bridge.HeadSha()
		if err := db.ClearSnapshot(saveSnapshot); err != nil {
			fail(err)
		}
		if err := db.SaveEntities(entities, saveSnapshot, headSha); err != nil {
			fail(err)
		}
		if err := db.SetMetadata("last_save_sha", headSha); err != nil {
			fail(err)
		}

		fmt.Printf("saved %d entities from %d files to snapshot %q\n",
			len(entities), len(files), snapshotName())
	},
}

func snapshotName() string {
	if saveSnapshot == "" {
		return "current"
	}
	return saveSnapshot
}

func init() {
	saveCmd.Flags().StringVar(&saveSnapshot, "snapshot", "current", "snapshot name")
	rootCmd.AddCommand(saveCmd)
}
