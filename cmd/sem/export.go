package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sem/internal/export"
	"sem/internal/storage"
)

var (
	exportOut      string
	exportSnapshot string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a zstd-compressed JSON snapshot of the store",
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

		out, err := os.Create(exportOut)
		if err != nil {
			fail(err)
		}
		defer out.Close()

		if err := export.Write(db, exportSnapshot, out); err != nil {
			os.Remove(exportOut)
			fail(err)
		}
		fmt.Printf("exported snapshot %q to %s\n", exportSnapshot, exportOut)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "sem-export.json.zst", "output file")
	exportCmd.Flags().StringVar(&exportSnapshot, "snapshot", "current", "snapshot name")
	rootCmd.AddCommand(exportCmd)
}
