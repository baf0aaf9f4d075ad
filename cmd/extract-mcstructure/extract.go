// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/destruc7i0n/extract-mcstructure/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <world_name> <structure_id>",
	Short: "Save structures from a world as .mcstructure files",
	Long: `Extract scans the world's database for saved structures and writes the
selected one (or every one, with "all") to
structures/<namespace>/<folder>/<name>.mcstructure.

An id without a namespace is looked up as mystructure:<id>. Existing files are
skipped unless --force is given. With --delete the extracted records are
removed from the world after the scan; they are backed up in the journal.`,
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	del, _ := cmd.Flags().GetBool("delete")
	bp, _ := cmd.Flags().GetBool("behavior-pack")
	outDir, _ := cmd.Flags().GetString("output-dir")

	ex, cleanup, err := newExtractor(cmd, journalOptional)
	if err != nil {
		return err
	}
	defer cleanup()

	summary, err := ex.Run(context.Background(), types.ExtractOptions{
		WorldName:    args[0],
		Criterion:    args[1],
		Force:        force,
		Delete:       del,
		BehaviorPack: bp,
		OutputDir:    outDir,
	})
	if err != nil {
		return err
	}
	if summary.Result.HasFailures() {
		return fmt.Errorf("%d structure(s) could not be written", summary.Result.Failed)
	}
	return nil
}

func init() {
	extractCmd.Flags().Bool("force", false, "overwrite existing structure files")
	extractCmd.Flags().Bool("delete", false, "remove the extracted records from the world")
	extractCmd.Flags().Bool("behavior-pack", false, "write into the world's first behavior pack instead of the world folder")
	extractCmd.Flags().String("output-dir", "", "write under this directory instead of the world or behavior pack")
	extractCmd.MarkFlagsMutuallyExclusive("behavior-pack", "output-dir")

	rootCmd.AddCommand(extractCmd)
}
