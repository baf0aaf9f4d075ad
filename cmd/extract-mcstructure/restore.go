// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <world_name> <structure_id>",
	Short: "Put a deleted structure back into a world",
	Long: `Restore writes the most recent journal backup of a structure deleted with
extract --delete back into the world's database. The world must not be open
in the game. An existing record with the same id is only replaced with --force.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		ex, cleanup, err := newExtractor(cmd, journalRequired)
		if err != nil {
			return err
		}
		defer cleanup()

		return ex.Restore(context.Background(), args[0], args[1], force)
	},
}

func init() {
	restoreCmd.Flags().Bool("force", false, "replace an existing record with the same id")

	rootCmd.AddCommand(restoreCmd)
}
