// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "List the worlds that can be extracted from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := newLocator()
		if err != nil {
			return err
		}
		worlds, err := loc.List()
		if err != nil {
			return err
		}
		if len(worlds) == 0 {
			fmt.Printf("No worlds found in %s\n", loc.Dir)
			return nil
		}
		for _, w := range worlds {
			fmt.Fprintf(os.Stdout, "%-32s  %s\n", w.Name, w.Root)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(worldsCmd)
}
