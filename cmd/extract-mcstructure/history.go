// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/destruc7i0n/extract-mcstructure/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently extracted structures",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	cfg := journalConfig(cmd)
	if !cfg.Enabled {
		return fmt.Errorf("journal is disabled")
	}
	j, err := journal.Open(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.History(context.Background(), limit)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(entries)
	case "text", "":
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
	}

	if len(entries) == 0 {
		fmt.Println("No history recorded.")
		return nil
	}
	for _, h := range entries {
		fmt.Fprintf(os.Stdout, "%s  %-8s  %-32s  %-20s  %s\n",
			h.Run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			h.Entry.Status, h.Entry.StructureID, h.Run.WorldName, h.Entry.Path)
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	historyCmd.Flags().String("format", "text", "output format: text, json, or yaml")

	rootCmd.AddCommand(historyCmd)
}
