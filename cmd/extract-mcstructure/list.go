// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/destruc7i0n/extract-mcstructure/internal/scan"
	"github.com/destruc7i0n/extract-mcstructure/internal/structid"
)

var listCmd = &cobra.Command{
	Use:   "list <world_name>",
	Short: "List the structures saved in a world",
	Long: `List scans the world's database without changing it and prints every
saved structure with the id used to load it in game and the output path
extract would write. Records that cannot be decoded are listed separately.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

// listEntry is one row of list output.
type listEntry struct {
	ID        string `json:"id" yaml:"id"`
	DisplayID string `json:"display_id,omitempty" yaml:"display_id,omitempty"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	Size      int    `json:"size" yaml:"size"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// listOutput is the list document for --json and --yaml.
type listOutput struct {
	World      string      `json:"world" yaml:"world"`
	Root       string      `json:"root" yaml:"root"`
	Structures []listEntry `json:"structures" yaml:"structures"`
	Dropped    []listEntry `json:"dropped,omitempty" yaml:"dropped,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")

	ex, cleanup, err := newExtractor(cmd, journalNone)
	if err != nil {
		return err
	}
	defer cleanup()

	w, res, err := ex.List(args[0])
	if err != nil {
		return err
	}

	doc := listOutput{World: w.Name, Root: w.Root, Structures: []listEntry{}}
	for _, rec := range res.Records.Records() {
		e := listEntry{ID: rec.ID, Size: len(rec.Payload)}
		if id, err := structid.Parse(rec.ID); err != nil {
			e.Error = err.Error()
		} else {
			e.DisplayID = id.DisplayID()
			e.Path = id.RelPath()
		}
		doc.Structures = append(doc.Structures, e)
	}
	for _, d := range res.Dropped {
		doc.Dropped = append(doc.Dropped, droppedEntry(d))
	}

	switch {
	case jsonOutput:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case yamlOutput:
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(doc)
	}

	if len(doc.Structures) == 0 {
		fmt.Println("No structures found!")
	} else {
		fmt.Fprintf(os.Stdout, "%-40s  %-40s  %s\n", "ID", "Load as", "Bytes")
		for _, e := range doc.Structures {
			load := e.DisplayID
			if e.Error != "" {
				load = "(invalid id)"
			}
			fmt.Fprintf(os.Stdout, "%-40s  %-40s  %d\n", e.ID, load, e.Size)
		}
		fmt.Fprintf(os.Stdout, "\n%d structures\n", len(doc.Structures))
	}
	for _, d := range doc.Dropped {
		fmt.Fprintf(os.Stdout, "dropped: %s\n", d.Error)
	}
	return nil
}

func droppedEntry(d *scan.DecodeError) listEntry {
	return listEntry{ID: d.ID, Error: d.Error()}
}

func init() {
	listCmd.Flags().Bool("json", false, "output as JSON")
	listCmd.Flags().Bool("yaml", false, "output as YAML")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	rootCmd.AddCommand(listCmd)
}
