// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package materialize writes structure records to .mcstructure files under
// an output root.
package materialize

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/destruc7i0n/extract-mcstructure/internal/structid"
	"github.com/destruc7i0n/extract-mcstructure/pkg/types"
)

// Outcome describes what happened to one record.
type Outcome struct {
	ID        string                  `json:"id" yaml:"id"`
	DisplayID string                  `json:"display_id,omitempty" yaml:"display_id,omitempty"`
	Path      string                  `json:"path,omitempty" yaml:"path,omitempty"`
	Size      int                     `json:"size" yaml:"size"`
	Status    types.MaterializeStatus `json:"status" yaml:"status"`
	Err       error                   `json:"-" yaml:"-"`
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Saved    int
	Skipped  int
	Failed   int
	Outcomes []Outcome
}

// Total returns the number of records processed.
func (r BatchResult) Total() int {
	return r.Saved + r.Skipped + r.Failed
}

// HasFailures reports whether any record failed to write.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Materialize writes rec to <root>/structures/<namespace>/<folder>/<name>.mcstructure.
// An existing file is left untouched unless force is set; that skip is
// reported on w and is not a failure.
func Materialize(rec types.Record, root string, force bool, w io.Writer) Outcome {
	out := Outcome{ID: rec.ID, Size: len(rec.Payload)}

	id, err := structid.Parse(rec.ID)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", rec.ID, err)
		return out.fail(err)
	}
	out.DisplayID = id.DisplayID()

	dir := filepath.Join(root, id.Dir())
	out.Path = filepath.Join(dir, id.FileName())

	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", rec.ID, err)
		return out.fail(err)
	}

	if _, err := os.Stat(out.Path); err == nil && !force {
		fmt.Fprintf(w, "skipped: %s (%s already exists at %s, use --force to overwrite)\n",
			rec.ID, id.FileName(), out.DisplayID)
		out.Status = types.MaterializeSkipped
		return out
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "failed:  %s (%v)\n", rec.ID, err)
		return out.fail(err)
	}

	if err := os.WriteFile(out.Path, rec.Payload, 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", rec.ID, err)
		return out.fail(err)
	}

	fmt.Fprintf(w, "saved:   %s -> %s\n", rec.ID, out.DisplayID)
	out.Status = types.MaterializeSaved
	return out
}

// MaterializeBatch writes records in order, printing per-record status to
// w followed by a summary.
func MaterializeBatch(records []types.Record, root string, force bool, w io.Writer) BatchResult {
	var result BatchResult
	for _, rec := range records {
		o := Materialize(rec, root, force, w)
		switch o.Status {
		case types.MaterializeSaved:
			result.Saved++
		case types.MaterializeSkipped:
			result.Skipped++
		case types.MaterializeFailed:
			result.Failed++
		}
		result.Outcomes = append(result.Outcomes, o)
	}
	fmt.Fprintf(w, "\nSummary: %d saved, %d skipped, %d failed (total: %d)\n",
		result.Saved, result.Skipped, result.Failed, result.Total())
	return result
}

func (o Outcome) fail(err error) Outcome {
	o.Status = types.MaterializeFailed
	o.Err = err
	return o
}
