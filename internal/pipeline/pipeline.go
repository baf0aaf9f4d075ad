// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one extraction: locate the world, scan its store,
// close the store, select records and write them to disk.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/destruc7i0n/extract-mcstructure/internal/journal"
	"github.com/destruc7i0n/extract-mcstructure/internal/materialize"
	"github.com/destruc7i0n/extract-mcstructure/internal/scan"
	"github.com/destruc7i0n/extract-mcstructure/internal/selection"
	"github.com/destruc7i0n/extract-mcstructure/internal/world"
	"github.com/destruc7i0n/extract-mcstructure/internal/worlddb"
	"github.com/destruc7i0n/extract-mcstructure/pkg/types"
)

// Extractor holds the collaborators of an extraction run.
type Extractor struct {
	Locator world.Locator

	// Journal records runs and backs up deleted records. Nil disables it.
	Journal *journal.Journal

	// Codec validates payloads. Nil means scan.NBTCodec.
	Codec scan.Codec

	Logger *zap.Logger

	// Out receives user-facing progress lines. Nil discards them.
	Out io.Writer
}

// Summary describes a finished run. Status NotFound and Empty are soft
// outcomes: nothing was written and no error is returned.
type Summary struct {
	Status     selection.Status
	World      world.World
	OutputRoot string
	RunID      string
	Available  []string
	Dropped    []*scan.DecodeError
	Deleted    []string
	Result     materialize.BatchResult
}

// Run executes one extraction. Fatal conditions (bad explicit id, unknown
// world, missing behavior pack, store failures) are returned as errors.
func (e *Extractor) Run(ctx context.Context, opts types.ExtractOptions) (*Summary, error) {
	logger := e.logger()

	sel, err := selection.ParseCriterion(opts.Criterion)
	if err != nil {
		return nil, err
	}

	w, err := e.Locator.Find(opts.WorldName)
	if err != nil {
		return nil, err
	}

	root, err := outputRoot(w, opts)
	if err != nil {
		return nil, err
	}
	summary := &Summary{World: w, OutputRoot: root}
	logger.Debug("resolved world", zap.String("name", w.Name), zap.String("root", w.Root), zap.String("output", root))

	res, err := e.scan(w, sel, opts.Delete, logger)
	if err != nil {
		return nil, err
	}
	summary.Dropped = res.Dropped
	summary.Deleted = res.Deleted
	if len(res.Dropped) > 0 {
		fmt.Fprintf(e.out(), "warning: %d record(s) could not be decoded and were skipped\n", len(res.Dropped))
	}

	picked := selection.Select(&res.Records, sel)
	summary.Status = picked.Status
	switch picked.Status {
	case selection.NotFound:
		summary.Available = picked.Available
		fmt.Fprintf(e.out(), "Could not find structure with the id of %q! Available ids: %s\n",
			sel.ID, strings.Join(picked.Available, ", "))
		return summary, nil
	case selection.Empty:
		fmt.Fprintln(e.out(), "No structures found!")
		return summary, nil
	}

	ids := make([]string, len(picked.Records))
	for i, r := range picked.Records {
		ids[i] = r.ID
	}
	fmt.Fprintf(e.out(), "Preparing to save %s\n", strings.Join(ids, ", "))

	run := e.beginRun(ctx, w, opts, logger)
	summary.RunID = run
	if run != "" && len(res.Deleted) > 0 {
		deleted := make([]types.Record, 0, len(res.Deleted))
		for _, id := range res.Deleted {
			if rec, ok := res.Records.Get(id); ok {
				deleted = append(deleted, rec)
			}
		}
		if err := e.Journal.Backup(ctx, run, w.Root, deleted); err != nil {
			logger.Warn("backing up deleted records failed", zap.Error(err))
		}
	}

	summary.Result = materialize.MaterializeBatch(picked.Records, root, opts.Force, e.out())

	if run != "" {
		if err := e.Journal.Record(ctx, run, entries(summary.Result.Outcomes)); err != nil {
			logger.Warn("recording run failed", zap.String("run", run), zap.Error(err))
		}
	}
	return summary, nil
}

// scan reads the world store and closes it before returning, so every
// deletion is durable before any file is written.
func (e *Extractor) scan(w world.World, sel types.Selection, del bool, logger *zap.Logger) (*scan.Result, error) {
	db, err := worlddb.Open(w.Root)
	if err != nil {
		return nil, err
	}
	res, scanErr := scan.Scan(db, scan.Options{
		Selection: sel,
		Delete:    del,
		Codec:     e.Codec,
		Logger:    logger,
	})
	if err := db.Close(); err != nil && scanErr == nil {
		return nil, fmt.Errorf("closing world store: %w", err)
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return res, nil
}

func (e *Extractor) beginRun(ctx context.Context, w world.World, opts types.ExtractOptions, logger *zap.Logger) string {
	if e.Journal == nil {
		return ""
	}
	run, err := e.Journal.BeginRun(ctx, journal.Run{
		WorldName: w.Name,
		WorldRoot: w.Root,
		Criterion: opts.Criterion,
		Force:     opts.Force,
		Delete:    opts.Delete,
	})
	if err != nil {
		logger.Warn("journal unavailable for this run", zap.Error(err))
		return ""
	}
	return run.ID
}

func outputRoot(w world.World, opts types.ExtractOptions) (string, error) {
	switch {
	case opts.OutputDir != "":
		return opts.OutputDir, nil
	case opts.BehaviorPack:
		return w.BehaviorPack()
	default:
		return w.Root, nil
	}
}

func entries(outcomes []materialize.Outcome) []journal.Entry {
	out := make([]journal.Entry, len(outcomes))
	for i, o := range outcomes {
		out[i] = journal.Entry{
			StructureID: o.ID,
			DisplayID:   o.DisplayID,
			Path:        o.Path,
			Status:      o.Status,
			Size:        o.Size,
		}
		if o.Err != nil {
			out[i].Error = o.Err.Error()
		}
	}
	return out
}

func (e *Extractor) out() io.Writer {
	if e.Out == nil {
		return io.Discard
	}
	return e.Out
}
