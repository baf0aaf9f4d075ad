// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb/opt"
	"go.uber.org/zap"

	"github.com/destruc7i0n/extract-mcstructure/internal/scan"
	"github.com/destruc7i0n/extract-mcstructure/internal/selection"
	"github.com/destruc7i0n/extract-mcstructure/internal/world"
	"github.com/destruc7i0n/extract-mcstructure/internal/worlddb"
	"github.com/destruc7i0n/extract-mcstructure/pkg/types"
)

// ErrJournalDisabled is returned by operations that need the journal when none is configured.
var ErrJournalDisabled = errors.New("journal is disabled")

// ErrRecordExists is returned by Restore when the key is present and force is not set.
var ErrRecordExists = errors.New("structure record already exists")

// List scans the named world without modifying it.
func (e *Extractor) List(worldName string) (world.World, *scan.Result, error) {
	w, err := e.Locator.Find(worldName)
	if err != nil {
		return world.World{}, nil, err
	}
	res, err := e.scan(w, types.Selection{}, false, e.logger())
	if err != nil {
		return world.World{}, nil, err
	}
	return w, res, nil
}

// Restore writes the most recent journal backup of criterion back into the
// named world's store. An existing record is only replaced when force is set.
func (e *Extractor) Restore(ctx context.Context, worldName, criterion string, force bool) error {
	if e.Journal == nil {
		return ErrJournalDisabled
	}
	sel, err := selection.ParseCriterion(criterion)
	if err != nil {
		return err
	}
	if sel.All {
		return fmt.Errorf("restore needs an explicit structure id")
	}

	w, err := e.Locator.Find(worldName)
	if err != nil {
		return err
	}
	backup, err := e.Journal.LatestBackup(ctx, w.Root, sel.ID)
	if err != nil {
		return err
	}

	db, err := worlddb.Open(w.Root)
	if err != nil {
		return err
	}
	defer db.Close()

	key := worlddb.StructureKey(sel.ID)
	exists, err := db.Has(key, nil)
	if err != nil {
		return fmt.Errorf("checking %s: %w", sel.ID, err)
	}
	if exists && !force {
		return fmt.Errorf("%w: %s (use --force to replace it)", ErrRecordExists, sel.ID)
	}
	if err := db.Put(key, backup.Record.Payload, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("restoring %s: %w", sel.ID, err)
	}

	e.logger().Info("restored structure record",
		zap.String("id", sel.ID), zap.String("run", backup.RunID), zap.Int("bytes", len(backup.Record.Payload)))
	fmt.Fprintf(e.out(), "restored: %s (backup from %s)\n", sel.ID, backup.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func (e *Extractor) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
