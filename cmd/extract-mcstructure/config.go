// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/destruc7i0n/extract-mcstructure/internal/journal"
	"github.com/destruc7i0n/extract-mcstructure/internal/pipeline"
	"github.com/destruc7i0n/extract-mcstructure/internal/world"
	"github.com/destruc7i0n/extract-mcstructure/pkg/types"
)

func worldsConfig() types.WorldsConfig {
	return types.WorldsConfig{
		Dir:      viper.GetString("worlds_dir"),
		Platform: types.Platform(viper.GetString("platform")),
	}
}

func journalConfig(cmd *cobra.Command) types.JournalConfig {
	disabled, _ := cmd.Flags().GetBool("no-journal")
	return types.JournalConfig{
		Enabled: viper.GetBool("journal.enabled") && !disabled,
		Path:    viper.GetString("journal.path"),
	}
}

func newLocator() (world.Locator, error) {
	dir, err := world.ResolveDir(worldsConfig(), runtime.GOOS, os.Getenv)
	if err != nil {
		return world.Locator{}, err
	}
	return world.Locator{Dir: dir}, nil
}

// journalUse says how a subcommand depends on the journal.
type journalUse int

const (
	journalNone journalUse = iota
	// journalOptional opens the journal when enabled and carries on
	// without it if it cannot be opened.
	journalOptional
	// journalRequired fails the command when the journal cannot be opened.
	journalRequired
)

// newExtractor wires the collaborators shared by every subcommand. The
// returned cleanup closes the journal when one was opened.
func newExtractor(cmd *cobra.Command, use journalUse) (*pipeline.Extractor, func(), error) {
	loc, err := newLocator()
	if err != nil {
		return nil, nil, err
	}
	ex := &pipeline.Extractor{Locator: loc, Logger: logger, Out: os.Stdout}
	cleanup := func() {}

	cfg := journalConfig(cmd)
	if use == journalNone || !cfg.Enabled {
		return ex, cleanup, nil
	}
	j, err := journal.Open(cfg)
	if err != nil {
		if use == journalRequired {
			return nil, nil, err
		}
		logger.Warn("journal unavailable, continuing without run history or backups", zap.Error(err))
		return ex, cleanup, nil
	}
	ex.Journal = j
	cleanup = func() { j.Close() }
	return ex, cleanup, nil
}
