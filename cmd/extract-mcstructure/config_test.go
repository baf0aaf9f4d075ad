// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// setConfig overrides viper keys for one test and restores them afterwards.
func setConfig(t *testing.T, kv map[string]any) {
	t.Helper()
	for k, v := range kv {
		prev := viper.Get(k)
		viper.Set(k, v)
		t.Cleanup(func() { viper.Set(k, prev) })
	}
}

// unwritableJournal points the journal below a regular file so it cannot be created.
func unwritableJournal(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	setConfig(t, map[string]any{
		"worlds_dir":      dir,
		"journal.enabled": true,
		"journal.path":    filepath.Join(blocker, "journal.db"),
	})
}

func observeLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.WarnLevel)
	prev := logger
	logger = zap.New(core)
	t.Cleanup(func() { logger = prev })
	return logs
}

func TestNewExtractor_OptionalJournalFallsBack(t *testing.T) {
	unwritableJournal(t)
	logs := observeLogger(t)

	ex, cleanup, err := newExtractor(extractCmd, journalOptional)
	require.NoError(t, err)
	defer cleanup()

	assert.Nil(t, ex.Journal)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "journal unavailable")
}

func TestNewExtractor_RequiredJournalFails(t *testing.T) {
	unwritableJournal(t)
	observeLogger(t)

	_, _, err := newExtractor(restoreCmd, journalRequired)
	require.Error(t, err)
}

func TestNewExtractor_OpensJournal(t *testing.T) {
	dir := t.TempDir()
	setConfig(t, map[string]any{
		"worlds_dir":      dir,
		"journal.enabled": true,
		"journal.path":    filepath.Join(dir, "journal.db"),
	})

	ex, cleanup, err := newExtractor(extractCmd, journalOptional)
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, ex.Journal)

	ex, cleanup, err = newExtractor(listCmd, journalNone)
	require.NoError(t, err)
	defer cleanup()
	assert.Nil(t, ex.Journal)
}
