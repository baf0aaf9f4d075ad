// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/destruc7i0n/extract-mcstructure/pkg/types"
)

func testJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(types.JournalConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "state", "journal.db")})
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_ReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(types.JournalConfig{Path: path})
	require.NoError(t, err)
	_, err = j.BeginRun(context.Background(), Run{WorldName: "W", WorldRoot: "/w", Criterion: "all"})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j, err = Open(types.JournalConfig{Path: path})
	require.NoError(t, err)
	defer j.Close()
	_, err = j.BeginRun(context.Background(), Run{WorldName: "W", WorldRoot: "/w", Criterion: "all"})
	require.NoError(t, err)
}

func TestBeginRun_AssignsIDAndTime(t *testing.T) {
	j := testJournal(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return fixed }

	run, err := j.BeginRun(context.Background(), Run{WorldName: "W", WorldRoot: "/w", Criterion: "mystructure:a"})
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
	assert.Equal(t, fixed, run.StartedAt)

	other, err := j.BeginRun(context.Background(), Run{WorldName: "W", WorldRoot: "/w", Criterion: "all"})
	require.NoError(t, err)
	assert.NotEqual(t, run.ID, other.ID)
}

func TestBackup_RoundTrip(t *testing.T) {
	ctx := context.Background()
	j := testJournal(t)

	run, err := j.BeginRun(ctx, Run{WorldName: "W", WorldRoot: "/worlds/w", Criterion: "all", Delete: true})
	require.NoError(t, err)

	payload := []byte{10, 0, 0, 3, 4, 0, 'n', 'a', 'm', 'e', 1, 0, 0, 0, 0}
	require.NoError(t, j.Backup(ctx, run.ID, "/worlds/w", []types.Record{
		{ID: "mystructure:house", Payload: payload},
		{ID: "mystructure:empty", Payload: []byte{}},
	}))

	b, err := j.LatestBackup(ctx, "/worlds/w", "mystructure:house")
	require.NoError(t, err)
	assert.Equal(t, run.ID, b.RunID)
	assert.Equal(t, payload, b.Record.Payload)
	assert.Equal(t, "mystructure:house", b.Record.ID)

	b, err = j.LatestBackup(ctx, "/worlds/w", "mystructure:empty")
	require.NoError(t, err)
	assert.Empty(t, b.Record.Payload)
}

func TestLatestBackup_PrefersNewest(t *testing.T) {
	ctx := context.Background()
	j := testJournal(t)

	first, err := j.BeginRun(ctx, Run{WorldName: "W", WorldRoot: "/w", Criterion: "all"})
	require.NoError(t, err)
	require.NoError(t, j.Backup(ctx, first.ID, "/w", []types.Record{{ID: "a:b", Payload: []byte("old")}}))

	second, err := j.BeginRun(ctx, Run{WorldName: "W", WorldRoot: "/w", Criterion: "all"})
	require.NoError(t, err)
	require.NoError(t, j.Backup(ctx, second.ID, "/w", []types.Record{{ID: "a:b", Payload: []byte("new")}}))

	b, err := j.LatestBackup(ctx, "/w", "a:b")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), b.Record.Payload)
	assert.Equal(t, second.ID, b.RunID)
}

func TestLatestBackup_Missing(t *testing.T) {
	j := testJournal(t)
	_, err := j.LatestBackup(context.Background(), "/w", "a:b")
	assert.ErrorIs(t, err, ErrNoBackup)
}

func TestLatestBackup_ScopedToWorld(t *testing.T) {
	ctx := context.Background()
	j := testJournal(t)
	run, err := j.BeginRun(ctx, Run{WorldName: "W", WorldRoot: "/w1", Criterion: "all"})
	require.NoError(t, err)
	require.NoError(t, j.Backup(ctx, run.ID, "/w1", []types.Record{{ID: "a:b", Payload: []byte("x")}}))

	_, err = j.LatestBackup(ctx, "/w2", "a:b")
	assert.ErrorIs(t, err, ErrNoBackup)
}

func TestRecordAndHistory(t *testing.T) {
	ctx := context.Background()
	j := testJournal(t)

	run, err := j.BeginRun(ctx, Run{WorldName: "Castle", WorldRoot: "/w", Criterion: "all", Force: true})
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, run.ID, []Entry{
		{StructureID: "mystructure:a", DisplayID: "mystructure:a", Path: "/out/a.mcstructure", Status: types.MaterializeSaved, Size: 10},
		{StructureID: "mystructure:b", DisplayID: "mystructure:b", Path: "/out/b.mcstructure", Status: types.MaterializeSkipped, Size: 4},
		{StructureID: "x:y:z", Status: types.MaterializeFailed, Error: "malformed structure id"},
	}))

	hist, err := j.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "x:y:z", hist[0].Entry.StructureID)
	assert.Equal(t, types.MaterializeFailed, hist[0].Entry.Status)
	assert.Equal(t, "malformed structure id", hist[0].Entry.Error)
	assert.Empty(t, hist[0].Entry.Path)
	assert.Equal(t, "mystructure:b", hist[1].Entry.StructureID)
	assert.Equal(t, "Castle", hist[1].Run.WorldName)
	assert.True(t, hist[1].Run.Force)
	assert.False(t, hist[1].Run.Delete)
	assert.Equal(t, run.StartedAt.Unix(), hist[1].Run.StartedAt.Unix())
}

func TestHistory_Empty(t *testing.T) {
	hist, err := testJournal(t).History(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, hist)
}
