package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"EsportsSchedule/internal/model"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sp(s string) *string { return &s }

func sampleSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Club:      "Team Vitality",
		UpdatedAt: "2026-10-16T12:00:00Z",
		Matches: []*model.Match{{
			ID:           "valorant-m1",
			Game:         "VALORANT",
			Tournament:   sp("VCT & Friends"),
			BestOf:       float64(3),
			Team:         "Team Vitality",
			Opponent:     sp("Fnatic"),
			StartTimeUTC: sp("2027-01-20T17:00:00Z"),
			Streams:      model.NewStreams(),
			Sources:      []model.Source{{Site: model.SourceSiteLiquipedia}},
		}},
	}
}

func TestFileSnapshotRepository_LoadMissing(t *testing.T) {
	t.Parallel()

	repo := NewFileSnapshotRepository(filepath.Join(t.TempDir(), "schedule.json"))

	_, err := repo.LoadRaw(context.Background())
	assert.True(t, errors.Is(err, ErrSnapshotNotFound))
	_, err = repo.Load(context.Background())
	assert.True(t, errors.Is(err, ErrSnapshotNotFound))
}

func TestFileSnapshotRepository_SaveThenLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "data", "schedule.json")
	repo := NewFileSnapshotRepository(path)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleSnapshot()))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Team Vitality", got.Club)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, "Fnatic", *got.Matches[0].Opponent)
	assert.Equal(t, "VCT & Friends", *got.Matches[0].Tournament)

	raw, err := repo.LoadRaw(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"start_time_utc": "2027-01-20T17:00:00Z"`)
	assert.Contains(t, string(raw), `"stage": null`)
	assert.Contains(t, string(raw), `"twitch": []`)
}

func TestFileSnapshotRepository_FieldOrder(t *testing.T) {
	t.Parallel()

	repo := NewFileSnapshotRepository(filepath.Join(t.TempDir(), "schedule.json"))
	require.NoError(t, repo.Save(context.Background(), sampleSnapshot()))

	raw, err := repo.LoadRaw(context.Background())
	require.NoError(t, err)

	text := string(raw)
	order := []string{`"club"`, `"updated_at"`, `"matches"`, `"id"`, `"game"`, `"tournament"`, `"stage"`,
		`"bo"`, `"team"`, `"opponent"`, `"start_time_utc"`, `"streams"`, `"sources"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(text[last+1:], key)
		require.GreaterOrEqual(t, idx, 0, key)
		last += idx + 1
	}
}

func TestFileSnapshotRepository_EmptyMatchesSerializeAsList(t *testing.T) {
	t.Parallel()

	repo := NewFileSnapshotRepository(filepath.Join(t.TempDir(), "schedule.json"))
	require.NoError(t, repo.Save(context.Background(), &model.Snapshot{Club: "Team Vitality", UpdatedAt: "x"}))

	raw, err := repo.LoadRaw(context.Background())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, sonic.Unmarshal(raw, &decoded))
	assert.Equal(t, []interface{}{}, decoded["matches"])
}

func TestFileSnapshotRepository_ReplaceLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewFileSnapshotRepository(filepath.Join(dir, "schedule.json"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Save(ctx, sampleSnapshot()))
		}()
	}
	wg.Wait()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "schedule.json", entries[0].Name())

	_, err = repo.Load(ctx)
	assert.NoError(t, err)
}

func TestFileSnapshotRepository_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewFileSnapshotRepository(filepath.Join(t.TempDir(), "schedule.json"))
	assert.Error(t, repo.Save(ctx, sampleSnapshot()))
}
