package demo

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"EsportsSchedule/internal/adapter"
	"EsportsSchedule/internal/config"
	"EsportsSchedule/internal/mapping"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newFetcher(dir string) *Fetcher {
	cfg := &config.LiquipediaConfig{SamplesDir: dir, Wikis: config.DefaultWikis}
	return NewFetcher(cfg, quietLogger()).(*Fetcher)
}

func TestFetcher_ReadsSample(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	body := `{"matches":[{"id":"d1","team1":"Team Vitality","team2":"Team Heretics"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "valorant_demo_lpdb.json"), []byte(body), 0o644))

	f := newFetcher(dir)
	assert.Equal(t, "Demo", f.GetName())
	assert.Equal(t, filepath.Join(dir, "valorant_demo_lpdb.json"), f.SamplePath("valorant"))

	raw, err := f.FetchUpcoming(context.Background(), "valorant", "Team Vitality")
	require.NoError(t, err)
	matches := mapping.NormalizeResponse("valorant", raw, "Team Vitality")
	require.Len(t, matches, 1)
	assert.Equal(t, "Team Heretics", *matches[0].Opponent)
}

func TestFetcher_MissingOrBrokenSampleIsEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "counterstrike_demo_lpdb.json"), []byte("{oops"), 0o644))
	f := newFetcher(dir)

	for _, game := range []string{"league_of_legends", "counter_strike_2"} {
		raw, err := f.FetchUpcoming(context.Background(), game, "Team Vitality")
		require.NoError(t, err, game)
		assert.Equal(t, map[string]interface{}{"matches": []interface{}{}}, raw, game)
	}
}

func TestFetcher_UnknownGame(t *testing.T) {
	t.Parallel()

	_, err := newFetcher(t.TempDir()).FetchUpcoming(context.Background(), "chess", "Team Vitality")
	assert.True(t, errors.Is(err, adapter.ErrUnknownGame))
}

func TestFetcher_BundledSample(t *testing.T) {
	t.Parallel()

	raw, err := newFetcher(filepath.Join("..", "..", "..", "samples")).FetchUpcoming(context.Background(), "valorant", "Team Vitality")
	require.NoError(t, err)
	matches := mapping.NormalizeResponse("valorant", raw, "Team Vitality")
	assert.Len(t, matches, 4)
}
