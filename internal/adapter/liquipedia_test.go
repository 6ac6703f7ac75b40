package adapter

import (
	"context"
	"errors"
	"io"
	"testing"

	"EsportsSchedule/internal/config"
	"EsportsSchedule/internal/interfaces"
	"EsportsSchedule/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct{ name string }

func (f *fakeFetcher) GetName() string { return f.name }

func (f *fakeFetcher) FetchUpcoming(ctx context.Context, game, club string) (interface{}, error) {
	return map[string]interface{}{"source": f.name, "game": game, "club": club}, nil
}

func fakeFactory(name string) interfaces.Factory {
	return func(cfg *config.LiquipediaConfig, logger *logrus.Logger) interfaces.ScheduleFetcher {
		return &fakeFetcher{name: name}
	}
}

func init() {
	Register(model.SourceLPDB, fakeFactory("LPDB"))
	Register(model.SourceCargo, fakeFactory("Cargo"))
	Register(model.SourceDemo, fakeFactory("Demo"))
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newSelector(apiKey string, demo bool) *Liquipedia {
	cfg := &config.LiquipediaConfig{APIKey: apiKey, DemoMode: demo, Wikis: config.DefaultWikis}
	return NewLiquipedia(cfg, NewFetcherRegistry(cfg, quietLogger()), quietLogger())
}

func TestLiquipedia_Select(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		apiKey  string
		demo    bool
		game    string
		want    string
		wantErr error
	}{
		{name: "demo wins over key", apiKey: "k", demo: true, game: "valorant", want: "Demo"},
		{name: "key selects lpdb", apiKey: "k", game: "valorant", want: "LPDB"},
		{name: "no key valorant", game: "valorant", wantErr: ErrCredentialRequired},
		{name: "no key other wiki uses cargo", game: "league_of_legends", want: "Cargo"},
		{name: "slug is case insensitive", game: " Rocket_League ", want: "Cargo"},
		{name: "unknown game", apiKey: "k", game: "chess", wantErr: ErrUnknownGame},
		{name: "unknown game in demo", demo: true, game: "chess", wantErr: ErrUnknownGame},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fetcher, err := newSelector(tc.apiKey, tc.demo).Select(tc.game)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, fetcher.GetName())
		})
	}
}

func TestLiquipedia_FetchUpcomingDelegates(t *testing.T) {
	t.Parallel()

	l := newSelector("k", false)
	assert.Equal(t, "Liquipedia", l.GetName())

	raw, err := l.FetchUpcoming(context.Background(), "counter_strike_2", "Team Vitality")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"source": "LPDB", "game": "counter_strike_2", "club": "Team Vitality"}, raw)

	_, err = newSelector("", false).FetchUpcoming(context.Background(), "valorant", "Team Vitality")
	assert.True(t, errors.Is(err, ErrCredentialRequired))
}

func TestFetcherRegistry(t *testing.T) {
	t.Parallel()

	cfg := &config.LiquipediaConfig{}
	r := NewFetcherRegistry(cfg, quietLogger())
	assert.Equal(t, []model.SourceType{model.SourceCargo, model.SourceDemo, model.SourceLPDB}, r.ListSources())

	_, err := r.GetFetcher(model.SourceType("smoke-signal"))
	assert.Error(t, err)

	assert.Panics(t, func() { Register(model.SourceType("nil"), nil) })
}

func TestResolveWiki(t *testing.T) {
	t.Parallel()

	cfg := &config.LiquipediaConfig{Wikis: config.DefaultWikis}
	wiki, err := ResolveWiki(cfg, "counter_strike_2")
	require.NoError(t, err)
	assert.Equal(t, "counterstrike", wiki)

	_, err = ResolveWiki(cfg, "dota2")
	assert.True(t, errors.Is(err, ErrUnknownGame))
}
