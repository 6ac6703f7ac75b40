package adapter

import (
	"EsportsSchedule/internal/config"
	"EsportsSchedule/internal/interfaces"
	"EsportsSchedule/internal/model"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownGame 游戏 slug 不在 wiki 映射表中
	ErrUnknownGame = errors.New("unknown game")
	// ErrCredentialRequired Valorant wiki 未开放 cargoquery，只能走 LPDB（需要 API key）或演示模式
	ErrCredentialRequired = errors.New("valorant wiki requires an LPDB API key (or enable demo mode)")
)

// credentialOnlyWikis 不开放 Cargo 的 wiki
var credentialOnlyWikis = map[string]bool{"valorant": true}

// Liquipedia 按配置选择具体数据源，本身也实现 ScheduleFetcher
type Liquipedia struct {
	cfg      *config.LiquipediaConfig
	registry *FetcherRegistry
	logger   *logrus.Logger
}

func NewLiquipedia(cfg *config.LiquipediaConfig, registry *FetcherRegistry, logger *logrus.Logger) *Liquipedia {
	return &Liquipedia{cfg: cfg, registry: registry, logger: logger}
}

func (l *Liquipedia) GetName() string {
	return "Liquipedia"
}

// Select 选择数据源：演示模式 > LPDB（有 key）> Cargo（无 key，Valorant 除外）
func (l *Liquipedia) Select(game string) (interfaces.ScheduleFetcher, error) {
	wiki, err := ResolveWiki(l.cfg, game)
	if err != nil {
		return nil, err
	}

	var source model.SourceType
	switch {
	case l.cfg.DemoMode:
		source = model.SourceDemo
	case l.cfg.APIKey != "":
		source = model.SourceLPDB
	case credentialOnlyWikis[wiki]:
		return nil, ErrCredentialRequired
	default:
		source = model.SourceCargo
	}
	return l.registry.GetFetcher(source)
}

func (l *Liquipedia) FetchUpcoming(ctx context.Context, game, club string) (interface{}, error) {
	fetcher, err := l.Select(game)
	if err != nil {
		return nil, err
	}
	l.logger.WithFields(logrus.Fields{
		"game":   game,
		"source": fetcher.GetName(),
	}).Debug("已选择数据源")
	return fetcher.FetchUpcoming(ctx, game, club)
}

// ResolveWiki 供具体数据源使用，未知 slug 返回 ErrUnknownGame
func ResolveWiki(cfg *config.LiquipediaConfig, game string) (string, error) {
	wiki, ok := cfg.WikiFor(game)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownGame, game)
	}
	return wiki, nil
}
