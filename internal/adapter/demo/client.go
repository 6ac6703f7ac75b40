package demo

import (
	"EsportsSchedule/internal/adapter"
	"EsportsSchedule/internal/config"
	"EsportsSchedule/internal/interfaces"
	"EsportsSchedule/internal/mapping"
	"EsportsSchedule/internal/model"
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(model.SourceDemo, NewFetcher)
}

// Fetcher 演示模式：读取 <samples_dir>/<wiki>_demo_lpdb.json，不访问网络
type Fetcher struct {
	cfg    *config.LiquipediaConfig
	logger *logrus.Logger
}

func NewFetcher(cfg *config.LiquipediaConfig, logger *logrus.Logger) interfaces.ScheduleFetcher {
	return &Fetcher{cfg: cfg, logger: logger}
}

func (f *Fetcher) GetName() string {
	return "Demo"
}

// SamplePath 样例文件路径
func (f *Fetcher) SamplePath(wiki string) string {
	return filepath.Join(f.cfg.SamplesDir, wiki+"_demo_lpdb.json")
}

func emptyPayload() map[string]interface{} {
	return map[string]interface{}{"matches": []interface{}{}}
}

// FetchUpcoming 样例缺失或损坏时只告警，返回空列表
func (f *Fetcher) FetchUpcoming(ctx context.Context, game, club string) (interface{}, error) {
	wiki, err := adapter.ResolveWiki(f.cfg, game)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := f.SamplePath(wiki)
	logger := f.logger.WithFields(logrus.Fields{"wiki": wiki, "path": path})

	body, err := os.ReadFile(path)
	if err != nil {
		logger.WithError(err).Warn("演示样例读取失败，返回空列表")
		return emptyPayload(), nil
	}
	raw, err := mapping.DecodeJSON(body)
	if err != nil || raw == nil {
		logger.WithError(err).Warn("演示样例解析失败，返回空列表")
		return emptyPayload(), nil
	}

	logger.Info("演示模式：使用本地样例")
	return raw, nil
}
