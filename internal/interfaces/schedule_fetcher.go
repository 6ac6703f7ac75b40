package interfaces

import (
	"context"

	"EsportsSchedule/internal/config"
	"EsportsSchedule/internal/model"

	"github.com/sirupsen/logrus"
)

// ScheduleFetcher 所有上游数据源必须实现的核心接口
type ScheduleFetcher interface {
	GetName() string // 数据源名称
	// FetchUpcoming 拉取某个游戏下俱乐部的赛程，返回解码后的原始 JSON（map/list），不做归一化
	FetchUpcoming(ctx context.Context, game, club string) (interface{}, error)
}

// Factory 数据源工厂函数签名
// 入参：上游配置、日志实例
// 出参：实现ScheduleFetcher接口的实例
type Factory func(cfg *config.LiquipediaConfig, logger *logrus.Logger) ScheduleFetcher

// SnapshotRepository 快照读写接口
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *model.Snapshot) error
	Load(ctx context.Context) (*model.Snapshot, error)
	LoadRaw(ctx context.Context) ([]byte, error)
}
