package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"EsportsSchedule/internal/config"
	"EsportsSchedule/internal/interfaces"
	"EsportsSchedule/internal/mapping"
	"EsportsSchedule/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ScheduleService struct {
	cfg     *config.ScheduleConfig
	fetcher interfaces.ScheduleFetcher
	repo    interfaces.SnapshotRepository
	logger  *logrus.Logger
	now     func() time.Time
	mu      sync.Mutex // 同一时间只跑一个周期（后台定时与手动刷新互斥）
}

func NewScheduleService(cfg *config.ScheduleConfig, fetcher interfaces.ScheduleFetcher, repo interfaces.SnapshotRepository, logger *logrus.Logger) *ScheduleService {
	return &ScheduleService{
		cfg:     cfg,
		fetcher: fetcher,
		repo:    repo,
		logger:  logger,
		now:     time.Now,
	}
}

// Policy 当前配置下的未开赛判定策略
func (s *ScheduleService) Policy() UpcomingPolicy {
	return UpcomingPolicy{KeepUndated: s.cfg.KeepUndated, KeepUnparseable: s.cfg.KeepUnparseable}
}

// RunCycle 依次处理每个游戏，单个游戏失败只记日志并贡献 0 场比赛；最后整体替换快照
func (s *ScheduleService) RunCycle(ctx context.Context) (*model.CycleReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.now()
	report := &model.CycleReport{
		RunID: uuid.NewString(),
		Games: make([]model.GameResult, 0, len(s.cfg.Games)),
	}
	runLogger := s.logger.WithFields(logrus.Fields{
		"run_id": report.RunID,
		"club":   s.cfg.Club,
		"source": s.fetcher.GetName(),
	})
	runLogger.WithField("games", s.cfg.Games).Info("开始抓取赛程")

	all := make([]*model.Match, 0)
	for _, game := range s.cfg.Games {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("抓取周期被取消: %w", err)
		}
		matches, result := s.collectGame(ctx, runLogger.WithField("game", game), game)
		report.Games = append(report.Games, result)
		all = append(all, matches...)
	}

	snapshot := BuildSnapshot(s.cfg.Club, all, s.now())
	if err := s.repo.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("保存快照失败: %w", err)
	}
	report.Snapshot = snapshot
	report.Elapsed = s.now().Sub(start)

	runLogger.WithFields(logrus.Fields{
		"matches": len(snapshot.Matches),
		"elapsed": report.Elapsed.String(),
	}).Info("赛程快照已写入")
	return report, nil
}

// collectGame 拉取 → 归一化 → 俱乐部别名过滤 → 未开赛过滤
func (s *ScheduleService) collectGame(ctx context.Context, logger *logrus.Entry, game string) (kept []*model.Match, result model.GameResult) {
	result.Game = game
	defer func() {
		if p := recover(); p != nil {
			logger.WithField("panic", p).Error("处理游戏赛程时发生panic，跳过")
			kept = nil
			result.Kept = 0
			result.Error = fmt.Sprintf("panic: %v", p)
		}
	}()

	raw, err := s.fetcher.FetchUpcoming(ctx, game, s.cfg.Club)
	if err != nil {
		logger.WithError(err).Warn("拉取赛程失败，跳过该游戏")
		result.Error = err.Error()
		return nil, result
	}

	matches := mapping.NormalizeResponse(game, raw, s.cfg.Club)
	result.Fetched = len(matches)
	matches = FilterByClub(matches, s.cfg.ClubAliases)
	logger.WithField("count", len(matches)).Info("归一化完成（未开赛过滤前）")

	kept = FilterUpcoming(matches, s.now(), s.Policy())
	result.Kept = len(kept)
	logger.WithField("count", len(kept)).Info("未开赛过滤完成")
	return kept, result
}

// FilterByClub 保留 team/opponent 文本中含任一别名（忽略大小写）的比赛；
// 一场都不剩时返回原列表
func FilterByClub(matches []*model.Match, aliases []string) []*model.Match {
	if len(aliases) == 0 {
		return matches
	}
	lowered := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			lowered = append(lowered, a)
		}
	}

	filtered := make([]*model.Match, 0, len(matches))
	for _, m := range matches {
		opponent := ""
		if m.Opponent != nil {
			opponent = strings.TrimSpace(*m.Opponent)
		}
		haystack := strings.ToLower(opponent + " " + strings.TrimSpace(m.Team))
		for _, alias := range lowered {
			if strings.Contains(haystack, alias) {
				filtered = append(filtered, m)
				break
			}
		}
	}
	if len(filtered) == 0 {
		return matches
	}
	return filtered
}
