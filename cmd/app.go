package main

import (
	"fmt"
	"os"

	"EsportsSchedule/internal/adapter"
	"EsportsSchedule/internal/config"
	"EsportsSchedule/internal/interfaces"
	"EsportsSchedule/internal/repository"
	"EsportsSchedule/internal/service"

	"github.com/sirupsen/logrus"
)

// app 两个子命令共用的依赖
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	repo     interfaces.SnapshotRepository
	schedule *service.ScheduleService
}

func newApp(g *globalCmd) (*app, error) {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig(g.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.Demo {
		cfg.Liquipedia.DemoMode = true
	}

	// 2. 初始化日志
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"club":  cfg.Schedule.Club,
		"games": cfg.Schedule.Games,
		"demo":  cfg.Liquipedia.DemoMode,
	}).Info("配置文件加载成功")
	if !cfg.Liquipedia.DemoMode && cfg.Liquipedia.APIKey == "" {
		logger.Warn("未配置 LIQUIPEDIA_API_KEY，Valorant 无法抓取，其余游戏走 cargoquery")
	}

	// 3. 数据源与快照存储
	registry := adapter.NewFetcherRegistry(&cfg.Liquipedia, logger)
	fetcher := adapter.NewLiquipedia(&cfg.Liquipedia, registry, logger)
	repo := repository.NewFileSnapshotRepository(cfg.Schedule.OutputPath)

	return &app{
		cfg:      cfg,
		logger:   logger,
		repo:     repo,
		schedule: service.NewScheduleService(&cfg.Schedule, fetcher, repo, logger),
	}, nil
}

func newLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("日志级别非法: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}

