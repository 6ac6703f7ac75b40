package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"EsportsSchedule/internal/api"

	"github.com/sirupsen/logrus"
)

type serveCmd struct {
	RefreshOnStart bool          `help:"Run one fetch cycle before accepting requests."`
	Refresh        time.Duration `help:"Override schedule.refresh_interval (0 disables background refresh)." default:"-1ns"`
	NoRefreshAPI   bool          `help:"Disable POST /api/schedule/refresh."`
}

func (s *serveCmd) Run(g *globalCmd) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	interval := a.cfg.Schedule.RefreshInterval
	if s.Refresh >= 0 {
		interval = s.Refresh
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if s.RefreshOnStart {
		if _, err := a.schedule.RunCycle(ctx); err != nil {
			a.logger.WithError(err).Warn("启动时抓取失败，继续提供旧快照")
		}
	}
	if interval > 0 {
		go refreshLoop(ctx, a, interval)
	}

	var runner api.CycleRunner
	if !s.NoRefreshAPI {
		runner = a.schedule
	}
	handler := api.NewScheduleHandler(a.repo, runner, a.logger)
	router := api.NewRouter(&a.cfg.Server, handler, a.logger)

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.logger.WithField("addr", srv.Addr).Info("服务启动成功")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("收到退出信号，关闭服务")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// refreshLoop 后台定时刷新快照，单次失败只记日志
func refreshLoop(ctx context.Context, a *app, interval time.Duration) {
	a.logger.WithField("interval", interval.String()).Info("后台定时刷新已开启")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := a.schedule.RunCycle(ctx)
			if err != nil {
				a.logger.WithError(err).Warn("后台刷新失败")
				continue
			}
			a.logger.WithFields(logrus.Fields{
				"run_id":  report.RunID,
				"matches": len(report.Snapshot.Matches),
			}).Debug("后台刷新完成")
		}
	}
}
