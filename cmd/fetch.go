package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

type fetchCmd struct {
	Games []string `help:"Override schedule.games for this run." sep:","`
	Club  string   `help:"Override schedule.club for this run."`
}

func (f *fetchCmd) Run(g *globalCmd) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	if len(f.Games) > 0 {
		a.cfg.Schedule.Games = f.Games
	}
	if f.Club != "" {
		a.cfg.Schedule.Club = f.Club
		a.cfg.Schedule.ClubAliases = append([]string{f.Club}, a.cfg.Schedule.ClubAliases...)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := a.schedule.RunCycle(ctx)
	if err != nil {
		return err
	}
	a.logger.WithFields(logrus.Fields{
		"run_id":  report.RunID,
		"path":    a.cfg.Schedule.OutputPath,
		"matches": len(report.Snapshot.Matches),
	}).Info("快照已写入")
	return nil
}
