package api

import (
	"context"
	"errors"
	"net/http"

	"EsportsSchedule/internal/interfaces"
	"EsportsSchedule/internal/model"
	"EsportsSchedule/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CycleRunner 执行一次抓取周期（由 service.ScheduleService 实现）
type CycleRunner interface {
	RunCycle(ctx context.Context) (*model.CycleReport, error)
}

// ScheduleHandler 提供给前端（浏览器扩展）的赛程接口
type ScheduleHandler struct {
	repo   interfaces.SnapshotRepository
	runner CycleRunner
	logger *logrus.Logger
}

// NewScheduleHandler 创建 ScheduleHandler；runner 为 nil 时刷新接口返回 503
func NewScheduleHandler(repo interfaces.SnapshotRepository, runner CycleRunner, logger *logrus.Logger) *ScheduleHandler {
	return &ScheduleHandler{repo: repo, runner: runner, logger: logger}
}

// GetSchedule 原样返回最新快照
// GET /api/schedule
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	raw, err := h.repo.LoadRaw(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "schedule not generated yet"})
			return
		}
		requestLogger(c, h.logger).WithError(err).Error("读取赛程快照失败")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// RefreshSchedule 立即执行一次抓取周期
// POST /api/schedule/refresh
func (h *ScheduleHandler) RefreshSchedule(c *gin.Context) {
	if h.runner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "refresh is disabled"})
		return
	}

	report, err := h.runner.RunCycle(c.Request.Context())
	if err != nil {
		requestLogger(c, h.logger).WithError(err).Error("手动刷新赛程失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"run_id": report.RunID,
		"games":  report.Games,
	}
	if report.Snapshot != nil {
		resp["matches"] = len(report.Snapshot.Matches)
		resp["updated_at"] = report.Snapshot.UpdatedAt
	}
	c.JSON(http.StatusOK, resp)
}

// Health 存活检查
// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
