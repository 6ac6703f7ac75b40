package api

import (
	"net/http"

	"EsportsSchedule/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter 注册全部路由
func NewRouter(cfg *config.ServerConfig, handler *ScheduleHandler, logger *logrus.Logger) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(logger), cors.New(corsConfig(cfg.AllowOrigins)))

	// 注册ppof 方便调试和监测性能问题（仅 debug 模式）
	if gin.Mode() == gin.DebugMode {
		pprof.Register(r)
	}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/api/schedule")
	})
	r.GET("/health", Health)
	r.GET("/api/schedule", handler.GetSchedule)
	r.POST("/api/schedule/refresh", handler.RefreshSchedule)

	if cfg.PublicDir != "" {
		r.Static("/public", cfg.PublicDir)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:           []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:           []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders:          []string{RequestIDHeader},
		AllowBrowserExtensions: true,
		AllowWildcard:          true,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
