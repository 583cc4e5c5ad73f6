package api

import (
	"net/http"
	"strings"
	"time"

	"ContestSync/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter 注册全部路由
func NewRouter(cfg config.ServerConfig, contests *ContestHandler, sync *SyncHandler, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSOrigin)))

	// debug 模式下注册 pprof，方便调试和监测性能问题
	if cfg.Mode == gin.DebugMode {
		pprof.Register(r)
	}

	r.GET("/", func(c *gin.Context) {
		respondMessage(c, http.StatusOK, "Contest tracker API is running", nil)
	})

	// 比赛查询接口（给前端页面用）
	r.GET("/contests", contests.ListContests)
	r.DELETE("/contests", contests.DeleteContests)
	r.GET("/search-contests", contests.SearchContests)
	r.GET("/upcoming-contests", contests.UpcomingContests)
	r.POST("/update-contest-solution", contests.UpdateContestSolution)

	// 同步与题解匹配
	r.GET("/update-all-contests", sync.UpdateAllContests)
	r.GET("/update-solution-links", sync.UpdateSolutionLinks)
	r.GET("/trigger-all", sync.TriggerAll)
	r.POST("/sync/platform/:platform", sync.SyncPlatformHandler)
	r.GET("/get-pcd-videos", sync.PlaylistVideos)
	r.GET("/sync-runs", sync.ListSyncRuns)

	return r
}

// corsConfig 前端地址，多个用逗号分隔；为空或 * 时允许任意来源（不携带凭证）
func corsConfig(origins string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" && o != "*" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		} else if o == "*" {
			cfg.AllowOrigins = nil
			break
		}
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowCredentials = true
	}
	return cfg
}

// requestLogger 用 logrus 记录访问日志
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Round(time.Microsecond),
		}).Debug("request")
	}
}
