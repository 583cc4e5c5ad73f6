package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"ContestSync/internal/adapter"
	_ "ContestSync/internal/adapter/codechef"
	_ "ContestSync/internal/adapter/codeforces"
	_ "ContestSync/internal/adapter/leetcode"
	"ContestSync/internal/cache"
	"ContestSync/internal/config"
	"ContestSync/internal/database"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/repository"
	"ContestSync/internal/service"
	"ContestSync/internal/youtube"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// app 一次命令执行所需的全部组件
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	db     *gorm.DB
	cache  *cache.VideoCache

	contests    interfaces.ContestRepository
	runs        interfaces.SyncRunRepository
	syncSvc     *service.SyncService
	solutionSvc *service.SolutionService
	contestSvc  *service.ContestService
}

type commandContext struct {
	configFlag *string

	appOnce sync.Once
	app     *app
	appErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureApp 首次调用时加载配置、连接数据库并组装服务
func (c *commandContext) ensureApp(ctx context.Context) (*app, error) {
	c.appOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.LoadConfig(path)
		if err != nil {
			c.appErr = err
			return
		}
		c.app, c.appErr = buildApp(ctx, cfg)
	})
	return c.app, c.appErr
}

func (c *commandContext) close() error {
	if c.app == nil {
		return nil
	}
	if c.app.cache != nil {
		_ = c.app.cache.Close()
	}
	if sqlDB, err := c.app.db.DB(); err == nil {
		return sqlDB.Close()
	}
	return nil
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库表结构迁移失败: %w", err)
	}
	logger.Info("数据库表结构检查完成（不存在则已创建）")

	videoCache, err := cache.NewVideoCache(ctx, cfg.Redis, logger)
	if err != nil {
		logger.WithError(err).Warn("Redis 不可用，视频信息不缓存")
		videoCache = nil
	}
	var yc youtube.VideoCache
	if videoCache != nil {
		yc = videoCache
	}
	videos := youtube.NewClient(cfg.YouTube, yc, logger)

	registry := adapter.NewPlatformRegistry(cfg, logger)
	if registry.GetPlatformCount() == 0 {
		logger.Warn("没有可用的平台适配器，刷新将不会拉取任何比赛")
	}
	contests := repository.NewContestRepository(db, logger)
	runs := repository.NewSyncRunRepository(db)

	return &app{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		cache:       videoCache,
		contests:    contests,
		runs:        runs,
		syncSvc:     service.NewSyncService(registry, contests, runs, logger, cfg.Sync.UpsertConcurrency),
		solutionSvc: service.NewSolutionService(contests, runs, videos, cfg.YouTube.Playlists, logger),
		contestSvc:  service.NewContestService(contests, videos, logger),
	}, nil
}

func newLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}
	logger.SetLevel(level)
	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
