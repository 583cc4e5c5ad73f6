// Package cache 用 Redis 缓存 YouTube 视频信息，避免重复消耗 Data API 配额
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ContestSync/internal/config"
	"ContestSync/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultVideoTTL = 24 * time.Hour

// VideoCache 视频信息缓存
type VideoCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewVideoCache 连接 Redis；未配置地址时返回 nil, nil（不启用缓存）
func NewVideoCache(ctx context.Context, cfg config.RedisConfig, logger *logrus.Logger) (*VideoCache, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}
	ttl := cfg.VideoTTL
	if ttl <= 0 {
		ttl = defaultVideoTTL
	}
	logger.WithField("addr", cfg.Addr).Info("Redis视频缓存已启用")
	return &VideoCache{client: client, ttl: ttl, logger: logger}, nil
}

// VideoKey 视频缓存键
func VideoKey(videoID string) string {
	return "youtube:video:" + videoID
}

// GetVideo 命中返回 (info, true)；未命中或数据损坏返回 (nil, false)
func (c *VideoCache) GetVideo(ctx context.Context, videoID string) (*model.VideoInfo, bool, error) {
	key := VideoKey(videoID)
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("读取缓存 %s 失败: %w", key, err)
	}
	var info model.VideoInfo
	if err := json.Unmarshal(val, &info); err != nil {
		// 数据格式异常，删除后按未命中处理
		c.client.Del(ctx, key)
		c.logger.WithError(err).WithField("key", key).Warn("视频缓存数据损坏，已删除")
		return nil, false, nil
	}
	return &info, true, nil
}

// SetVideo 写入视频信息
func (c *VideoCache) SetVideo(ctx context.Context, info *model.VideoInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("序列化视频信息失败: %w", err)
	}
	if err := c.client.Set(ctx, VideoKey(info.VideoID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("写入缓存失败: %w", err)
	}
	return nil
}

// Close 关闭 Redis 连接
func (c *VideoCache) Close() error {
	return c.client.Close()
}
