// Package youtube 读取题解播放列表并查询单个视频信息
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ContestSync/internal/config"
	"ContestSync/internal/model"
	"ContestSync/internal/utils/httpclient"

	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"
)

// ErrAPIKeyMissing 查询单个视频需要 Data API Key
var ErrAPIKeyMissing = errors.New("youtube api key not configured")

// VideoCache 视频信息缓存（Redis 实现见 internal/cache）
type VideoCache interface {
	GetVideo(ctx context.Context, videoID string) (*model.VideoInfo, bool, error)
	SetVideo(ctx context.Context, info *model.VideoInfo) error
}

type thumbnail struct {
	URL string `json:"url"`
}

type thumbnails struct {
	Default *thumbnail `json:"default"`
	Medium  *thumbnail `json:"medium"`
	High    *thumbnail `json:"high"`
}

type snippet struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PublishedAt string     `json:"publishedAt"`
	Thumbnails  thumbnails `json:"thumbnails"`
	ResourceID  struct {
		VideoID string `json:"videoId"`
	} `json:"resourceId"`
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID      string  `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

// Client YouTube Data API 客户端；未配置 API Key 时播放列表改读 RSS
type Client struct {
	cfg        config.YouTubeConfig
	httpClient *http.Client
	feedParser *gofeed.Parser
	cache      VideoCache
	logger     *logrus.Logger
}

// NewClient cache 可为 nil
func NewClient(cfg config.YouTubeConfig, cache VideoCache, logger *logrus.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: httpclient.NewHTTPClient(httpclient.Options{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
			Proxy:   cfg.Proxy,
		}, logger),
		feedParser: gofeed.NewParser(),
		cache:      cache,
		logger:     logger,
	}
}

// PlaylistItems 播放列表中的视频，按 nextPageToken 翻页直到 max_pages
func (c *Client) PlaylistItems(ctx context.Context, playlistID string) ([]*model.PlaylistVideo, error) {
	if c.cfg.APIKey == "" {
		return c.feedItems(ctx, playlistID)
	}

	maxPages := c.cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}
	maxResults := c.cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	var (
		videos    []*model.PlaylistVideo
		pageToken string
	)
	for page := 0; page < maxPages; page++ {
		q := url.Values{}
		q.Set("part", "snippet")
		q.Set("playlistId", playlistID)
		q.Set("maxResults", strconv.Itoa(maxResults))
		q.Set("key", c.cfg.APIKey)
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var resp playlistItemsResponse
		if err := httpclient.GetJSON(ctx, c.httpClient, c.cfg.BaseURL+"/playlistItems?"+q.Encode(), &resp); err != nil {
			return nil, fmt.Errorf("获取播放列表%s失败: %w", playlistID, err)
		}
		for _, item := range resp.Items {
			s := item.Snippet
			if s.ResourceID.VideoID == "" {
				continue
			}
			published, _ := time.Parse(time.RFC3339, s.PublishedAt)
			videos = append(videos, &model.PlaylistVideo{
				VideoID:     s.ResourceID.VideoID,
				Title:       s.Title,
				Description: s.Description,
				PublishedAt: published,
				Thumbnail:   pickThumbnail(s.Thumbnails.Medium, s.Thumbnails.Default),
			})
		}
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	c.logger.WithFields(logrus.Fields{"playlist": playlistID, "videos": len(videos)}).Debug("播放列表获取完成")
	return videos, nil
}

// VideoInfo 单个视频的标题与缩略图，视频不存在返回 nil, nil
func (c *Client) VideoInfo(ctx context.Context, videoID string) (*model.VideoInfo, error) {
	if c.cache != nil {
		info, ok, err := c.cache.GetVideo(ctx, videoID)
		if err != nil {
			c.logger.WithError(err).WithField("video_id", videoID).Warn("读取视频缓存失败")
		} else if ok {
			return info, nil
		}
	}
	if c.cfg.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}

	q := url.Values{}
	q.Set("id", videoID)
	q.Set("part", "snippet")
	q.Set("key", c.cfg.APIKey)
	var resp videosResponse
	if err := httpclient.GetJSON(ctx, c.httpClient, c.cfg.BaseURL+"/videos?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("获取视频%s信息失败: %w", videoID, err)
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	s := resp.Items[0].Snippet
	info := &model.VideoInfo{
		VideoID:   videoID,
		Title:     s.Title,
		Thumbnail: pickThumbnail(s.Thumbnails.High, s.Thumbnails.Default),
	}

	if c.cache != nil {
		if err := c.cache.SetVideo(ctx, info); err != nil {
			c.logger.WithError(err).WithField("video_id", videoID).Warn("写入视频缓存失败")
		}
	}
	return info, nil
}

func pickThumbnail(candidates ...*thumbnail) string {
	for _, t := range candidates {
		if t != nil && t.URL != "" {
			return t.URL
		}
	}
	return ""
}
