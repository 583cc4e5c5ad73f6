package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"ContestSync/internal/model"
	"ContestSync/internal/utils/httpclient"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/sirupsen/logrus"
)

// feedItems 读取播放列表 Atom 订阅（最多约 15 条最新视频）
func (c *Client) feedItems(ctx context.Context, playlistID string) ([]*model.PlaylistVideo, error) {
	feedURL := c.cfg.FeedURL + "?" + url.Values{"playlist_id": {playlistID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构建请求失败: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取播放列表%s订阅失败: %w", playlistID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("获取播放列表%s订阅失败: %w", playlistID, &httpclient.StatusError{StatusCode: resp.StatusCode})
	}

	feed, err := c.feedParser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("解析播放列表%s订阅失败: %w", playlistID, err)
	}

	videos := make([]*model.PlaylistVideo, 0, len(feed.Items))
	for _, item := range feed.Items {
		v := feedVideo(item)
		if v == nil {
			c.logger.WithField("title", item.Title).Debug("订阅条目缺少视频ID，跳过")
			continue
		}
		videos = append(videos, v)
	}
	c.logger.WithFields(logrus.Fields{"playlist": playlistID, "videos": len(videos)}).Debug("播放列表订阅获取完成")
	return videos, nil
}

func feedVideo(item *gofeed.Item) *model.PlaylistVideo {
	id := extensionValue(item.Extensions, "yt", "videoId")
	if id == "" {
		id, _ = ExtractVideoID(item.Link)
	}
	if id == "" {
		return nil
	}
	v := &model.PlaylistVideo{
		VideoID:     id,
		Title:       item.Title,
		Description: item.Description,
		Thumbnail:   "https://i.ytimg.com/vi/" + id + "/mqdefault.jpg", // 订阅中的 media:thumbnail 为 hq，统一取 medium
	}
	if item.PublishedParsed != nil {
		v.PublishedAt = item.PublishedParsed.UTC()
	}
	if groups := item.Extensions["media"]["group"]; len(groups) > 0 {
		g := groups[0]
		if v.Description == "" {
			if desc := g.Children["description"]; len(desc) > 0 {
				v.Description = desc[0].Value
			}
		}
	}
	return v
}

func extensionValue(exts ext.Extensions, prefix, name string) string {
	if vals := exts[prefix][name]; len(vals) > 0 {
		return vals[0].Value
	}
	return ""
}
