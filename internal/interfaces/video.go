package interfaces

import (
	"context"

	"ContestSync/internal/model"
)

// VideoSource 播放列表视频来源（YouTube Data API 或播放列表 RSS）
type VideoSource interface {
	PlaylistItems(ctx context.Context, playlistID string) ([]*model.PlaylistVideo, error)
}

// VideoInfoFetcher 按视频ID获取视频信息
type VideoInfoFetcher interface {
	VideoInfo(ctx context.Context, videoID string) (*model.VideoInfo, error)
}
