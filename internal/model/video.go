package model

import "time"

// PlaylistVideo 播放列表中的单个视频
type PlaylistVideo struct {
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"publishedAt"`
	Thumbnail   string    `json:"thumbnail"` // medium 分辨率缩略图
}

// VideoInfo 单个视频信息（手动绑定题解时使用）
type VideoInfo struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"` // high，缺失时回退 default
}

// WatchURL 视频观看地址
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
