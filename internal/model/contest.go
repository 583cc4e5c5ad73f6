package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Contest 统一的比赛模型（抹平各平台差异），(contest_id, platform) 唯一
type Contest struct {
	ID                uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ContestID         string          `gorm:"column:contest_id;type:varchar(128);not null;uniqueIndex:uk_contest_platform,priority:1" json:"contestId"`   // 平台内比赛ID
	Platform          PlatformType    `gorm:"column:platform;type:varchar(32);not null;uniqueIndex:uk_contest_platform,priority:2;index" json:"platform"` // 来源平台
	ContestName       string          `gorm:"column:contest_name;type:varchar(256);not null" json:"contestName"`                                          // 比赛名称（不唯一）
	StartTime         time.Time       `gorm:"column:start_time;not null;index" json:"contestStartDate"`                                                   // 开始时间（UTC）
	EndTime           time.Time       `gorm:"column:end_time;not null" json:"contestEndDate"`                                                             // 结束时间（UTC）
	DurationSeconds   int64           `gorm:"column:duration_seconds;not null" json:"contestDuration"`                                                    // 时长（秒）
	ContestURL        string          `gorm:"column:contest_url;type:varchar(512);not null" json:"contestUrl"`                                            // 比赛链接
	SolutionVideoInfo *datatypes.JSON `gorm:"column:solution_video_info" json:"solutionVideoInfo,omitempty"`                                              // 题解视频
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Contest) TableName() string { return "contests" }

// SolutionVideoInfo 比赛题解视频
type SolutionVideoInfo struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

// Solution 解析题解视频，未设置时返回 nil
func (c *Contest) Solution() (*SolutionVideoInfo, error) {
	if c.SolutionVideoInfo == nil || len(*c.SolutionVideoInfo) == 0 {
		return nil, nil
	}
	var info SolutionVideoInfo
	if err := json.Unmarshal(*c.SolutionVideoInfo, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SetSolution 覆盖题解视频；nil 表示本次不携带题解
func (c *Contest) SetSolution(info *SolutionVideoInfo) error {
	if info == nil {
		c.SolutionVideoInfo = nil
		return nil
	}
	raw, err := MarshalSolution(info)
	if err != nil {
		return err
	}
	c.SolutionVideoInfo = &raw
	return nil
}

// MarshalSolution 题解视频序列化为 JSON 列
func MarshalSolution(info *SolutionVideoInfo) (datatypes.JSON, error) {
	b, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// DateRange 按开始时间过滤，闭区间，可单边
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero 未设置任何边界
func (r DateRange) IsZero() bool { return r.From == nil && r.To == nil }

// SearchQuery 比赛搜索条件
type SearchQuery struct {
	Query    string       // 名称/ID 子串，不区分大小写
	Platform PlatformType // 可选
	Page     int
	Limit    int
}

// Pagination 分页信息
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination totalPages = ceil(total/limit)
func NewPagination(total int64, page, limit int) Pagination {
	p := Pagination{Total: total, Page: page, Limit: limit}
	if limit > 0 {
		p.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return p
}

// SearchResult 搜索结果
type SearchResult struct {
	Contests   []*Contest `json:"contests"`
	Pagination Pagination `json:"pagination"`
}
