package model

import (
	"time"

	"gorm.io/datatypes"
)

// SyncRun 每次刷新/题解匹配的运行记录（仅用于观测）
type SyncRun struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RunUUID    string         `gorm:"column:run_uuid;type:varchar(64);uniqueIndex;not null" json:"runUuid"`
	Kind       string         `gorm:"column:kind;type:varchar(16);not null;index" json:"kind"` // refresh/solutions
	StartedAt  time.Time      `gorm:"column:started_at;not null" json:"startedAt"`
	FinishedAt time.Time      `gorm:"column:finished_at;not null" json:"finishedAt"`
	Succeeded  int            `gorm:"column:succeeded;not null;default:0" json:"succeeded"`
	Failed     int            `gorm:"column:failed;not null;default:0" json:"failed"`
	Stats      datatypes.JSON `gorm:"column:stats" json:"stats"`
}

func (SyncRun) TableName() string { return "sync_runs" }

const (
	SyncRunRefresh   = "refresh"
	SyncRunSolutions = "solutions"
)

// PlatformSyncStats 单平台刷新统计
type PlatformSyncStats struct {
	Platform  PlatformType `json:"platform"`
	Fetched   int          `json:"fetched"`   // 原始记录数
	Converted int          `json:"converted"` // 规范化成功
	Skipped   int          `json:"skipped"`   // 规范化失败被跳过
	Saved     int          `json:"saved"`     // 入库成功
	Failed    int          `json:"failed"`    // 入库失败
	Error     string       `json:"error,omitempty"`
}

// RefreshReport 一次全量刷新结果
type RefreshReport struct {
	RunUUID    string               `json:"runUuid"`
	StartedAt  time.Time            `json:"startedAt"`
	FinishedAt time.Time            `json:"finishedAt"`
	Platforms  []*PlatformSyncStats `json:"platforms"`
}

// Totals 汇总入库成功/失败数
func (r *RefreshReport) Totals() (saved, failed int) {
	for _, p := range r.Platforms {
		saved += p.Saved
		failed += p.Failed + p.Skipped
		if p.Error != "" {
			failed++
		}
	}
	return saved, failed
}

// SolutionStats 单平台题解匹配统计
type SolutionStats struct {
	Platform PlatformType `json:"platform"`
	Videos   int          `json:"videos"`
	Updated  int          `json:"updated"`
	NotFound int          `json:"notFound"`
	Unparsed int          `json:"unparsed"`
	Errors   int          `json:"errors"`
}

// SolutionReport 一次题解匹配结果
type SolutionReport struct {
	RunUUID    string           `json:"runUuid"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Platforms  []*SolutionStats `json:"platforms"`
}

// Totals 成功数与失败数（未找到+无法解析+出错）
func (r *SolutionReport) Totals() (updated, failed int) {
	for _, p := range r.Platforms {
		updated += p.Updated
		failed += p.NotFound + p.Unparsed + p.Errors
	}
	return updated, failed
}
