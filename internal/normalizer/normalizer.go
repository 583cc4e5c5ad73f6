// Package normalizer 把各平台的比赛字段转换为统一的 model.Contest
package normalizer

import (
	"time"

	"ContestSync/internal/model"
)

// ContestFields 平台适配器转换后的字段，全部必填
type ContestFields struct {
	Platform        model.PlatformType
	ContestID       string
	ContestName     string
	StartTime       time.Time
	EndTime         time.Time
	DurationSeconds int64 // 调用方负责单位（秒）
	ContestURL      string
}

// Normalize 校验必填字段与时间自洽性，生成规范化比赛（纯函数）
func Normalize(f ContestFields) (*model.Contest, error) {
	var missing []string
	if f.Platform == "" {
		missing = append(missing, "platform")
	}
	if f.ContestID == "" {
		missing = append(missing, "contestId")
	}
	if f.ContestName == "" {
		missing = append(missing, "contestName")
	}
	if f.StartTime.IsZero() {
		missing = append(missing, "contestStartDate")
	}
	if f.EndTime.IsZero() {
		missing = append(missing, "contestEndDate")
	}
	if f.DurationSeconds == 0 {
		missing = append(missing, "contestDuration")
	}
	if f.ContestURL == "" {
		missing = append(missing, "contestUrl")
	}
	if len(missing) > 0 {
		return nil, &model.ValidationError{Platform: f.Platform, ContestID: f.ContestID, Fields: missing}
	}

	start := f.StartTime.UTC()
	end := f.EndTime.UTC()
	if !end.After(start) {
		return nil, &model.ValidationError{
			Platform:  f.Platform,
			ContestID: f.ContestID,
			Reason:    "contestEndDate must be after contestStartDate",
		}
	}
	if want := int64(end.Sub(start) / time.Second); want != f.DurationSeconds {
		return nil, &model.ValidationError{
			Platform:  f.Platform,
			ContestID: f.ContestID,
			Reason:    "contestDuration does not match end - start",
		}
	}

	return &model.Contest{
		Platform:        f.Platform,
		ContestID:       f.ContestID,
		ContestName:     f.ContestName,
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: f.DurationSeconds,
		ContestURL:      f.ContestURL,
	}, nil
}

// DurationBetween end - start 的整秒数
func DurationBetween(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Second)
}
