package model

import (
	"fmt"
	"strings"
)

// ValidationError 规范化记录缺字段或字段不自洽，只影响单条记录
type ValidationError struct {
	Platform  PlatformType
	ContestID string
	Fields    []string // 缺失字段
	Reason    string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid contest %s/%s", e.Platform, e.ContestID)
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, ": missing required fields [%s]", strings.Join(e.Fields, ", "))
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}

// ProviderFetchError 平台接口不可达、非成功状态或返回体异常，整个平台本次拉取失败
type ProviderFetchError struct {
	Platform   PlatformType
	Op         string // upcoming/past/...
	StatusCode int    // 非 HTTP 错误时为 0
	Err        error
}

func (e *ProviderFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s %s: unexpected status %d: %v", e.Platform, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s %s: %v", e.Platform, e.Op, e.Err)
}

func (e *ProviderFetchError) Unwrap() error { return e.Err }

// StorageError 持久化失败，原样向上抛出（不重试）
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }
