package interfaces

import (
	"context"

	"ContestSync/internal/config"
	"ContestSync/internal/model"

	"github.com/sirupsen/logrus"
)

// PlatformAdapter 所有平台必须实现的核心接口
type PlatformAdapter interface {
	GetName() string                                                        // 平台名称
	GetType() model.PlatformType                                            // 平台类型
	FetchUpcoming(ctx context.Context) ([]*model.PlatformRawContest, error) // 拉取即将开始的比赛
	ConvertToContest(raw *model.PlatformRawContest) (*model.Contest, error) // 转换为规范化比赛
}

// PastContestFetcher 支持拉取历史比赛的平台额外实现
type PastContestFetcher interface {
	FetchPast(ctx context.Context) ([]*model.PlatformRawContest, error)
}

// SnapshotFetcher 一次请求同时返回即将开始与历史比赛的平台实现；
// 实现后同步流程只调用 FetchAll，不再分别调用 FetchUpcoming/FetchPast
type SnapshotFetcher interface {
	FetchAll(ctx context.Context) ([]*model.PlatformRawContest, error)
}

// Factory 平台适配器工厂函数签名
// 入参：平台配置、日志实例
// 出参：实现PlatformAdapter接口的适配器实例
type Factory func(cfg *config.PlatformConfig, logger *logrus.Logger) PlatformAdapter
