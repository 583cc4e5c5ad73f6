package interfaces

import (
	"context"
	"time"

	"ContestSync/internal/model"
)

// ContestRepository 比赛仓储，唯一持有持久化状态
type ContestRepository interface {
	Upsert(ctx context.Context, contest *model.Contest) (*model.Contest, error)
	GetByID(ctx context.Context, contestID string, platform model.PlatformType) (*model.Contest, error)
	GetByName(ctx context.Context, name string, platform model.PlatformType) (*model.Contest, error)
	GetAll(ctx context.Context, r model.DateRange) ([]*model.Contest, error)
	GetPaginated(ctx context.Context, r model.DateRange, skip, limit int) ([]*model.Contest, error)
	Count(ctx context.Context, r model.DateRange) (int64, error)
	Search(ctx context.Context, q model.SearchQuery) (*model.SearchResult, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]*model.Contest, error)
	AttachSolution(ctx context.Context, id uint64, info *model.SolutionVideoInfo) (*model.Contest, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// SyncRunRepository 运行记录仓储
type SyncRunRepository interface {
	Create(ctx context.Context, run *model.SyncRun) error
	ListRecent(ctx context.Context, limit int) ([]*model.SyncRun, error)
}
