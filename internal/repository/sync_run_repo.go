package repository

import (
	"context"

	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultRunLimit = 20

type syncRunRepository struct {
	db *gorm.DB
}

func NewSyncRunRepository(db *gorm.DB) interfaces.SyncRunRepository {
	return &syncRunRepository{db: db}
}

// Create 保存运行记录，RunUUID 为空时生成
func (r *syncRunRepository) Create(ctx context.Context, run *model.SyncRun) error {
	if run.RunUUID == "" {
		run.RunUUID = uuid.NewString() // 生成全局唯一ID
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return &model.StorageError{Op: "create sync run", Err: err}
	}
	return nil
}

// ListRecent 最近的运行记录，新的在前
func (r *syncRunRepository) ListRecent(ctx context.Context, limit int) ([]*model.SyncRun, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultRunLimit
	}
	runs := make([]*model.SyncRun, 0)
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, &model.StorageError{Op: "list sync runs", Err: err}
	}
	return runs, nil
}
