package repository

import (
	"context"
	"strings"
	"time"

	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultSearchPage  = 1
	defaultSearchLimit = 10
)

// upsertColumns 冲突时覆盖的列；solution_video_info 仅在新记录携带时覆盖
var upsertColumns = []string{"contest_name", "start_time", "end_time", "duration_seconds", "contest_url", "updated_at"}

type contestRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewContestRepository(db *gorm.DB, logger *logrus.Logger) interfaces.ContestRepository {
	return &contestRepository{db: db, logger: logger}
}

// Upsert 按 (contest_id, platform) 单条语句插入或更新，返回落库后的记录
func (r *contestRepository) Upsert(ctx context.Context, c *model.Contest) (*model.Contest, error) {
	row := *c
	row.ID = 0
	row.CreatedAt, row.UpdatedAt = time.Time{}, time.Time{}
	row.StartTime = c.StartTime.UTC()
	row.EndTime = c.EndTime.UTC()

	cols := upsertColumns
	if c.SolutionVideoInfo != nil {
		cols = append(append([]string{}, upsertColumns...), "solution_video_info")
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contest_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(&row).Error; err != nil {
		return nil, &model.StorageError{Op: "upsert " + string(c.Platform) + "/" + c.ContestID, Err: err}
	}

	saved, err := r.GetByID(ctx, c.ContestID, c.Platform)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, &model.StorageError{Op: "upsert " + string(c.Platform) + "/" + c.ContestID, Err: gorm.ErrRecordNotFound}
	}
	return saved, nil
}

// GetByID 按平台内比赛ID查询，不存在返回 nil, nil
func (r *contestRepository) GetByID(ctx context.Context, contestID string, platform model.PlatformType) (*model.Contest, error) {
	return r.first(ctx, "get by id", r.db.WithContext(ctx).
		Where("contest_id = ? AND platform = ?", contestID, platform))
}

// GetByName 四级名称匹配：精确 → 忽略大小写 → 子串 → 双向包含（内存）
func (r *contestRepository) GetByName(ctx context.Context, name string, platform model.PlatformType) (*model.Contest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	lower := strings.ToLower(name)

	tiers := []struct {
		op    string
		query string
		arg   interface{}
	}{
		{"get by name exact", "contest_name = ?", name},
		{"get by name ci", "LOWER(contest_name) = ?", lower},
		{"get by name like", `LOWER(contest_name) LIKE ? ESCAPE '\'`, "%" + escapeLike(lower) + "%"},
	}
	for _, t := range tiers {
		c, err := r.first(ctx, t.op, r.db.WithContext(ctx).Where("platform = ?", platform).Where(t.query, t.arg))
		if err != nil || c != nil {
			return c, err
		}
	}

	// 第四级：平台全部比赛做双向包含
	var all []*model.Contest
	if err := r.db.WithContext(ctx).Where("platform = ?", platform).Order("id ASC").Find(&all).Error; err != nil {
		return nil, &model.StorageError{Op: "get by name scan", Err: err}
	}
	target := collapseName(name)
	var matches []*model.Contest
	for _, c := range all {
		stored := collapseName(c.ContestName)
		if stored == "" {
			continue
		}
		if strings.Contains(stored, target) || strings.Contains(target, stored) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	if len(matches) > 1 {
		r.logger.WithFields(logrus.Fields{
			"platform": platform,
			"name":     name,
			"matches":  len(matches),
			"chosen":   matches[0].ContestID,
		}).Warn("比赛名称模糊匹配命中多条，取最早入库的一条")
	}
	return matches[0], nil
}

// GetAll 按开始时间升序
func (r *contestRepository) GetAll(ctx context.Context, dr model.DateRange) ([]*model.Contest, error) {
	var list []*model.Contest
	if err := applyRange(r.db.WithContext(ctx), dr).Order("start_time ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, &model.StorageError{Op: "get all", Err: err}
	}
	return list, nil
}

// GetPaginated 按开始时间降序分页
func (r *contestRepository) GetPaginated(ctx context.Context, dr model.DateRange, skip, limit int) ([]*model.Contest, error) {
	if skip < 0 {
		skip = 0
	}
	var list []*model.Contest
	if err := applyRange(r.db.WithContext(ctx), dr).
		Order("start_time DESC").Order("id DESC").
		Offset(skip).Limit(limit).
		Find(&list).Error; err != nil {
		return nil, &model.StorageError{Op: "get paginated", Err: err}
	}
	return list, nil
}

func (r *contestRepository) Count(ctx context.Context, dr model.DateRange) (int64, error) {
	var total int64
	if err := applyRange(r.db.WithContext(ctx).Model(&model.Contest{}), dr).Count(&total).Error; err != nil {
		return 0, &model.StorageError{Op: "count", Err: err}
	}
	return total, nil
}

// Search 名称或ID子串匹配（不区分大小写，按字面匹配），按开始时间降序分页
func (r *contestRepository) Search(ctx context.Context, q model.SearchQuery) (*model.SearchResult, error) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = defaultSearchPage
	}
	if limit < 1 {
		limit = defaultSearchLimit
	}
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(q.Query))) + "%"
	filtered := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&model.Contest{}).
			Where(`(LOWER(contest_name) LIKE ? ESCAPE '\' OR LOWER(contest_id) LIKE ? ESCAPE '\')`, pattern, pattern)
		if q.Platform != "" {
			db = db.Where("platform = ?", q.Platform)
		}
		return db
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, &model.StorageError{Op: "search count", Err: err}
	}
	list := make([]*model.Contest, 0)
	if err := filtered().
		Order("start_time DESC").Order("id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&list).Error; err != nil {
		return nil, &model.StorageError{Op: "search", Err: err}
	}
	return &model.SearchResult{Contests: list, Pagination: model.NewPagination(total, page, limit)}, nil
}

// ListUpcoming 开始时间不早于 now 的比赛，升序
func (r *contestRepository) ListUpcoming(ctx context.Context, now time.Time) ([]*model.Contest, error) {
	var list []*model.Contest
	if err := r.db.WithContext(ctx).Where("start_time >= ?", now.UTC()).
		Order("start_time ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, &model.StorageError{Op: "list upcoming", Err: err}
	}
	return list, nil
}

// AttachSolution 按主键覆盖题解视频，记录不存在返回 nil, nil
func (r *contestRepository) AttachSolution(ctx context.Context, id uint64, info *model.SolutionVideoInfo) (*model.Contest, error) {
	var value interface{}
	if info != nil {
		raw, err := model.MarshalSolution(info)
		if err != nil {
			return nil, err
		}
		value = raw
	}
	res := r.db.WithContext(ctx).Model(&model.Contest{}).Where("id = ?", id).Updates(map[string]interface{}{
		"solution_video_info": value,
		"updated_at":          time.Now().UTC(),
	})
	if res.Error != nil {
		return nil, &model.StorageError{Op: "attach solution", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.first(ctx, "attach solution reload", r.db.WithContext(ctx).Where("id = ?", id))
}

// DeleteAll 清空比赛表，返回删除条数
func (r *contestRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Contest{})
	if res.Error != nil {
		return 0, &model.StorageError{Op: "delete all", Err: res.Error}
	}
	return res.RowsAffected, nil
}

// first 取按 id 排序的第一条，不存在返回 nil, nil（避免 First 的 record not found 日志）
func (r *contestRepository) first(ctx context.Context, op string, db *gorm.DB) (*model.Contest, error) {
	var list []*model.Contest
	if err := db.Order("id ASC").Limit(1).Find(&list).Error; err != nil {
		return nil, &model.StorageError{Op: op, Err: err}
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// applyRange 开始时间闭区间过滤，可单边
func applyRange(db *gorm.DB, dr model.DateRange) *gorm.DB {
	if dr.IsZero() {
		return db
	}
	if dr.From != nil {
		db = db.Where("start_time >= ?", dr.From.UTC())
	}
	if dr.To != nil {
		db = db.Where("start_time <= ?", dr.To.UTC())
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义 LIKE 通配符，使查询按字面匹配
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// collapseName 小写并合并连续空白
func collapseName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
