package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/youtube"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidYouTubeURL = errors.New("invalid YouTube URL")
	ErrVideoNotFound     = errors.New("video not found")
	ErrContestNotFound   = errors.New("contest not found")
	ErrInvalidDate       = errors.New("invalid date")
)

const defaultListLimit = 10

// ContestService 面向前端的比赛查询与手动绑定题解
type ContestService struct {
	repo   interfaces.ContestRepository
	videos interfaces.VideoInfoFetcher
	logger *logrus.Logger
	now    func() time.Time
}

func NewContestService(repo interfaces.ContestRepository, videos interfaces.VideoInfoFetcher, logger *logrus.Logger) *ContestService {
	return &ContestService{repo: repo, videos: videos, logger: logger, now: time.Now}
}

// ListQuery 比赛列表条件；Page/Limit 都为 0 时不分页
type ListQuery struct {
	Range model.DateRange
	Page  int
	Limit int
}

// ListResult 未分页时 Pagination 为 nil
type ListResult struct {
	Contests   []*model.Contest
	Pagination *model.Pagination
}

// ListContests 不分页按开始时间升序返回全部；分页时按开始时间降序
func (s *ContestService) ListContests(ctx context.Context, q ListQuery) (*ListResult, error) {
	if q.Page == 0 && q.Limit == 0 {
		list, err := s.repo.GetAll(ctx, q.Range)
		if err != nil {
			return nil, err
		}
		return &ListResult{Contests: list}, nil
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultListLimit
	}
	total, err := s.repo.Count(ctx, q.Range)
	if err != nil {
		return nil, err
	}

	// 一页即可容纳全部，按开始时间升序返回
	if int64(limit) >= total {
		list, err := s.repo.GetAll(ctx, q.Range)
		if err != nil {
			return nil, err
		}
		return &ListResult{
			Contests:   list,
			Pagination: &model.Pagination{Total: total, Page: 1, Limit: int(total), TotalPages: 1},
		}, nil
	}

	p := model.NewPagination(total, page, limit)
	skip := (page - 1) * limit
	if int64(skip) >= total {
		return &ListResult{Contests: []*model.Contest{}, Pagination: &p}, nil
	}
	list, err := s.repo.GetPaginated(ctx, q.Range, skip, limit)
	if err != nil {
		return nil, err
	}
	return &ListResult{Contests: list, Pagination: &p}, nil
}

func (s *ContestService) SearchContests(ctx context.Context, q model.SearchQuery) (*model.SearchResult, error) {
	return s.repo.Search(ctx, q)
}

func (s *ContestService) UpcomingContests(ctx context.Context) ([]*model.Contest, error) {
	return s.repo.ListUpcoming(ctx, s.now())
}

// UpdateContestSolution 手动为比赛绑定题解视频
func (s *ContestService) UpdateContestSolution(ctx context.Context, id uint64, youtubeURL string) (*model.Contest, error) {
	youtubeURL = strings.TrimSpace(youtubeURL)
	if !youtube.IsVideoURL(youtubeURL) {
		return nil, ErrInvalidYouTubeURL
	}
	videoID, ok := youtube.ExtractVideoID(youtubeURL)
	if !ok {
		return nil, ErrInvalidYouTubeURL
	}

	info, err := s.videos.VideoInfo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("获取视频信息失败: %w", err)
	}
	if info == nil {
		return nil, ErrVideoNotFound
	}

	contest, err := s.repo.AttachSolution(ctx, id, &model.SolutionVideoInfo{
		Title:     info.Title,
		URL:       model.WatchURL(videoID),
		Thumbnail: info.Thumbnail,
	})
	if err != nil {
		return nil, err
	}
	if contest == nil {
		return nil, ErrContestNotFound
	}
	s.logger.WithFields(logrus.Fields{"id": id, "video_id": videoID}).Info("已手动绑定题解视频")
	return contest, nil
}

// DeleteAllContests 清空比赛表
func (s *ContestService) DeleteAllContests(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.WithField("deleted", n).Warn("已清空比赛表")
	return n, nil
}

// ParseDateRange 解析 YYYY-MM-DD 或 RFC3339；仅日期的结束边界包含当天全天
func ParseDateRange(startDate, endDate string) (model.DateRange, error) {
	var r model.DateRange
	if startDate = strings.TrimSpace(startDate); startDate != "" {
		t, _, err := parseDate(startDate)
		if err != nil {
			return r, err
		}
		r.From = &t
	}
	if endDate = strings.TrimSpace(endDate); endDate != "" {
		t, dateOnly, err := parseDate(endDate)
		if err != nil {
			return r, err
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		r.To = &t
	}
	return r, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), true, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
