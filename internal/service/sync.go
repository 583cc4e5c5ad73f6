package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// AdapterProvider 已初始化的平台适配器集合（adapter.PlatformRegistry）
type AdapterProvider interface {
	Adapters() []interfaces.PlatformAdapter
	GetAdapter(platform model.PlatformType) (interfaces.PlatformAdapter, error)
}

// SyncService 拉取各平台比赛，规范化后入库
type SyncService struct {
	adapters    AdapterProvider
	repo        interfaces.ContestRepository
	runRepo     interfaces.SyncRunRepository
	logger      *logrus.Logger
	concurrency int // 单批次并发入库上限，0 不限
}

func NewSyncService(adapters AdapterProvider, repo interfaces.ContestRepository, runRepo interfaces.SyncRunRepository, logger *logrus.Logger, concurrency int) *SyncService {
	return &SyncService{
		adapters:    adapters,
		repo:        repo,
		runRepo:     runRepo,
		logger:      logger,
		concurrency: concurrency,
	}
}

// RefreshAll 依次刷新全部平台；单个平台失败只记录在报告中，不影响其他平台
func (s *SyncService) RefreshAll(ctx context.Context) *model.RefreshReport {
	report := &model.RefreshReport{RunUUID: uuid.NewString(), StartedAt: time.Now().UTC()}
	for _, a := range s.adapters.Adapters() {
		stats, err := s.refresh(ctx, a)
		if err != nil {
			s.logger.WithError(err).WithField("platform", a.GetType()).Error("平台刷新失败")
		}
		report.Platforms = append(report.Platforms, stats)
	}
	report.FinishedAt = time.Now().UTC()

	saved, failed := report.Totals()
	s.logger.WithFields(logrus.Fields{"run": report.RunUUID, "saved": saved, "failed": failed}).Info("全平台刷新完成")
	recordRun(ctx, s.runRepo, s.logger, model.SyncRunRefresh, report.RunUUID, report.StartedAt, report.FinishedAt, saved, failed, report.Platforms)
	return report
}

// SyncPlatform 只刷新一个平台，拉取失败时返回错误
func (s *SyncService) SyncPlatform(ctx context.Context, platform model.PlatformType) (*model.PlatformSyncStats, error) {
	a, err := s.adapters.GetAdapter(platform)
	if err != nil {
		return nil, err
	}
	started := time.Now().UTC()
	stats, err := s.refresh(ctx, a)
	failed := stats.Failed + stats.Skipped
	if err != nil {
		failed++
	}
	recordRun(ctx, s.runRepo, s.logger, model.SyncRunRefresh, uuid.NewString(), started, time.Now().UTC(), stats.Saved, failed, []*model.PlatformSyncStats{stats})
	if err != nil {
		return stats, fmt.Errorf("%s同步失败: %w", platform, err)
	}
	return stats, nil
}

// refresh 拉取即将开始与历史比赛 → 转换 → 并发入库
func (s *SyncService) refresh(ctx context.Context, a interfaces.PlatformAdapter) (*model.PlatformSyncStats, error) {
	stats := &model.PlatformSyncStats{Platform: a.GetType()}
	log := s.logger.WithField("platform", a.GetType())

	raws, err := fetchRaws(ctx, a)
	if err != nil {
		stats.Error = err.Error()
		return stats, err
	}
	stats.Fetched = len(raws)
	if len(raws) == 0 {
		log.Warn("未拉取到比赛")
		return stats, nil
	}

	// 转换为规范化比赛，单条失败跳过
	contests := make([]*model.Contest, 0, len(raws))
	for _, raw := range raws {
		c, err := a.ConvertToContest(raw)
		if err != nil {
			stats.Skipped++
			log.WithError(err).WithField("contest_id", raw.ID).Warn("比赛数据不完整，跳过")
			continue
		}
		contests = append(contests, c)
	}
	contests = dedupContests(contests)
	stats.Converted = len(contests)

	stats.Saved, stats.Failed = s.saveContests(ctx, contests)
	log.WithFields(logrus.Fields{
		"fetched": stats.Fetched,
		"saved":   stats.Saved,
		"skipped": stats.Skipped,
		"failed":  stats.Failed,
	}).Infof("%s同步完成", a.GetName())
	return stats, nil
}

// fetchRaws 支持单次拉取的平台只请求一次，其余先取即将开始再取历史
func fetchRaws(ctx context.Context, a interfaces.PlatformAdapter) ([]*model.PlatformRawContest, error) {
	if all, ok := a.(interfaces.SnapshotFetcher); ok {
		return all.FetchAll(ctx)
	}
	raws, err := a.FetchUpcoming(ctx)
	if err != nil {
		return nil, err
	}
	if past, ok := a.(interfaces.PastContestFetcher); ok {
		pastRaws, err := past.FetchPast(ctx)
		if err != nil {
			return nil, err
		}
		raws = append(raws, pastRaws...)
	}
	return raws, nil
}

// saveContests 并发 upsert，单条失败只记日志
func (s *SyncService) saveContests(ctx context.Context, contests []*model.Contest) (saved, failed int) {
	var okCount, failCount int64
	g, gctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for _, c := range contests {
		c := c
		g.Go(func() error {
			if _, err := s.repo.Upsert(gctx, c); err != nil {
				atomic.AddInt64(&failCount, 1)
				s.logger.WithError(err).WithFields(logrus.Fields{
					"platform":   c.Platform,
					"contest_id": c.ContestID,
				}).Error("比赛入库失败")
				return nil
			}
			atomic.AddInt64(&okCount, 1)
			return nil
		})
	}
	_ = g.Wait()
	return int(okCount), int(failCount)
}

// dedupContests 同一批次内按比赛ID去重，保留最后出现的一条
func dedupContests(contests []*model.Contest) []*model.Contest {
	if len(contests) == 0 {
		return []*model.Contest{}
	}
	index := make(map[string]int, len(contests))
	unique := make([]*model.Contest, 0, len(contests))
	for _, c := range contests {
		if i, ok := index[c.ContestID]; ok {
			unique[i] = c
			continue
		}
		index[c.ContestID] = len(unique)
		unique = append(unique, c)
	}
	return unique
}

// recordRun 写入运行记录，失败只记日志
func recordRun(ctx context.Context, runRepo interfaces.SyncRunRepository, logger *logrus.Logger, kind, runUUID string, started, finished time.Time, succeeded, failed int, stats interface{}) {
	if runRepo == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		logger.WithError(err).Warn("运行统计序列化失败")
	}
	run := &model.SyncRun{
		RunUUID:    runUUID,
		Kind:       kind,
		StartedAt:  started,
		FinishedAt: finished,
		Succeeded:  succeeded,
		Failed:     failed,
		Stats:      raw,
	}
	if err := runRepo.Create(ctx, run); err != nil {
		logger.WithError(err).WithField("kind", kind).Warn("保存运行记录失败")
	}
}
