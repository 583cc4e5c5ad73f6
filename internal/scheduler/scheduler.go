// Package scheduler 在服务进程内按固定间隔触发全量刷新与题解匹配
package scheduler

import (
	"context"
	"sync"
	"time"

	"ContestSync/internal/model"

	"github.com/sirupsen/logrus"
)

// Refresher 全平台刷新（service.SyncService）
type Refresher interface {
	RefreshAll(ctx context.Context) *model.RefreshReport
}

// SolutionAttacher 题解匹配（service.SolutionService）
type SolutionAttacher interface {
	AttachSolutions(ctx context.Context) *model.SolutionReport
}

// Scheduler 定时任务：先刷新比赛，再匹配题解
type Scheduler struct {
	refresher Refresher
	solutions SolutionAttacher
	interval  time.Duration
	logger    *logrus.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	runs   int
}

func NewScheduler(refresher Refresher, solutions SolutionAttacher, interval time.Duration, logger *logrus.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		refresher: refresher,
		solutions: solutions,
		interval:  interval,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start interval<=0 时不启动
func (s *Scheduler) Start() {
	if s.interval <= 0 {
		s.logger.Info("未配置 sync.interval，进程内定时刷新已关闭")
		return
	}
	s.logger.WithField("interval", s.interval).Info("定时刷新已启动")
	s.wg.Add(1)
	go s.loop()
}

// Stop 取消进行中的任务并等待退出
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	s.logger.Info("定时刷新已停止")
}

// Runs 已完成的轮次
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(s.ctx)
		}
	}
}

// RunOnce 刷新全部平台后匹配题解
func (s *Scheduler) RunOnce(ctx context.Context) {
	started := time.Now()
	refresh := s.refresher.RefreshAll(ctx)
	if ctx.Err() != nil {
		return
	}
	solutions := s.solutions.AttachSolutions(ctx)

	saved, failed := refresh.Totals()
	updated, unmatched := solutions.Totals()
	s.logger.WithFields(logrus.Fields{
		"saved":     saved,
		"failed":    failed,
		"solutions": updated,
		"unmatched": unmatched,
		"elapsed":   time.Since(started).Round(time.Millisecond),
	}).Info("定时刷新完成")

	s.mu.Lock()
	s.runs++
	s.mu.Unlock()
}
