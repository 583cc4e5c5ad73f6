package service

import (
	"context"
	"time"

	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SolutionService 根据题解播放列表的视频标题匹配比赛并写入题解视频
type SolutionService struct {
	repo      interfaces.ContestRepository
	runRepo   interfaces.SyncRunRepository
	videos    interfaces.VideoSource
	playlists map[string]string // 平台 → 播放列表ID
	logger    *logrus.Logger
}

func NewSolutionService(repo interfaces.ContestRepository, runRepo interfaces.SyncRunRepository, videos interfaces.VideoSource, playlists map[string]string, logger *logrus.Logger) *SolutionService {
	return &SolutionService{
		repo:      repo,
		runRepo:   runRepo,
		videos:    videos,
		playlists: playlists,
		logger:    logger,
	}
}

// AttachSolutions 依次处理 LeetCode / Codeforces / CodeChef 播放列表；单个视频失败不影响整批
func (s *SolutionService) AttachSolutions(ctx context.Context) *model.SolutionReport {
	report := &model.SolutionReport{RunUUID: uuid.NewString(), StartedAt: time.Now().UTC()}
	for _, platform := range model.SolutionPlatforms {
		stats := &model.SolutionStats{Platform: platform}
		report.Platforms = append(report.Platforms, stats)

		videos, err := s.playlistVideos(ctx, platform)
		if err != nil {
			stats.Errors++
			s.logger.WithError(err).WithField("platform", platform).Error("获取题解播放列表失败，按空列表处理")
			continue
		}
		stats.Videos = len(videos)
		for _, v := range videos {
			s.attach(ctx, platform, v, stats)
		}
		s.logger.WithFields(logrus.Fields{
			"platform":  platform,
			"videos":    stats.Videos,
			"updated":   stats.Updated,
			"not_found": stats.NotFound,
			"unparsed":  stats.Unparsed,
			"errors":    stats.Errors,
		}).Info("题解视频匹配完成")
	}
	report.FinishedAt = time.Now().UTC()

	updated, failed := report.Totals()
	recordRun(ctx, s.runRepo, s.logger, model.SyncRunSolutions, report.RunUUID, report.StartedAt, report.FinishedAt, updated, failed, report.Platforms)
	return report
}

// PlaylistVideos 三个题解播放列表的原始视频；单个列表失败记为空列表
func (s *SolutionService) PlaylistVideos(ctx context.Context) map[model.PlatformType][]*model.PlaylistVideo {
	out := make(map[model.PlatformType][]*model.PlaylistVideo, len(model.SolutionPlatforms))
	for _, platform := range model.SolutionPlatforms {
		videos, err := s.playlistVideos(ctx, platform)
		if err != nil {
			s.logger.WithError(err).WithField("platform", platform).Error("获取题解播放列表失败")
		}
		if videos == nil {
			videos = []*model.PlaylistVideo{}
		}
		out[platform] = videos
	}
	return out
}

func (s *SolutionService) playlistVideos(ctx context.Context, platform model.PlatformType) ([]*model.PlaylistVideo, error) {
	playlistID := s.playlists[string(platform)]
	if playlistID == "" {
		s.logger.WithField("platform", platform).Warn("未配置题解播放列表，跳过")
		return nil, nil
	}
	return s.videos.PlaylistItems(ctx, playlistID)
}

func (s *SolutionService) attach(ctx context.Context, platform model.PlatformType, v *model.PlaylistVideo, stats *model.SolutionStats) {
	log := s.logger.WithFields(logrus.Fields{"platform": platform, "video_id": v.VideoID, "title": v.Title})

	contest, parsed, err := s.findContest(ctx, platform, v.Title)
	switch {
	case err != nil:
		stats.Errors++
		log.WithError(err).Error("查询比赛失败")
		return
	case !parsed:
		stats.Unparsed++
		log.Debug("无法从视频标题解析比赛")
		return
	case contest == nil:
		stats.NotFound++
		log.Info("未找到视频对应的比赛")
		return
	}

	if err := contest.SetSolution(&model.SolutionVideoInfo{
		Title:     v.Title,
		URL:       model.WatchURL(v.VideoID),
		Thumbnail: v.Thumbnail,
	}); err != nil {
		stats.Errors++
		log.WithError(err).Error("题解视频序列化失败")
		return
	}
	if _, err := s.repo.Upsert(ctx, contest); err != nil {
		stats.Errors++
		log.WithError(err).Error("写入题解视频失败")
		return
	}
	stats.Updated++
	log.WithField("contest_id", contest.ContestID).Debug("已写入题解视频")
}

// findContest parsed=false 表示标题不符合该平台的命名规则
func (s *SolutionService) findContest(ctx context.Context, platform model.PlatformType, title string) (*model.Contest, bool, error) {
	switch platform {
	case model.PlatformLeetcode:
		id, ok := leetcodeContestID(title)
		if !ok {
			return nil, false, nil
		}
		c, err := s.repo.GetByID(ctx, id, platform)
		return c, true, err
	case model.PlatformCodeforces:
		name, ok := codeforcesContestName(title)
		if !ok {
			return nil, false, nil
		}
		c, err := s.repo.GetByName(ctx, name, platform)
		return c, true, err
	case model.PlatformCodechef:
		id, ok := codechefContestID(title)
		if !ok {
			return nil, false, nil
		}
		c, err := s.repo.GetByID(ctx, id, platform)
		return c, true, err
	default:
		return nil, false, nil
	}
}
