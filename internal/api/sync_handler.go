package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SyncHandler struct {
	syncService     *service.SyncService
	solutionService *service.SolutionService
	runRepo         interfaces.SyncRunRepository
	logger          *logrus.Logger
}

func NewSyncHandler(syncService *service.SyncService, solutionService *service.SolutionService, runRepo interfaces.SyncRunRepository, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{
		syncService:     syncService,
		solutionService: solutionService,
		runRepo:         runRepo,
		logger:          logger,
	}
}

// UpdateAllContests 刷新全部平台
// GET /update-all-contests
func (h *SyncHandler) UpdateAllContests(c *gin.Context) {
	report := h.syncService.RefreshAll(c.Request.Context())
	respondMessage(c, http.StatusOK, "Contests updated", report)
}

// UpdateSolutionLinks 匹配题解视频
// GET /update-solution-links
func (h *SyncHandler) UpdateSolutionLinks(c *gin.Context) {
	report := h.solutionService.AttachSolutions(c.Request.Context())
	respondMessage(c, http.StatusOK, "Solution links updated", report)
}

// TriggerAll 刷新比赛后匹配题解
// GET /trigger-all
func (h *SyncHandler) TriggerAll(c *gin.Context) {
	refresh := h.syncService.RefreshAll(c.Request.Context())
	solutions := h.solutionService.AttachSolutions(c.Request.Context())
	respondMessage(c, http.StatusOK, "Contests and solution links updated", gin.H{
		"refresh":   refresh,
		"solutions": solutions,
	})
}

// SyncPlatformHandler 同步指定平台
// @Summary 同步平台比赛数据
// @Param platform path string true "平台名称（leetcode/codeforces/codechef）"
// @Success 200 {object} envelope
// @Failure 500 {object} envelope
// @Router /sync/platform/{platform} [post]
func (h *SyncHandler) SyncPlatformHandler(c *gin.Context) {
	platform := model.PlatformType(strings.ToLower(c.Param("platform")))

	stats, err := h.syncService.SyncPlatform(c.Request.Context(), platform)
	if err != nil {
		h.logger.Errorf("同步%s失败: %v", platform, err)
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to sync %s", platform))
		return
	}
	respondMessage(c, http.StatusOK, fmt.Sprintf("%s同步成功", platform), stats)
}

// PlaylistVideos 三个题解播放列表的视频
// GET /get-pcd-videos
func (h *SyncHandler) PlaylistVideos(c *gin.Context) {
	respondOK(c, http.StatusOK, h.solutionService.PlaylistVideos(c.Request.Context()), nil)
}

// ListSyncRuns 最近的运行记录
// GET /sync-runs?limit=20
func (h *SyncHandler) ListSyncRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := h.runRepo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("ListSyncRuns failed")
		respondError(c, http.StatusInternalServerError, "Failed to fetch sync runs")
		return
	}
	respondOK(c, http.StatusOK, runs, nil)
}
