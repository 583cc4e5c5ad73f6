package api

import (
	"errors"
	"net/http"
	"strconv"

	"ContestSync/internal/model"
	"ContestSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const defaultPageLimit = 10

// ContestHandler 提供给前端的比赛查询接口
type ContestHandler struct {
	contests *service.ContestService
	logger   *logrus.Logger
}

func NewContestHandler(contests *service.ContestService, logger *logrus.Logger) *ContestHandler {
	return &ContestHandler{contests: contests, logger: logger}
}

// ListContests 比赛列表
// GET /contests?startDate=2024-01-01&endDate=2024-01-31&page=1&limit=10
func (h *ContestHandler) ListContests(c *gin.Context) {
	r, err := service.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}
	q := service.ListQuery{Range: r}

	pageStr, hasPage := c.GetQuery("page")
	limitStr, hasLimit := c.GetQuery("limit")
	if hasPage || hasLimit {
		q.Page, q.Limit = 1, defaultPageLimit
		if hasPage {
			q.Page = atLeastOne(pageStr)
		}
		if hasLimit {
			q.Limit = atLeastOne(limitStr)
		}
	}

	res, err := h.contests.ListContests(c.Request.Context(), q)
	if err != nil {
		h.logger.WithError(err).Error("ListContests failed")
		respondError(c, http.StatusInternalServerError, "Failed to fetch contests")
		return
	}
	respondOK(c, http.StatusOK, res.Contests, res.Pagination)
}

// SearchContests 按名称/ID搜索
// GET /search-contests?query=weekly&platform=leetcode&page=1&limit=10
func (h *ContestHandler) SearchContests(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		respondError(c, http.StatusBadRequest, "Search query is required")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))

	res, err := h.contests.SearchContests(c.Request.Context(), model.SearchQuery{
		Query:    query,
		Platform: model.PlatformType(c.Query("platform")),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		h.logger.WithError(err).Error("SearchContests failed")
		respondError(c, http.StatusInternalServerError, "Failed to search contests")
		return
	}
	// data: {contests, pagination}
	respondOK(c, http.StatusOK, res, nil)
}

// UpcomingContests 即将开始的比赛
// GET /upcoming-contests
func (h *ContestHandler) UpcomingContests(c *gin.Context) {
	list, err := h.contests.UpcomingContests(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("UpcomingContests failed")
		respondError(c, http.StatusInternalServerError, "Failed to fetch upcoming contests")
		return
	}
	respondOK(c, http.StatusOK, list, nil)
}

type updateSolutionRequest struct {
	ContestID  uint64 `json:"contestId" binding:"required"`
	YoutubeURL string `json:"youtubeUrl" binding:"required"`
}

// UpdateContestSolution 手动绑定题解视频
// POST /update-contest-solution {"contestId": 1, "youtubeUrl": "https://youtu.be/..."}
func (h *ContestHandler) UpdateContestSolution(c *gin.Context) {
	var req updateSolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Contest ID and YouTube URL are required")
		return
	}

	contest, err := h.contests.UpdateContestSolution(c.Request.Context(), req.ContestID, req.YoutubeURL)
	switch {
	case errors.Is(err, service.ErrInvalidYouTubeURL):
		respondError(c, http.StatusBadRequest, "Invalid YouTube URL")
	case errors.Is(err, service.ErrVideoNotFound):
		respondError(c, http.StatusNotFound, "Video not found")
	case errors.Is(err, service.ErrContestNotFound):
		respondError(c, http.StatusNotFound, "Contest not found")
	case err != nil:
		h.logger.WithError(err).WithField("id", req.ContestID).Error("UpdateContestSolution failed")
		respondError(c, http.StatusInternalServerError, "Failed to update contest solution")
	default:
		respondOK(c, http.StatusOK, contest, nil)
	}
}

// DeleteContests 清空比赛表
// DELETE /contests
func (h *ContestHandler) DeleteContests(c *gin.Context) {
	n, err := h.contests.DeleteAllContests(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("DeleteContests failed")
		respondError(c, http.StatusInternalServerError, "Failed to delete contests")
		return
	}
	respondMessage(c, http.StatusOK, "All contests deleted", gin.H{"deleted": n})
}

func atLeastOne(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
