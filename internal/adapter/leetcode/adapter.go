package leetcode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ContestSync/internal/adapter"
	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/normalizer"
	"ContestSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// contestLength LeetCode 接口不返回时长，周赛/双周赛固定 90 分钟
const contestLength = 90 * time.Minute

const (
	defaultPages    = 10
	defaultPageSize = 30
)

const upcomingQuery = `{
  upcomingContests {
    title
    titleSlug
    startTime
    originStartTime
  }
}`

const pastQueryTemplate = `{
  pastContests(pageNo: %d, numPerPage: %d) {
    pageNum
    currentPage
    totalNum
    numPerPage
    data {
      title
      titleSlug
      startTime
      originStartTime
    }
  }
}`

func init() {
	adapter.Register(model.PlatformLeetcode, NewLeetcodeAdapter)
}

type Adapter struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewLeetcodeAdapter(cfg *config.PlatformConfig, logger *logrus.Logger) interfaces.PlatformAdapter {
	timeout, proxy, ua := cfg.HTTPOptions()
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(httpclient.Options{Timeout: timeout, Proxy: proxy, UserAgent: ua}, logger),
		logger:     logger,
	}
}

// GetName ========== 实现PlatformAdapter接口 ==========
func (a *Adapter) GetName() string {
	return "LeetCode"
}

func (a *Adapter) GetType() model.PlatformType {
	return model.PlatformLeetcode
}

// FetchUpcoming 拉取即将开始的周赛/双周赛
func (a *Adapter) FetchUpcoming(ctx context.Context) ([]*model.PlatformRawContest, error) {
	resp, err := a.query(ctx, "upcoming", upcomingQuery)
	if err != nil {
		return nil, err
	}
	raws := a.wrap(resp.Data.UpcomingContests, model.PhaseUpcoming)
	a.logger.Infof("成功获取LeetCode即将开始的比赛共%d条", len(raws))
	return raws, nil
}

// FetchPast 并发拉取固定页数的历史比赛，按页序拼接；任一页失败则整体失败
func (a *Adapter) FetchPast(ctx context.Context) ([]*model.PlatformRawContest, error) {
	pages, pageSize := a.cfg.Pages, a.cfg.PageSize
	if pages <= 0 {
		pages = defaultPages
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	results := make([][]model.LeetcodeContest, pages)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < pages; i++ {
		pageNo := i + 1
		g.Go(func() error {
			resp, err := a.query(gctx, fmt.Sprintf("past page %d", pageNo), fmt.Sprintf(pastQueryTemplate, pageNo, pageSize))
			if err != nil {
				return err
			}
			if resp.Data.PastContests == nil {
				return &model.ProviderFetchError{
					Platform: model.PlatformLeetcode,
					Op:       fmt.Sprintf("past page %d", pageNo),
					Err:      errors.New("响应缺少 pastContests"),
				}
			}
			results[pageNo-1] = resp.Data.PastContests.Data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var raws []*model.PlatformRawContest
	for _, page := range results {
		raws = append(raws, a.wrap(page, model.PhasePast)...)
	}
	a.logger.Infof("成功获取LeetCode历史比赛共%d条（%d页）", len(raws), pages)
	return raws, nil
}

// ConvertToContest 结束时间 = 开始时间 + 90 分钟
func (a *Adapter) ConvertToContest(raw *model.PlatformRawContest) (*model.Contest, error) {
	lc, ok := raw.Data.(model.LeetcodeContest)
	if !ok {
		return nil, fmt.Errorf("RawContest数据类型错误: %T", raw.Data)
	}
	var start time.Time
	if lc.StartTime > 0 {
		start = time.Unix(lc.StartTime, 0).UTC()
	}
	var end time.Time
	if !start.IsZero() {
		end = start.Add(contestLength)
	}
	return normalizer.Normalize(normalizer.ContestFields{
		Platform:        model.PlatformLeetcode,
		ContestID:       lc.TitleSlug,
		ContestName:     strings.TrimSpace(lc.Title),
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: normalizer.DurationBetween(start, end),
		ContestURL:      contestURL(lc.TitleSlug),
	})
}

func (a *Adapter) query(ctx context.Context, op, q string) (*model.LeetcodeGraphQLResponse, error) {
	var resp model.LeetcodeGraphQLResponse
	if err := httpclient.PostJSON(ctx, a.httpClient, a.cfg.BaseURL, map[string]string{"query": q}, &resp); err != nil {
		return nil, adapter.FetchError(model.PlatformLeetcode, op, err)
	}
	if len(resp.Errors) > 0 {
		return nil, &model.ProviderFetchError{
			Platform: model.PlatformLeetcode,
			Op:       op,
			Err:      fmt.Errorf("graphql error: %s", resp.Errors[0].Message),
		}
	}
	return &resp, nil
}

func (a *Adapter) wrap(list []model.LeetcodeContest, phase model.ContestPhase) []*model.PlatformRawContest {
	raws := make([]*model.PlatformRawContest, 0, len(list))
	for _, c := range list {
		raws = append(raws, &model.PlatformRawContest{
			Platform: model.PlatformLeetcode,
			ID:       c.TitleSlug,
			Phase:    phase,
			Data:     c,
		})
	}
	return raws
}

func contestURL(slug string) string {
	if slug == "" {
		return ""
	}
	return "https://leetcode.com/contest/" + slug
}
