package codeforces

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ContestSync/internal/adapter"
	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/normalizer"
	"ContestSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// phaseBefore 尚未开始的比赛
const phaseBefore = "BEFORE"

func init() {
	adapter.Register(model.PlatformCodeforces, NewCodeforcesAdapter)
}

type Adapter struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewCodeforcesAdapter(cfg *config.PlatformConfig, logger *logrus.Logger) interfaces.PlatformAdapter {
	timeout, proxy, ua := cfg.HTTPOptions()
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(httpclient.Options{Timeout: timeout, Proxy: proxy, UserAgent: ua}, logger),
		logger:     logger,
	}
}

// GetName ========== 实现PlatformAdapter接口 ==========
func (a *Adapter) GetName() string {
	return "Codeforces"
}

func (a *Adapter) GetType() model.PlatformType {
	return model.PlatformCodeforces
}

// FetchUpcoming contest.list 中 phase=BEFORE 的比赛
func (a *Adapter) FetchUpcoming(ctx context.Context) ([]*model.PlatformRawContest, error) {
	resp, err := a.fetch(ctx, string(model.PhaseUpcoming))
	if err != nil {
		return nil, err
	}
	return a.split(resp, model.PhaseUpcoming), nil
}

// FetchPast contest.list 中已开始/已结束的比赛
func (a *Adapter) FetchPast(ctx context.Context) ([]*model.PlatformRawContest, error) {
	resp, err := a.fetch(ctx, string(model.PhasePast))
	if err != nil {
		return nil, err
	}
	return a.split(resp, model.PhasePast), nil
}

// FetchAll 只请求一次 contest.list（平台限制每 2 秒 1 次调用），在内存中按 phase 拆分
func (a *Adapter) FetchAll(ctx context.Context) ([]*model.PlatformRawContest, error) {
	resp, err := a.fetch(ctx, "all")
	if err != nil {
		return nil, err
	}
	return append(a.split(resp, model.PhaseUpcoming), a.split(resp, model.PhasePast)...), nil
}

func (a *Adapter) fetch(ctx context.Context, op string) (*model.CodeforcesResponse, error) {
	var resp model.CodeforcesResponse
	if err := httpclient.GetJSON(ctx, a.httpClient, a.cfg.BaseURL, &resp); err != nil {
		return nil, adapter.FetchError(model.PlatformCodeforces, op, err)
	}
	if resp.Status != "OK" {
		return nil, &model.ProviderFetchError{
			Platform: model.PlatformCodeforces,
			Op:       op,
			Err:      fmt.Errorf("status %q: %s", resp.Status, resp.Comment),
		}
	}
	return &resp, nil
}

func (a *Adapter) split(resp *model.CodeforcesResponse, phase model.ContestPhase) []*model.PlatformRawContest {
	raws := make([]*model.PlatformRawContest, 0, len(resp.Result))
	for _, c := range resp.Result {
		upcoming := strings.EqualFold(c.Phase, phaseBefore)
		if upcoming != (phase == model.PhaseUpcoming) {
			continue
		}
		raws = append(raws, &model.PlatformRawContest{
			Platform: model.PlatformCodeforces,
			ID:       strconv.FormatInt(c.ID, 10),
			Phase:    phase,
			Data:     c,
		})
	}
	a.logger.Infof("成功获取Codeforces %s比赛共%d条", phase, len(raws))
	return raws
}

// ConvertToContest 时长取平台返回值，结束时间 = 开始时间 + 时长
func (a *Adapter) ConvertToContest(raw *model.PlatformRawContest) (*model.Contest, error) {
	cf, ok := raw.Data.(model.CodeforcesContest)
	if !ok {
		return nil, fmt.Errorf("RawContest数据类型错误: %T", raw.Data)
	}
	var start, end time.Time
	if cf.StartTimeSeconds > 0 {
		start = time.Unix(cf.StartTimeSeconds, 0).UTC()
		if cf.DurationSeconds > 0 {
			end = start.Add(time.Duration(cf.DurationSeconds) * time.Second)
		}
	}
	var contestID, url string
	if cf.ID > 0 {
		contestID = cf.Type + strconv.FormatInt(cf.ID, 10)
		url = fmt.Sprintf("https://codeforces.com/contest/%d", cf.ID)
	}
	return normalizer.Normalize(normalizer.ContestFields{
		Platform:        model.PlatformCodeforces,
		ContestID:       contestID,
		ContestName:     strings.TrimSpace(cf.Name),
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: cf.DurationSeconds,
		ContestURL:      url,
	})
}
