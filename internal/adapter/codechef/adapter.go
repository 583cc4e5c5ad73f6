package codechef

import (
	"context"
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
)

// istZone CodeChef 非 ISO 时间字段为印度标准时间
var istZone = time.FixedZone("IST", 5*3600+30*60)

// CodeChef 常见时间格式
var timeFormats = []string{
	"02 Jan 2006  15:04:05",
	"02 Jan 2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func init() {
	adapter.Register(model.PlatformCodechef, NewCodechefAdapter)
}

type Adapter struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewCodechefAdapter(cfg *config.PlatformConfig, logger *logrus.Logger) interfaces.PlatformAdapter {
	timeout, proxy, ua := cfg.HTTPOptions()
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(httpclient.Options{Timeout: timeout, Proxy: proxy, UserAgent: ua}, logger),
		logger:     logger,
	}
}

// GetName ========== 实现PlatformAdapter接口 ==========
func (a *Adapter) GetName() string {
	return "CodeChef"
}

func (a *Adapter) GetType() model.PlatformType {
	return model.PlatformCodechef
}

func (a *Adapter) FetchUpcoming(ctx context.Context) ([]*model.PlatformRawContest, error) {
	resp, err := a.fetch(ctx, string(model.PhaseUpcoming))
	if err != nil {
		return nil, err
	}
	return a.wrap(resp.FutureContests, model.PhaseUpcoming), nil
}

func (a *Adapter) FetchPast(ctx context.Context) ([]*model.PlatformRawContest, error) {
	resp, err := a.fetch(ctx, string(model.PhasePast))
	if err != nil {
		return nil, err
	}
	return a.wrap(resp.PastContests, model.PhasePast), nil
}

// FetchAll 一次请求同时取 future_contests 与 past_contests
func (a *Adapter) FetchAll(ctx context.Context) ([]*model.PlatformRawContest, error) {
	resp, err := a.fetch(ctx, "all")
	if err != nil {
		return nil, err
	}
	return append(a.wrap(resp.FutureContests, model.PhaseUpcoming), a.wrap(resp.PastContests, model.PhasePast)...), nil
}

func (a *Adapter) fetch(ctx context.Context, op string) (*model.CodechefResponse, error) {
	var resp model.CodechefResponse
	if err := httpclient.GetJSON(ctx, a.httpClient, a.cfg.BaseURL, &resp); err != nil {
		return nil, adapter.FetchError(model.PlatformCodechef, op, err)
	}
	if resp.Status != "success" {
		return nil, &model.ProviderFetchError{
			Platform: model.PlatformCodechef,
			Op:       op,
			Err:      fmt.Errorf("status %q: %s", resp.Status, resp.Message),
		}
	}
	return &resp, nil
}

func (a *Adapter) wrap(list []model.CodechefContest, phase model.ContestPhase) []*model.PlatformRawContest {
	raws := make([]*model.PlatformRawContest, 0, len(list))
	for _, c := range list {
		raws = append(raws, &model.PlatformRawContest{
			Platform: model.PlatformCodechef,
			ID:       c.ContestCode,
			Phase:    phase,
			Data:     c,
		})
	}
	a.logger.Infof("成功获取CodeChef %s比赛共%d条", phase, len(raws))
	return raws
}

// ConvertToContest 使用平台给出的结束时间，时长 = 结束 - 开始
func (a *Adapter) ConvertToContest(raw *model.PlatformRawContest) (*model.Contest, error) {
	cc, ok := raw.Data.(model.CodechefContest)
	if !ok {
		return nil, fmt.Errorf("RawContest数据类型错误: %T", raw.Data)
	}
	start, err := parseTime(cc.ContestStartDateISO, cc.ContestStartDate)
	if err != nil {
		return nil, &model.ValidationError{Platform: model.PlatformCodechef, ContestID: cc.ContestCode, Reason: "contestStartDate: " + err.Error()}
	}
	end, err := parseTime(cc.ContestEndDateISO, cc.ContestEndDate)
	if err != nil {
		return nil, &model.ValidationError{Platform: model.PlatformCodechef, ContestID: cc.ContestCode, Reason: "contestEndDate: " + err.Error()}
	}
	var url string
	if cc.ContestCode != "" {
		url = "https://www.codechef.com/" + cc.ContestCode
	}
	return normalizer.Normalize(normalizer.ContestFields{
		Platform:        model.PlatformCodechef,
		ContestID:       cc.ContestCode,
		ContestName:     strings.TrimSpace(cc.ContestName),
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: normalizer.DurationBetween(start, end),
		ContestURL:      url,
	})
}

// parseTime 优先解析 ISO 字段，否则按 IST 解析普通字段；两者都为空返回零值（交给规范化校验）
func parseTime(iso, plain string) (time.Time, error) {
	if iso = strings.TrimSpace(iso); iso != "" {
		t, err := time.Parse(time.RFC3339, iso)
		if err == nil {
			return t, nil
		}
	}
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeFormats {
		if t, err := time.ParseInLocation(layout, plain, istZone); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析时间 %q", plain)
}
