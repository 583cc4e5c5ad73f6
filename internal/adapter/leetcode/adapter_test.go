package leetcode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"ContestSync/internal/config"
	"ContestSync/internal/model"

	"github.com/sirupsen/logrus"
)

var pageNoRe = regexp.MustCompile(`pageNo: (\d+)`)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestAdapter(t *testing.T, handler http.HandlerFunc, pages int) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.PlatformConfig{BaseURL: srv.URL, Timeout: 5, Pages: pages, PageSize: 2}
	return NewLeetcodeAdapter(cfg, quietLogger()).(*Adapter)
}

func readQuery(t *testing.T, r *http.Request) string {
	t.Helper()
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Errorf("decode body: %v", err)
	}
	return body.Query
}

func TestFetchUpcomingAndConvert(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if q := readQuery(t, r); !strings.Contains(q, "upcomingContests") {
			t.Errorf("unexpected query %q", q)
		}
		fmt.Fprint(w, `{"data":{"upcomingContests":[{"title":"Weekly Contest 380","titleSlug":"weekly-contest-380","startTime":1704594600}]}}`)
	}, 1)

	raws, err := a.FetchUpcoming(context.Background())
	if err != nil {
		t.Fatalf("FetchUpcoming: %v", err)
	}
	if len(raws) != 1 || raws[0].ID != "weekly-contest-380" || raws[0].Phase != model.PhaseUpcoming {
		t.Fatalf("unexpected raws: %+v", raws)
	}

	c, err := a.ConvertToContest(raws[0])
	if err != nil {
		t.Fatalf("ConvertToContest: %v", err)
	}
	if c.Platform != model.PlatformLeetcode || c.ContestID != "weekly-contest-380" {
		t.Errorf("unexpected key %s/%s", c.Platform, c.ContestID)
	}
	if c.DurationSeconds != 5400 {
		t.Errorf("duration = %d, want 5400", c.DurationSeconds)
	}
	if !c.EndTime.Equal(c.StartTime.Add(90 * time.Minute)) {
		t.Errorf("end = %v, want start+90m", c.EndTime)
	}
	if c.ContestURL != "https://leetcode.com/contest/weekly-contest-380" {
		t.Errorf("url = %s", c.ContestURL)
	}
}

func TestFetchPastKeepsPageOrder(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		m := pageNoRe.FindStringSubmatch(readQuery(t, r))
		if m == nil {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		page, _ := strconv.Atoi(m[1])
		// 倒序返回，验证拼接按页序而不是完成顺序
		time.Sleep(time.Duration(4-page) * 10 * time.Millisecond)
		fmt.Fprintf(w, `{"data":{"pastContests":{"currentPage":%d,"data":[{"title":"Weekly Contest %d","titleSlug":"weekly-contest-%d","startTime":1700000000}]}}}`, page, page, page)
	}, 3)

	raws, err := a.FetchPast(context.Background())
	if err != nil {
		t.Fatalf("FetchPast: %v", err)
	}
	if len(raws) != 3 {
		t.Fatalf("len = %d, want 3", len(raws))
	}
	for i, raw := range raws {
		if want := fmt.Sprintf("weekly-contest-%d", i+1); raw.ID != want {
			t.Errorf("raws[%d] = %s, want %s", i, raw.ID, want)
		}
		if raw.Phase != model.PhasePast {
			t.Errorf("raws[%d] phase = %s", i, raw.Phase)
		}
	}
}

func TestFetchPastFailsWhenAnyPageFails(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(readQuery(t, r), "pageNo: 2") {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"data":{"pastContests":{"data":[]}}}`)
	}, 3)

	_, err := a.FetchPast(context.Background())
	var fe *model.ProviderFetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want ProviderFetchError", err)
	}
	if fe.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", fe.StatusCode)
	}
}

func TestGraphQLErrorIsFetchError(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":[{"message":"rate limited"}]}`)
	}, 1)

	_, err := a.FetchUpcoming(context.Background())
	var fe *model.ProviderFetchError
	if !errors.As(err, &fe) || fe.Platform != model.PlatformLeetcode {
		t.Fatalf("err = %v, want leetcode ProviderFetchError", err)
	}
}

func TestConvertRejectsMissingSlug(t *testing.T) {
	a := &Adapter{logger: quietLogger()}
	_, err := a.ConvertToContest(&model.PlatformRawContest{
		Platform: model.PlatformLeetcode,
		Data:     model.LeetcodeContest{Title: "Weekly Contest 1", StartTime: 1700000000},
	})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}
