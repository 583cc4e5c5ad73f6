package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"ContestSync/internal/adapter/codechef"
	"ContestSync/internal/adapter/codeforces"
	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
)

func TestRefreshAllIsolatesProviderFailure(t *testing.T) {
	repo, runRepo := newTestRepos(t)
	start := time.Date(2024, 1, 7, 2, 30, 0, 0, time.UTC)

	leetcode := &fakeAdapter{
		platform: model.PlatformLeetcode,
		upcoming: []*model.PlatformRawContest{rawOf(newContest(model.PlatformLeetcode, "weekly-contest-380", "Weekly Contest 380", start))},
		past: []*model.PlatformRawContest{
			rawOf(newContest(model.PlatformLeetcode, "weekly-contest-379", "Weekly Contest 379", start.AddDate(0, 0, -7))),
			invalidRaw(model.PlatformLeetcode, "broken"),
		},
	}
	codeforces := &fakeAdapter{
		platform: model.PlatformCodeforces,
		upErr:    &model.ProviderFetchError{Platform: model.PlatformCodeforces, Op: "upcoming", StatusCode: 503, Err: errors.New("unavailable")},
	}
	svc := NewSyncService(&fakeProvider{adapters: []interfaces.PlatformAdapter{codeforces, leetcode}}, repo, runRepo, quietLogger(), 2)

	report := svc.RefreshAll(context.Background())
	if len(report.Platforms) != 2 {
		t.Fatalf("platforms = %d, want 2", len(report.Platforms))
	}
	cf, lc := report.Platforms[0], report.Platforms[1]
	if cf.Error == "" || cf.Saved != 0 {
		t.Errorf("codeforces stats = %+v, want error recorded", cf)
	}
	if lc.Fetched != 3 || lc.Skipped != 1 || lc.Saved != 2 || lc.Error != "" {
		t.Errorf("leetcode stats = %+v", lc)
	}
	saved, failed := report.Totals()
	if saved != 2 || failed != 2 {
		t.Errorf("totals = %d, %d; want 2, 2", saved, failed)
	}

	n, _ := repo.Count(context.Background(), model.DateRange{})
	if n != 2 {
		t.Errorf("stored = %d, want 2", n)
	}
	runs, err := runRepo.ListRecent(context.Background(), 10)
	if err != nil || len(runs) != 1 || runs[0].Kind != model.SyncRunRefresh || runs[0].RunUUID != report.RunUUID {
		t.Fatalf("runs = %+v, %v", runs, err)
	}
}

func TestRefreshAllTwiceKeepsOneRow(t *testing.T) {
	repo, runRepo := newTestRepos(t)
	cf := newContest(model.PlatformCodeforces, "CF1600", "Codeforces Round 751 (Div. 1)", time.Date(2021, 10, 29, 14, 35, 0, 0, time.UTC))
	a := &fakeAdapter{platform: model.PlatformCodeforces, past: []*model.PlatformRawContest{rawOf(cf), rawOf(cf)}}
	svc := NewSyncService(&fakeProvider{adapters: []interfaces.PlatformAdapter{a}}, repo, runRepo, quietLogger(), 0)

	svc.RefreshAll(context.Background())
	first, _ := repo.GetByID(context.Background(), "CF1600", model.PlatformCodeforces)
	svc.RefreshAll(context.Background())
	second, _ := repo.GetByID(context.Background(), "CF1600", model.PlatformCodeforces)

	if first == nil || second == nil || first.ID != second.ID {
		t.Fatalf("rows = %v, %v; want same row", first, second)
	}
	if n, _ := repo.Count(context.Background(), model.DateRange{}); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestSyncPlatform(t *testing.T) {
	repo, runRepo := newTestRepos(t)
	ok := &fakeAdapter{
		platform: model.PlatformCodechef,
		upcoming: []*model.PlatformRawContest{rawOf(newContest(model.PlatformCodechef, "START130", "Starters 130", time.Now().Add(48*time.Hour)))},
	}
	broken := &fakeAdapter{platform: model.PlatformLeetcode, upErr: errors.New("timeout")}
	svc := NewSyncService(&fakeProvider{adapters: []interfaces.PlatformAdapter{ok, broken}}, repo, runRepo, quietLogger(), 0)
	ctx := context.Background()

	stats, err := svc.SyncPlatform(ctx, model.PlatformCodechef)
	if err != nil || stats.Saved != 1 {
		t.Fatalf("SyncPlatform(codechef) = %+v, %v", stats, err)
	}
	if _, err := svc.SyncPlatform(ctx, model.PlatformLeetcode); err == nil {
		t.Error("expected fetch error to propagate")
	}
	if _, err := svc.SyncPlatform(ctx, model.PlatformCodeforces); err == nil {
		t.Error("expected error for unregistered platform")
	}
	if runs, _ := runRepo.ListRecent(ctx, 10); len(runs) != 2 {
		t.Errorf("runs = %d, want 2", len(runs))
	}
}

func TestDedupContests(t *testing.T) {
	a1 := &model.Contest{ContestID: "a", ContestName: "first"}
	b := &model.Contest{ContestID: "b"}
	a2 := &model.Contest{ContestID: "a", ContestName: "second"}

	got := dedupContests([]*model.Contest{a1, b, a2})
	if len(got) != 2 || got[0] != a2 || got[1] != b {
		t.Fatalf("dedup = %+v", got)
	}
	if got := dedupContests(nil); got == nil || len(got) != 0 {
		t.Errorf("dedup(nil) = %v", got)
	}
}

// rateLimitedServer 第一次请求返回 body，之后的请求都返回 limited
func rateLimitedServer(t *testing.T, body, limited string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) > 1 {
			fmt.Fprint(w, limited)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestRefreshAllRequestsProviderOnce(t *testing.T) {
	repo, runRepo := newTestRepos(t)
	logger := quietLogger()

	cfSrv, cfCalls := rateLimitedServer(t, `{"status":"OK","result":[
	 {"id":2000,"name":"Codeforces Round 1000 (Div. 2)","type":"CF","phase":"BEFORE","startTimeSeconds":1893456000,"durationSeconds":7200},
	 {"id":1600,"name":"Codeforces Round 751 (Div. 1)","type":"CF","phase":"FINISHED","startTimeSeconds":1635500000,"durationSeconds":9000}]}`,
		`{"status":"FAILED","comment":"Call limit exceeded"}`)
	ccSrv, ccCalls := rateLimitedServer(t, `{"status":"success",
	 "future_contests":[{"contest_code":"START130","contest_name":"Starters 130","contest_start_date_iso":"2030-04-17T20:00:00+05:30","contest_end_date_iso":"2030-04-17T22:00:00+05:30"}],
	 "past_contests":[{"contest_code":"START42","contest_name":"Starters 42","contest_start_date":"01 Jun 2022  20:00:00","contest_end_date":"01 Jun 2022  23:00:00"}]}`,
		`{"status":"failure","message":"rate limited"}`)

	adapters := []interfaces.PlatformAdapter{
		codeforces.NewCodeforcesAdapter(&config.PlatformConfig{BaseURL: cfSrv.URL}, logger),
		codechef.NewCodechefAdapter(&config.PlatformConfig{BaseURL: ccSrv.URL}, logger),
	}
	svc := NewSyncService(&fakeProvider{adapters: adapters}, repo, runRepo, logger, 0)

	report := svc.RefreshAll(context.Background())
	for _, p := range report.Platforms {
		if p.Error != "" || p.Saved != 2 {
			t.Errorf("%s stats = %+v, want 2 saved without error", p.Platform, p)
		}
	}
	if cf, cc := atomic.LoadInt32(cfCalls), atomic.LoadInt32(ccCalls); cf != 1 || cc != 1 {
		t.Errorf("requests codeforces=%d codechef=%d, want 1 each", cf, cc)
	}

	ctx := context.Background()
	for _, key := range []struct {
		id       string
		platform model.PlatformType
	}{
		{"CF2000", model.PlatformCodeforces},
		{"CF1600", model.PlatformCodeforces},
		{"START130", model.PlatformCodechef},
		{"START42", model.PlatformCodechef},
	} {
		if c, err := repo.GetByID(ctx, key.id, key.platform); err != nil || c == nil {
			t.Errorf("%s/%s not stored: %v", key.platform, key.id, err)
		}
	}
}
