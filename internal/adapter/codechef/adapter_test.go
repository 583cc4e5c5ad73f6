package codechef

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"ContestSync/internal/config"
	"ContestSync/internal/model"

	"github.com/sirupsen/logrus"
)

func newTestAdapter(t *testing.T, body string) *Adapter {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewCodechefAdapter(&config.PlatformConfig{BaseURL: srv.URL}, l).(*Adapter)
}

func TestFetchAndConvert(t *testing.T) {
	a := newTestAdapter(t, `{"status":"success",
	 "future_contests":[{"contest_code":"START130","contest_name":"Starters 130","contest_start_date_iso":"2024-04-17T20:00:00+05:30","contest_end_date_iso":"2024-04-17T22:00:00+05:30"}],
	 "past_contests":[{"contest_code":"START42","contest_name":"Starters 42","contest_start_date":"01 Jun 2022  20:00:00","contest_end_date":"01 Jun 2022  23:00:00"},
	                  {"contest_code":"START41","contest_name":"Starters 41","contest_start_date":"25 May 2022  20:00:00","contest_end_date":"25 May 2022  23:00:00"}]}`)

	upcoming, err := a.FetchUpcoming(context.Background())
	if err != nil {
		t.Fatalf("FetchUpcoming: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ID != "START130" {
		t.Fatalf("upcoming = %+v", upcoming)
	}
	c, err := a.ConvertToContest(upcoming[0])
	if err != nil {
		t.Fatalf("ConvertToContest: %v", err)
	}
	wantStart := time.Date(2024, 4, 17, 14, 30, 0, 0, time.UTC)
	if !c.StartTime.Equal(wantStart) {
		t.Errorf("start = %v, want %v", c.StartTime, wantStart)
	}
	if c.DurationSeconds != 7200 {
		t.Errorf("duration = %d, want 7200", c.DurationSeconds)
	}
	if c.ContestURL != "https://www.codechef.com/START130" {
		t.Errorf("url = %s", c.ContestURL)
	}

	past, err := a.FetchPast(context.Background())
	if err != nil {
		t.Fatalf("FetchPast: %v", err)
	}
	if len(past) != 2 {
		t.Fatalf("past len = %d", len(past))
	}
	c, err = a.ConvertToContest(past[0])
	if err != nil {
		t.Fatalf("ConvertToContest past: %v", err)
	}
	// 20:00 IST = 14:30 UTC
	if want := time.Date(2022, 6, 1, 14, 30, 0, 0, time.UTC); !c.StartTime.Equal(want) {
		t.Errorf("start = %v, want %v", c.StartTime, want)
	}
	if c.DurationSeconds != 3*3600 {
		t.Errorf("duration = %d", c.DurationSeconds)
	}
}

func TestFailureStatus(t *testing.T) {
	a := newTestAdapter(t, `{"status":"failure","message":"maintenance"}`)
	_, err := a.FetchUpcoming(context.Background())
	var fe *model.ProviderFetchError
	if !errors.As(err, &fe) || fe.Platform != model.PlatformCodechef {
		t.Fatalf("err = %v, want codechef ProviderFetchError", err)
	}
}

func TestMalformedBody(t *testing.T) {
	a := newTestAdapter(t, `not json`)
	_, err := a.FetchPast(context.Background())
	var fe *model.ProviderFetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want ProviderFetchError", err)
	}
}

func TestConvertInvalidRecords(t *testing.T) {
	a := &Adapter{}
	cases := map[string]model.CodechefContest{
		"missing end":   {ContestCode: "X1", ContestName: "X", ContestStartDate: "2024-01-01 10:00:00"},
		"bad date":      {ContestCode: "X2", ContestName: "X", ContestStartDate: "yesterday", ContestEndDate: "2024-01-01 10:00:00"},
		"end not after": {ContestCode: "X3", ContestName: "X", ContestStartDate: "2024-01-01 10:00:00", ContestEndDate: "2024-01-01 10:00:00"},
	}
	for name, cc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := a.ConvertToContest(&model.PlatformRawContest{Data: cc})
			var ve *model.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestFetchAllSingleRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) > 1 {
			fmt.Fprint(w, `{"status":"failure","message":"rate limited"}`)
			return
		}
		fmt.Fprint(w, `{"status":"success",
		 "future_contests":[{"contest_code":"START130","contest_name":"Starters 130","contest_start_date_iso":"2024-04-17T20:00:00+05:30","contest_end_date_iso":"2024-04-17T22:00:00+05:30"}],
		 "past_contests":[{"contest_code":"START42","contest_name":"Starters 42","contest_start_date":"01 Jun 2022  20:00:00","contest_end_date":"01 Jun 2022  23:00:00"}]}`)
	}))
	t.Cleanup(srv.Close)
	l := logrus.New()
	l.SetOutput(io.Discard)
	a := NewCodechefAdapter(&config.PlatformConfig{BaseURL: srv.URL}, l).(*Adapter)

	raws, err := a.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
	if len(raws) != 2 || raws[0].ID != "START130" || raws[0].Phase != model.PhaseUpcoming ||
		raws[1].ID != "START42" || raws[1].Phase != model.PhasePast {
		t.Fatalf("raws = %+v", raws)
	}
}
