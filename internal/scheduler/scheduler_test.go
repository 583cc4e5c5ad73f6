package scheduler

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"ContestSync/internal/model"

	"github.com/sirupsen/logrus"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) RefreshAll(context.Context) *model.RefreshReport {
	r.add("refresh")
	return &model.RefreshReport{}
}

func (r *recorder) AttachSolutions(context.Context) *model.SolutionReport {
	r.add("solutions")
	return &model.SolutionReport{}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRunOnceOrder(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec, rec, time.Hour, quietLogger())
	s.RunOnce(context.Background())

	calls := rec.snapshot()
	if len(calls) != 2 || calls[0] != "refresh" || calls[1] != "solutions" {
		t.Fatalf("calls = %v", calls)
	}
	if s.Runs() != 1 {
		t.Errorf("runs = %d", s.Runs())
	}
}

func TestStartTicksUntilStopped(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec, rec, 10*time.Millisecond, quietLogger())
	s.Start()

	deadline := time.Now().Add(2 * time.Second)
	for s.Runs() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	s.Stop()
	if s.Runs() < 2 {
		t.Fatalf("runs = %d, want at least 2", s.Runs())
	}

	after := len(rec.snapshot())
	time.Sleep(30 * time.Millisecond)
	if len(rec.snapshot()) != after {
		t.Error("scheduler kept running after Stop")
	}
}

func TestDisabledInterval(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec, rec, 0, quietLogger())
	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop()
	if len(rec.snapshot()) != 0 {
		t.Fatalf("calls = %v, want none", rec.snapshot())
	}
}
