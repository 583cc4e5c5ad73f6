package main

import (
	"strings"
	"testing"
	"time"

	"ContestSync/internal/config"
	"ContestSync/internal/model"

	"github.com/sirupsen/logrus"
)

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, []columnAlignment{alignLeft, alignRight})
	if !strings.Contains(out, "only") || !strings.Contains(out, "A") {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Error("empty headers should render nothing")
	}
}

func TestRenderContests(t *testing.T) {
	start := time.Date(2024, 1, 7, 2, 30, 0, 0, time.UTC)
	c := &model.Contest{
		ID:              7,
		Platform:        model.PlatformLeetcode,
		ContestID:       "weekly-contest-379",
		ContestName:     "Weekly Contest 379",
		StartTime:       start,
		DurationSeconds: 5400,
	}
	if err := c.SetSolution(&model.SolutionVideoInfo{URL: "https://www.youtube.com/watch?v=abc"}); err != nil {
		t.Fatal(err)
	}
	out := renderContests([]*model.Contest{c})
	for _, want := range []string{"weekly-contest-379", "2024-01-07 02:30:00", "1h30m0s", "watch?v=abc"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFilterPlatform(t *testing.T) {
	list := []*model.Contest{
		{ContestID: "a", Platform: model.PlatformLeetcode},
		{ContestID: "b", Platform: model.PlatformCodechef},
		{ContestID: "c", Platform: model.PlatformLeetcode},
	}
	got := filterPlatform(list, model.PlatformLeetcode)
	if len(got) != 2 || got[0].ContestID != "a" || got[1].ContestID != "c" {
		t.Errorf("filterPlatform = %v", got)
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(config.LogConfig{Level: "debug", Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T", logger.Formatter)
	}
	if _, err := newLogger(config.LogConfig{Level: "loud"}); err == nil {
		t.Error("invalid level accepted")
	}
}

func TestPurgeRequiresConfirmation(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"purge"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("purge without --yes = %v", err)
	}
}
