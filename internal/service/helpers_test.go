package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"ContestSync/internal/config"
	"ContestSync/internal/database"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/repository"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestRepos(t *testing.T) (interfaces.ContestRepository, interfaces.SyncRunRepository) {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", MaxOpenConns: 1}, quietLogger())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewContestRepository(db, quietLogger()), repository.NewSyncRunRepository(db)
}

func newContest(platform model.PlatformType, id, name string, start time.Time) *model.Contest {
	return &model.Contest{
		Platform:        platform,
		ContestID:       id,
		ContestName:     name,
		StartTime:       start,
		EndTime:         start.Add(2 * time.Hour),
		DurationSeconds: 7200,
		ContestURL:      "https://example.com/" + id,
	}
}

func seed(t *testing.T, repo interfaces.ContestRepository, contests ...*model.Contest) []*model.Contest {
	t.Helper()
	out := make([]*model.Contest, 0, len(contests))
	for _, c := range contests {
		saved, err := repo.Upsert(context.Background(), c)
		if err != nil {
			t.Fatalf("seed %s: %v", c.ContestID, err)
		}
		out = append(out, saved)
	}
	return out
}

// fakeAdapter Data 为 model.Contest 时原样转换，为 error 时转换失败
type fakeAdapter struct {
	platform model.PlatformType
	upcoming []*model.PlatformRawContest
	past     []*model.PlatformRawContest
	upErr    error
	pastErr  error
}

func (f *fakeAdapter) GetName() string             { return string(f.platform) }
func (f *fakeAdapter) GetType() model.PlatformType { return f.platform }

func (f *fakeAdapter) FetchUpcoming(context.Context) ([]*model.PlatformRawContest, error) {
	return f.upcoming, f.upErr
}

func (f *fakeAdapter) FetchPast(context.Context) ([]*model.PlatformRawContest, error) {
	return f.past, f.pastErr
}

func (f *fakeAdapter) ConvertToContest(raw *model.PlatformRawContest) (*model.Contest, error) {
	switch d := raw.Data.(type) {
	case model.Contest:
		c := d
		return &c, nil
	case error:
		return nil, d
	default:
		return nil, fmt.Errorf("unexpected data %T", raw.Data)
	}
}

func rawOf(c *model.Contest) *model.PlatformRawContest {
	return &model.PlatformRawContest{Platform: c.Platform, ID: c.ContestID, Data: *c}
}

func invalidRaw(platform model.PlatformType, id string) *model.PlatformRawContest {
	return &model.PlatformRawContest{
		Platform: platform,
		ID:       id,
		Data:     error(&model.ValidationError{Platform: platform, ContestID: id, Fields: []string{"contestStartDate"}}),
	}
}

type fakeProvider struct {
	adapters []interfaces.PlatformAdapter
}

func (p *fakeProvider) Adapters() []interfaces.PlatformAdapter { return p.adapters }

func (p *fakeProvider) GetAdapter(platform model.PlatformType) (interfaces.PlatformAdapter, error) {
	for _, a := range p.adapters {
		if a.GetType() == platform {
			return a, nil
		}
	}
	return nil, errors.New("adapter not registered")
}

type fakeVideoSource struct {
	lists map[string][]*model.PlaylistVideo
	errs  map[string]error
}

func (f *fakeVideoSource) PlaylistItems(_ context.Context, playlistID string) ([]*model.PlaylistVideo, error) {
	if err := f.errs[playlistID]; err != nil {
		return nil, err
	}
	return f.lists[playlistID], nil
}

type fakeVideoInfo struct {
	videos map[string]*model.VideoInfo
	err    error
}

func (f *fakeVideoInfo) VideoInfo(_ context.Context, videoID string) (*model.VideoInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.videos[videoID], nil
}
