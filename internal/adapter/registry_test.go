package adapter

import (
	"context"
	"io"
	"testing"

	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"

	"github.com/sirupsen/logrus"
)

const (
	stubPlatform     model.PlatformType = "stubjudge"
	disabledPlatform model.PlatformType = "offjudge"
)

type stubAdapter struct{ platform model.PlatformType }

func (s *stubAdapter) GetName() string             { return string(s.platform) }
func (s *stubAdapter) GetType() model.PlatformType { return s.platform }
func (s *stubAdapter) FetchUpcoming(context.Context) ([]*model.PlatformRawContest, error) {
	return nil, nil
}
func (s *stubAdapter) ConvertToContest(*model.PlatformRawContest) (*model.Contest, error) {
	return nil, nil
}

func stubFactory(platform model.PlatformType) interfaces.Factory {
	return func(*config.PlatformConfig, *logrus.Logger) interfaces.PlatformAdapter {
		return &stubAdapter{platform: platform}
	}
}

func TestPlatformRegistry(t *testing.T) {
	Register(stubPlatform, stubFactory(stubPlatform))
	Register(disabledPlatform, stubFactory(disabledPlatform))

	l := logrus.New()
	l.SetOutput(io.Discard)
	cfg := &config.Config{
		Platforms: map[string]config.PlatformConfig{
			string(stubPlatform):     {},
			string(disabledPlatform): {},
			"unregistered":           {},
		},
		Sync: config.SyncConfig{EnabledPlatforms: []string{string(stubPlatform), "unregistered"}},
	}
	r := NewPlatformRegistry(cfg, l)

	if got := r.GetPlatformCount(); got != 1 {
		t.Fatalf("GetPlatformCount = %d, want 1", got)
	}
	if a, err := r.GetAdapter(stubPlatform); err != nil || a.GetType() != stubPlatform {
		t.Errorf("GetAdapter(%s) = %v, %v", stubPlatform, a, err)
	}
	if _, err := r.GetAdapter(disabledPlatform); err == nil {
		t.Errorf("disabled platform %s should not be initialised", disabledPlatform)
	}
	if list := r.Adapters(); len(list) != 1 {
		t.Errorf("Adapters = %d, want 1", len(list))
	}
}
