package release

import (
	"context"

	"github.com/releasetrain/releasetrain-api/pkg/api"
	"github.com/releasetrain/releasetrain-api/pkg/clients/githubapi"
	"github.com/releasetrain/releasetrain-api/pkg/contracts"
)

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(s Service) Service {
	return &loggingService{s, "release"}
}

type loggingService struct {
	Service Service
	prefix  string
}

func (s *loggingService) CreateReleaseForTagPush(ctx context.Context, event githubapi.PushEvent) (err error) {
	defer func() {
		api.HandleLogError(s.prefix, "Service", "CreateReleaseForTagPush", err, ErrNonTagEvent, contracts.ErrInvalidReleaseTag)
	}()

	return s.Service.CreateReleaseForTagPush(ctx, event)
}

func (s *loggingService) TriggerRelease(ctx context.Context, trigger contracts.ReleaseTrigger) (run *contracts.PipelineRun, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "TriggerRelease", err, ErrReleaseAlreadyRan) }()

	return s.Service.TriggerRelease(ctx, trigger)
}

func (s *loggingService) GetRelease(ctx context.Context, version string) (run *contracts.PipelineRun, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "GetRelease", err, ErrReleaseNotFound) }()

	return s.Service.GetRelease(ctx, version)
}

func (s *loggingService) GetReleases(ctx context.Context) (runs []*contracts.PipelineRun, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "GetReleases", err) }()

	return s.Service.GetReleases(ctx)
}
