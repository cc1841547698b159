package release

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/releasetrain/releasetrain-api/pkg/api"
	"github.com/releasetrain/releasetrain-api/pkg/clients/githubapi"
	"github.com/releasetrain/releasetrain-api/pkg/contracts"
)

// NewTracingService returns a new instance of a tracing Service.
func NewTracingService(s Service) Service {
	return &tracingService{s, "release"}
}

type tracingService struct {
	Service Service
	prefix  string
}

func (s *tracingService) CreateReleaseForTagPush(ctx context.Context, event githubapi.PushEvent) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "CreateReleaseForTagPush"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.CreateReleaseForTagPush(ctx, event)
}

func (s *tracingService) TriggerRelease(ctx context.Context, trigger contracts.ReleaseTrigger) (run *contracts.PipelineRun, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "TriggerRelease"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.TriggerRelease(ctx, trigger)
}

func (s *tracingService) GetRelease(ctx context.Context, version string) (run *contracts.PipelineRun, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "GetRelease"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.GetRelease(ctx, version)
}

func (s *tracingService) GetReleases(ctx context.Context) (runs []*contracts.PipelineRun, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "GetReleases"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.GetReleases(ctx)
}
