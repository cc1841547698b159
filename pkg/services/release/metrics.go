package release

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/releasetrain/releasetrain-api/pkg/api"
	"github.com/releasetrain/releasetrain-api/pkg/clients/githubapi"
	"github.com/releasetrain/releasetrain-api/pkg/contracts"
)

// NewMetricsService returns a new instance of a metrics Service.
func NewMetricsService(s Service, requestCount metrics.Counter, requestLatency metrics.Histogram) Service {
	return &metricsService{s, requestCount, requestLatency}
}

type metricsService struct {
	Service        Service
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (s *metricsService) CreateReleaseForTagPush(ctx context.Context, event githubapi.PushEvent) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "CreateReleaseForTagPush", begin)
	}(time.Now())

	return s.Service.CreateReleaseForTagPush(ctx, event)
}

func (s *metricsService) TriggerRelease(ctx context.Context, trigger contracts.ReleaseTrigger) (run *contracts.PipelineRun, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "TriggerRelease", begin)
	}(time.Now())

	return s.Service.TriggerRelease(ctx, trigger)
}

func (s *metricsService) GetRelease(ctx context.Context, version string) (run *contracts.PipelineRun, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "GetRelease", begin)
	}(time.Now())

	return s.Service.GetRelease(ctx, version)
}

func (s *metricsService) GetReleases(ctx context.Context) (runs []*contracts.PipelineRun, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "GetReleases", begin)
	}(time.Now())

	return s.Service.GetReleases(ctx)
}
