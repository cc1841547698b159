package githubapi

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/releasetrain/releasetrain-api/pkg/api"
)

// NewMetricsClient returns a new instance of a metrics Client.
func NewMetricsClient(c Client, requestCount metrics.Counter, requestLatency metrics.Histogram) Client {
	return &metricsClient{c, requestCount, requestLatency}
}

type metricsClient struct {
	Client         Client
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (c *metricsClient) GetReleaseByTag(ctx context.Context, repoOwner, repoName, tag string) (release *Release, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "GetReleaseByTag", begin) }(time.Now())

	return c.Client.GetReleaseByTag(ctx, repoOwner, repoName, tag)
}

func (c *metricsClient) CreateRelease(ctx context.Context, repoOwner, repoName, tag, name, notes string) (release *Release, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "CreateRelease", begin) }(time.Now())

	return c.Client.CreateRelease(ctx, repoOwner, repoName, tag, name, notes)
}
