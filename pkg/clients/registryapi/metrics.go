package registryapi

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

func (c *metricsClient) GetToken(ctx context.Context, repository string) (token RegistryToken, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "GetToken", begin) }(time.Now())

	return c.Client.GetToken(ctx, repository)
}

func (c *metricsClient) GetDigest(ctx context.Context, token RegistryToken, repository string, tag string) (digest ImageDigest, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "GetDigest", begin) }(time.Now())

	return c.Client.GetDigest(ctx, token, repository, tag)
}

func (c *metricsClient) HasTag(ctx context.Context, repository string, tag string) (exists bool, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "HasTag", begin) }(time.Now())

	return c.Client.HasTag(ctx, repository, tag)
}
