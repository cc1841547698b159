package pypiapi

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

func (c *metricsClient) GetPackageVersions(ctx context.Context, packageName string) (versions []string, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetPackageVersions", begin)
	}(time.Now())

	return c.Client.GetPackageVersions(ctx, packageName)
}

func (c *metricsClient) UploadPackage(ctx context.Context, packageName, version string, artifactPaths []string) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "UploadPackage", begin) }(time.Now())

	return c.Client.UploadPackage(ctx, packageName, version, artifactPaths)
}

func (c *metricsClient) AwaitVersionPublished(ctx context.Context, packageName, version string) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "AwaitVersionPublished", begin)
	}(time.Now())

	return c.Client.AwaitVersionPublished(ctx, packageName, version)
}
