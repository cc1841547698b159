package buildcli

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

func (c *metricsClient) RunTestSuite(ctx context.Context, databaseTypes []string, chatModel string, env map[string]string) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "RunTestSuite", begin) }(time.Now())

	return c.Client.RunTestSuite(ctx, databaseTypes, chatModel, env)
}

func (c *metricsClient) BuildPackage(ctx context.Context) (artifactPaths []string, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "BuildPackage", begin) }(time.Now())

	return c.Client.BuildPackage(ctx)
}

func (c *metricsClient) InstallPackage(ctx context.Context, artifactPaths []string) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "InstallPackage", begin) }(time.Now())

	return c.Client.InstallPackage(ctx, artifactPaths)
}

func (c *metricsClient) RunSmokeTest(ctx context.Context) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "RunSmokeTest", begin) }(time.Now())

	return c.Client.RunSmokeTest(ctx)
}

func (c *metricsClient) LoginRegistry(ctx context.Context) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "LoginRegistry", begin) }(time.Now())

	return c.Client.LoginRegistry(ctx)
}

func (c *metricsClient) BuildImage(ctx context.Context, version string) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "BuildImage", begin) }(time.Now())

	return c.Client.BuildImage(ctx, version)
}

func (c *metricsClient) PushImage(ctx context.Context, tag string) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "PushImage", begin) }(time.Now())

	return c.Client.PushImage(ctx, tag)
}
