package database

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

func (c *metricsClient) Connect(ctx context.Context) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "Connect", begin) }(time.Now())

	return c.Client.Connect(ctx)
}

func (c *metricsClient) CreateScratchDatabase(ctx context.Context, runID string) (databaseName, connectionString string, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "CreateScratchDatabase", begin)
	}(time.Now())

	return c.Client.CreateScratchDatabase(ctx, runID)
}

func (c *metricsClient) DropScratchDatabase(ctx context.Context, databaseName string) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "DropScratchDatabase", begin)
	}(time.Now())

	return c.Client.DropScratchDatabase(ctx, databaseName)
}
