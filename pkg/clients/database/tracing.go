package database

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/releasetrain/releasetrain-api/pkg/api"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "database"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) Connect(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "Connect"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.Connect(ctx)
}

func (c *tracingClient) CreateScratchDatabase(ctx context.Context, runID string) (databaseName, connectionString string, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "CreateScratchDatabase"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.CreateScratchDatabase(ctx, runID)
}

func (c *tracingClient) DropScratchDatabase(ctx context.Context, databaseName string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "DropScratchDatabase"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.DropScratchDatabase(ctx, databaseName)
}
