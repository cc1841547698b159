package slackapi

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/releasetrain/releasetrain-api/pkg/api"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "slackapi"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) PostMessage(ctx context.Context, channel, text string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "PostMessage"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.PostMessage(ctx, channel, text)
}
