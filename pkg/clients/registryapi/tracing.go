package registryapi

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/releasetrain/releasetrain-api/pkg/api"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "registryapi"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) GetToken(ctx context.Context, repository string) (token RegistryToken, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetToken"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetToken(ctx, repository)
}

func (c *tracingClient) GetDigest(ctx context.Context, token RegistryToken, repository string, tag string) (digest ImageDigest, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetDigest"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetDigest(ctx, token, repository, tag)
}

func (c *tracingClient) HasTag(ctx context.Context, repository string, tag string) (exists bool, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "HasTag"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.HasTag(ctx, repository, tag)
}
