package githubapi

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/releasetrain/releasetrain-api/pkg/api"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "githubapi"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) GetReleaseByTag(ctx context.Context, repoOwner, repoName, tag string) (release *Release, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetReleaseByTag"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetReleaseByTag(ctx, repoOwner, repoName, tag)
}

func (c *tracingClient) CreateRelease(ctx context.Context, repoOwner, repoName, tag, name, notes string) (release *Release, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "CreateRelease"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.CreateRelease(ctx, repoOwner, repoName, tag, name, notes)
}
