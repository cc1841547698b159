package pypiapi

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/releasetrain/releasetrain-api/pkg/api"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "pypiapi"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) GetPackageVersions(ctx context.Context, packageName string) (versions []string, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetPackageVersions"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetPackageVersions(ctx, packageName)
}

func (c *tracingClient) UploadPackage(ctx context.Context, packageName, version string, artifactPaths []string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "UploadPackage"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.UploadPackage(ctx, packageName, version, artifactPaths)
}

func (c *tracingClient) AwaitVersionPublished(ctx context.Context, packageName, version string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "AwaitVersionPublished"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.AwaitVersionPublished(ctx, packageName, version)
}
