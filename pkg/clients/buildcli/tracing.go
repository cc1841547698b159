package buildcli

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/releasetrain/releasetrain-api/pkg/api"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "buildcli"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) RunTestSuite(ctx context.Context, databaseTypes []string, chatModel string, env map[string]string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "RunTestSuite"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.RunTestSuite(ctx, databaseTypes, chatModel, env)
}

func (c *tracingClient) BuildPackage(ctx context.Context) (artifactPaths []string, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "BuildPackage"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.BuildPackage(ctx)
}

func (c *tracingClient) InstallPackage(ctx context.Context, artifactPaths []string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "InstallPackage"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.InstallPackage(ctx, artifactPaths)
}

func (c *tracingClient) RunSmokeTest(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "RunSmokeTest"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.RunSmokeTest(ctx)
}

func (c *tracingClient) LoginRegistry(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "LoginRegistry"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.LoginRegistry(ctx)
}

func (c *tracingClient) BuildImage(ctx context.Context, version string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "BuildImage"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.BuildImage(ctx, version)
}

func (c *tracingClient) PushImage(ctx context.Context, tag string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "PushImage"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.PushImage(ctx, tag)
}
