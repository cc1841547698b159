package buildcli

import (
	"context"

	"github.com/releasetrain/releasetrain-api/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "buildcli"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) RunTestSuite(ctx context.Context, databaseTypes []string, chatModel string, env map[string]string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "RunTestSuite", err) }()

	return c.Client.RunTestSuite(ctx, databaseTypes, chatModel, env)
}

func (c *loggingClient) BuildPackage(ctx context.Context) (artifactPaths []string, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "BuildPackage", err) }()

	return c.Client.BuildPackage(ctx)
}

func (c *loggingClient) InstallPackage(ctx context.Context, artifactPaths []string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "InstallPackage", err) }()

	return c.Client.InstallPackage(ctx, artifactPaths)
}

func (c *loggingClient) RunSmokeTest(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "RunSmokeTest", err) }()

	return c.Client.RunSmokeTest(ctx)
}

func (c *loggingClient) LoginRegistry(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "LoginRegistry", err) }()

	return c.Client.LoginRegistry(ctx)
}

func (c *loggingClient) BuildImage(ctx context.Context, version string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "BuildImage", err) }()

	return c.Client.BuildImage(ctx, version)
}

func (c *loggingClient) PushImage(ctx context.Context, tag string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "PushImage", err) }()

	return c.Client.PushImage(ctx, tag)
}
