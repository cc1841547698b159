package pypiapi

import (
	"context"

	"github.com/releasetrain/releasetrain-api/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "pypiapi"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) GetPackageVersions(ctx context.Context, packageName string) (versions []string, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetPackageVersions", err) }()

	return c.Client.GetPackageVersions(ctx, packageName)
}

func (c *loggingClient) UploadPackage(ctx context.Context, packageName, version string, artifactPaths []string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "UploadPackage", err) }()

	return c.Client.UploadPackage(ctx, packageName, version, artifactPaths)
}

func (c *loggingClient) AwaitVersionPublished(ctx context.Context, packageName, version string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "AwaitVersionPublished", err) }()

	return c.Client.AwaitVersionPublished(ctx, packageName, version)
}
