package githubapi

import (
	"context"

	"github.com/releasetrain/releasetrain-api/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "githubapi"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) GetReleaseByTag(ctx context.Context, repoOwner, repoName, tag string) (release *Release, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetReleaseByTag", err) }()

	return c.Client.GetReleaseByTag(ctx, repoOwner, repoName, tag)
}

func (c *loggingClient) CreateRelease(ctx context.Context, repoOwner, repoName, tag, name, notes string) (release *Release, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "CreateRelease", err) }()

	return c.Client.CreateRelease(ctx, repoOwner, repoName, tag, name, notes)
}
