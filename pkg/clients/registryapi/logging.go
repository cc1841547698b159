package registryapi

import (
	"context"

	"github.com/releasetrain/releasetrain-api/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "registryapi"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) GetToken(ctx context.Context, repository string) (token RegistryToken, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetToken", err) }()

	return c.Client.GetToken(ctx, repository)
}

func (c *loggingClient) GetDigest(ctx context.Context, token RegistryToken, repository string, tag string) (digest ImageDigest, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetDigest", err) }()

	return c.Client.GetDigest(ctx, token, repository, tag)
}

func (c *loggingClient) HasTag(ctx context.Context, repository string, tag string) (exists bool, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "HasTag", err) }()

	return c.Client.HasTag(ctx, repository, tag)
}
