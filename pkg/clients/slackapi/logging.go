package slackapi

import (
	"context"

	"github.com/releasetrain/releasetrain-api/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "slackapi"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) PostMessage(ctx context.Context, channel, text string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "PostMessage", err) }()

	return c.Client.PostMessage(ctx, channel, text)
}
