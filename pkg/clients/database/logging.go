package database

import (
	"context"

	"github.com/releasetrain/releasetrain-api/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "database"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) Connect(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "Connect", err) }()

	return c.Client.Connect(ctx)
}

func (c *loggingClient) CreateScratchDatabase(ctx context.Context, runID string) (databaseName, connectionString string, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "CreateScratchDatabase", err) }()

	return c.Client.CreateScratchDatabase(ctx, runID)
}

func (c *loggingClient) DropScratchDatabase(ctx context.Context, databaseName string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "DropScratchDatabase", err) }()

	return c.Client.DropScratchDatabase(ctx, databaseName)
}
