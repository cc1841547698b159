package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/releasetrain/releasetrain-api/pkg/api"
	"github.com/rs/zerolog/log"
)

// Client provisions throwaway Postgres databases for test suite runs
//
//go:generate mockgen -package=database -destination ./mock.go -source=client.go
type Client interface {
	Connect(ctx context.Context) (err error)
	CreateScratchDatabase(ctx context.Context, runID string) (databaseName, connectionString string, err error)
	DropScratchDatabase(ctx context.Context, databaseName string) (err error)
}

// NewClient returns a database.Client connected to the configured Postgres server
func NewClient(config *api.APIConfig) Client {
	return &client{
		config: config,
	}
}

type client struct {
	config       *api.APIConfig
	databaseConn *sql.DB
}

// Connect opens the connection pool against the maintenance database
func (c *client) Connect(ctx context.Context) (err error) {

	if !c.config.Database.Enable {
		return nil
	}

	log.Info().Msgf("Connecting to postgres server %v:%v...", c.config.Database.Host, c.config.Database.Port)

	c.databaseConn, err = sql.Open("postgres", c.config.Database.ConnectionString("postgres"))
	if err != nil {
		return errors.Wrap(err, "failed opening postgres connection")
	}

	return c.databaseConn.PingContext(ctx)
}

// CreateScratchDatabase creates an empty database named after the run, so each
// pipeline run tests against a clean schema
func (c *client) CreateScratchDatabase(ctx context.Context, runID string) (databaseName, connectionString string, err error) {

	if c.databaseConn == nil {
		return "", "", errors.New("not connected to a postgres server, call Connect first")
	}

	databaseName = scratchDatabaseName(runID)

	_, err = c.databaseConn.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE %v", pq.QuoteIdentifier(databaseName)))
	if err != nil {
		return "", "", errors.Wrapf(err, "failed creating scratch database %v", databaseName)
	}

	return databaseName, c.config.Database.ConnectionString(databaseName), nil
}

// DropScratchDatabase removes the database created for a run once the run is done
func (c *client) DropScratchDatabase(ctx context.Context, databaseName string) (err error) {

	if c.databaseConn == nil {
		return errors.New("not connected to a postgres server, call Connect first")
	}

	_, err = c.databaseConn.ExecContext(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %v", pq.QuoteIdentifier(databaseName)))
	if err != nil {
		return errors.Wrapf(err, "failed dropping scratch database %v", databaseName)
	}

	return nil
}

func scratchDatabaseName(runID string) string {
	return "release_test_" + strings.ReplaceAll(runID, "-", "_")
}
