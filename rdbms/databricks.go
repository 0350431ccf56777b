package rdbms

import (
	"context"
	"database/sql"

	dbsql "github.com/databricks/databricks-sql-go"
	"github.com/databricks/databricks-sql-go/driverctx"
	"github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/logger"
	"github.com/relloyd/deltapipe/rdbms/shared"
)

// NewDatabricksConnection returns a Connector using the native Databricks SQL driver.
// PUT and REMOVE statements may only touch files below d.StagingDir.
func NewDatabricksConnection(log logger.Logger, d shared.ConnectionDetails) (shared.Connector, error) {
	log.Info("opening Databricks connection to ", d.Hostname)
	opts := []dbsql.ConnOption{
		dbsql.WithServerHostname(d.Hostname),
		dbsql.WithPort(d.GetPort()),
		dbsql.WithHTTPPath(d.HTTPPath),
		dbsql.WithAccessToken(d.Token),
		dbsql.WithUserAgentEntry(constants.ServiceName),
	}
	if d.Catalog != "" || d.Schema != "" {
		opts = append(opts, dbsql.WithInitialNamespace(d.Catalog, d.Schema))
	}
	connector, err := dbsql.NewConnector(opts...)
	if err != nil {
		return nil, err
	}
	conn := &shared.HpConnection{
		DbSql:  sql.OpenDB(connector),
		Dml:    &shared.DmlGeneratorTxtBatch{},
		DbType: constants.DriverDatabricks,
	}
	if d.StagingDir != "" {
		stagingPaths := []string{d.StagingDir}
		conn.StagingCtx = func(ctx context.Context) context.Context {
			return driverctx.NewContextWithStagingInfo(ctx, stagingPaths)
		}
	}
	return conn, nil
}
