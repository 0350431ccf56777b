//go:build odbc
// +build odbc

package rdbms

import (
	"database/sql"

	_ "github.com/alexbrainman/odbc"
	"github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/logger"
	"github.com/relloyd/deltapipe/rdbms/shared"
)

// NewOdbcConnection returns a Connector that uses the Simba Spark ODBC driver.
// It needs cgo and unixODBC so it is only built with -tags odbc.
func NewOdbcConnection(log logger.Logger, d shared.ConnectionDetails) (shared.Connector, error) {
	log.Info("opening ODBC connection to ", d.Hostname)
	driver, dsn, err := d.OdbcConnectString()
	if err != nil {
		return nil, err
	}
	// Create the new Connector.
	conn := &shared.HpConnection{
		Dml:    &shared.DmlGeneratorTxtBatch{},
		DbType: constants.DriverOdbc,
	}
	// Open the connection.
	conn.DbSql, err = sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
