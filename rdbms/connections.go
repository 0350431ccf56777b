package rdbms

import (
	"context"
	"fmt"

	"github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/helper"
	"github.com/relloyd/deltapipe/logger"
	"github.com/relloyd/deltapipe/rdbms/shared"
)

// Opener opens and verifies a warehouse connection.
type Opener func(ctx context.Context, log logger.Logger, d shared.ConnectionDetails) (shared.Connector, error)

// OpenDbConnection opens a database connection using the supplied ConnectionDetails and pings it.
// Any failure is returned as a *ConnectionError and the connection is closed.
func OpenDbConnection(ctx context.Context, log logger.Logger, d shared.ConnectionDetails) (db shared.Connector, err error) {
	log.Debug("opening connection: ", d) // String() redacts the token.
	if err = helper.ValidateStructIsPopulated(&d); err != nil {
		return nil, &ConnectionError{Host: d.Hostname, Err: err}
	}
	switch d.Driver {
	case constants.DriverDatabricks:
		db, err = NewDatabricksConnection(log, d)
	case constants.DriverOdbc:
		db, err = NewOdbcConnection(log, d)
	default:
		err = fmt.Errorf("unsupported warehouse driver, %q", d.Driver)
	}
	if err != nil {
		return nil, &ConnectionError{Host: d.Hostname, Err: err}
	}
	return VerifyConnection(ctx, log, d.Hostname, db)
}

// VerifyConnection pings db and closes it on failure.
func VerifyConnection(ctx context.Context, log logger.Logger, host string, db shared.Connector) (shared.Connector, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &ConnectionError{Host: host, Err: err}
	}
	log.Info("successful connection to: ", host)
	return db, nil
}
