package components

import (
	"context"

	"github.com/relloyd/deltapipe/logger"
	"github.com/relloyd/deltapipe/rdbms"
	"github.com/relloyd/deltapipe/rdbms/shared"
)

// CreateTableIfNotExists creates table with a STRING column per entry in columns unless it already exists.
// It returns true if the CREATE statement was issued.
func CreateTableIfNotExists(ctx context.Context, log logger.Logger, db shared.Connector, table rdbms.TableName, columns []string) (bool, error) {
	exists, err := rdbms.TableExists(ctx, db, table)
	if err != nil {
		return false, newWriteError(table, "create table", err)
	}
	if exists {
		log.Info("table ", table, " already exists")
		return false, nil
	}
	log.Info("creating table ", table)
	if err = exec(ctx, log, db, GetSqlCreateTable(table, columns)); err != nil {
		return false, newWriteError(table, "create table", err)
	}
	return true, nil
}
