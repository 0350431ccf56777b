package rdbms

import (
	"context"
	"fmt"

	"github.com/relloyd/deltapipe/helper"
	"github.com/relloyd/deltapipe/rdbms/shared"
)

// GetSqlTableExists returns SQL and args that count the tables matching t in the catalog's information schema.
func GetSqlTableExists(t TableName) (string, []interface{}) {
	q := fmt.Sprintf("select count(*) from %v.information_schema.tables where lower(table_schema) = lower(?) and lower(table_name) = lower(?)",
		helper.QuoteIdentifier(t.Catalog))
	return q, []interface{}{t.Schema, t.Table}
}

// TableExists reports whether table t is visible to the connection.
func TableExists(ctx context.Context, db shared.Connector, t TableName) (bool, error) {
	q, args := GetSqlTableExists(t)
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("error checking if table %v exists: %w", t, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var count int64
	if rows.Next() {
		if err = rows.Scan(&count); err != nil {
			return false, fmt.Errorf("error scanning table count for %v: %w", t, err)
		}
	}
	if err = rows.Err(); err != nil {
		return false, fmt.Errorf("error reading table count for %v: %w", t, err)
	}
	return count > 0, nil
}
