package shared

import (
	"context"
	"database/sql"
	"errors"
)

// HpConnection is a wrapper around Go native sql.DB.
// It adds the DmlGenerator interface for use in components that output rows to a database.
// StagingCtx, when set, decorates the context of every statement; the Databricks driver uses it to
// allow PUT and REMOVE to read local files.
type HpConnection struct {
	DbSql      *sql.DB
	Dml        DmlGenerator
	DbType     string
	StagingCtx func(ctx context.Context) context.Context
}

var errNotConfigured = errors.New("HpConnection was not configured correctly: DbSql is missing")

// Connector:

func (c *HpConnection) ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error) {
	if c.DbSql == nil {
		return nil, errNotConfigured
	}
	return c.DbSql.ExecContext(c.ctx(ctx), query, args...)
}

func (c *HpConnection) QueryContext(ctx context.Context, query string, args ...interface{}) (*HpRows, error) {
	if c.DbSql == nil {
		return nil, errNotConfigured
	}
	r, err := c.DbSql.QueryContext(c.ctx(ctx), query, args...)
	return &HpRows{rowsSql: r}, err
}

func (c *HpConnection) PingContext(ctx context.Context) error {
	if c.DbSql == nil {
		return errNotConfigured
	}
	return c.DbSql.PingContext(c.ctx(ctx))
}

func (c *HpConnection) Close() error {
	if c.DbSql == nil {
		return nil
	}
	return c.DbSql.Close()
}

func (c *HpConnection) GetDmlGenerator() DmlGenerator {
	return c.Dml
}

func (c *HpConnection) GetType() string {
	return c.DbType
}

func (c *HpConnection) ctx(ctx context.Context) context.Context {
	if c.StagingCtx != nil {
		return c.StagingCtx(ctx)
	}
	return ctx
}

// Rows:

type HpRows struct {
	rowsSql *sql.Rows
}

func (r *HpRows) Close() error {
	if r.rowsSql == nil {
		return nil
	}
	return r.rowsSql.Close()
}

func (r *HpRows) Err() error {
	return r.rowsSql.Err()
}

func (r *HpRows) Next() bool {
	return r.rowsSql.Next()
}

func (r *HpRows) Scan(dest ...interface{}) error {
	return r.rowsSql.Scan(dest...)
}
