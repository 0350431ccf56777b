package components

import (
	"context"

	"github.com/relloyd/deltapipe/rdbms"
	"github.com/relloyd/deltapipe/rdbms/shared"
	"github.com/relloyd/deltapipe/stream"
)

// RowLoader writes rows into an existing table using an open connection.
type RowLoader interface {
	Load(ctx context.Context, db shared.Connector, table rdbms.TableName, columns []string, rows []stream.Row) (LoadResult, error)
}

type LoadResult struct {
	RowsWritten int
	StagedFile  string // the staged file URI, if any.
}
