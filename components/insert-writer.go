package components

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	h "github.com/relloyd/deltapipe/helper"
	"github.com/relloyd/deltapipe/logger"
	"github.com/relloyd/deltapipe/rdbms"
	"github.com/relloyd/deltapipe/rdbms/shared"
	"github.com/relloyd/deltapipe/stream"
)

type InsertWriterConfig struct {
	Log       logger.Logger
	Name      string
	BatchSize int // number of rows in a single INSERT statement.
}

// InsertWriter writes rows with multi-row INSERT statements.
// Each statement commits on its own since the warehouse has no multi-statement transactions.
type InsertWriter struct {
	cfg *InsertWriterConfig
}

func NewInsertWriter(cfg *InsertWriterConfig) *InsertWriter {
	return &InsertWriter{cfg: cfg}
}

func (w *InsertWriter) Load(ctx context.Context, db shared.Connector, table rdbms.TableName, columns []string, rows []stream.Row) (res LoadResult, err error) {
	log := w.cfg.Log
	g, err := db.GetDmlGenerator().NewInsertGenerator(&shared.SqlStatementGeneratorConfig{
		Log:         log,
		OutputTable: table.Quoted(),
		TargetCols:  h.StringSliceToOrderedMap(h.QuoteIdentifiers(columns)),
	})
	if err != nil {
		return res, newWriteError(table, "insert", err)
	}
	batch, ok := g.(shared.SqlStmtTxtBatcher)
	if !ok {
		return res, newWriteError(table, "insert", fmt.Errorf("insert generator %T does not support batching", g))
	}
	batch.InitBatch(w.cfg.BatchSize)
	for _, row := range rows {
		batchIsFull, err := batch.AddValuesToBatch(row.Interfaces())
		if err != nil {
			return res, newWriteError(table, "insert", errors.Wrapf(err, "unable to add item %v to batch", row.ItemID()))
		}
		if batchIsFull {
			if err = w.execBatch(ctx, log, db, batch); err != nil {
				return res, newWriteError(table, "insert", err)
			}
			res.RowsWritten += batch.RowsInBatch()
			batch.InitBatch(w.cfg.BatchSize)
		}
	}
	if batch.RowsInBatch() > 0 { // if there is a partial batch left over...
		if err = w.execBatch(ctx, log, db, batch); err != nil {
			return res, newWriteError(table, "insert", err)
		}
		res.RowsWritten += batch.RowsInBatch()
	}
	log.Info(w.cfg.Name, " inserted ", res.RowsWritten, " rows into ", table)
	return res, nil
}

func (w *InsertWriter) execBatch(ctx context.Context, log logger.Logger, db shared.Connector, batch shared.SqlStmtTxtBatcher) error {
	log.Debug(w.cfg.Name, " executing INSERT of ", batch.RowsInBatch(), " rows")
	return exec(ctx, log, db, batch.GetStatement(), batch.GetValues()...)
}
