package components

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/pkg/errors"
	c "github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/file"
	"github.com/relloyd/deltapipe/logger"
	"github.com/relloyd/deltapipe/rdbms/shared"
	"github.com/relloyd/deltapipe/stream"
)

// StagedFileName returns the name used for the CSV file of one run.
func StagedFileName(table string, runID string, now time.Time) string {
	return fmt.Sprintf("%v_%v_%v.csv", table, now.UTC().Format(c.TimeFormatYearSeconds), runID)
}

// writeRowsToCSV writes a header of columns followed by rows to dir/fileName.
func writeRowsToCSV(log logger.Logger, dir string, fileName string, columns []string, rows []stream.Row) (fullPath string, err error) {
	f, err := file.NewCSVFileOutput(log, dir, fileName, columns)
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		if err = f.Write(row.Values()); err != nil {
			_ = f.Remove()
			return "", errors.Wrapf(err, "unable to write row for item %v", row.ItemID())
		}
	}
	if err = f.Close(); err != nil {
		_ = f.Remove()
		return "", err
	}
	log.Info("saved ", f.RowCount(), " rows to CSV file ", path.Base(f.FullPath))
	return f.FullPath, nil
}

// exec runs query and logs the rows affected when the driver reports them.
func exec(ctx context.Context, log logger.Logger, db shared.Connector, query string, args ...interface{}) error {
	log.Debug("executing query: ", query)
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if res != nil {
		if i, e := res.RowsAffected(); e == nil { // if we have the number of rows affected...
			log.Debug("rows affected: ", i)
		} // else the error is only concerned with number of rows affected, which can be 0 for DDL.
	}
	return nil
}
