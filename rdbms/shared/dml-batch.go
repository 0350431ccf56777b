package shared

import (
	om "github.com/cevaris/ordered_map"
	"github.com/relloyd/deltapipe/logger"
)

const strBindChar string = "?"

type DmlGeneratorTxtBatch struct{}

type SqlStatementGeneratorConfig struct {
	Log         logger.Logger
	OutputTable string         // fully qualified and quoted table name.
	TargetCols  *om.OrderedMap // ordered map of: key = row field name; value = quoted target table column name
}

type sqlCoreCfg struct {
	sqlStmt                string
	sqlStmtTemplate        string
	sqlValues              []interface{} // slice to hold data values for all rows in batch
	batchSize              int
	rowsInBatch            int
	previousNumRowsInBatch int
}
