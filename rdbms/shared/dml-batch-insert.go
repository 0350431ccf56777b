package shared

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	h "github.com/relloyd/deltapipe/helper"
)

// SqlInsertTxtBatch implements interface SqlStmtTxtBatcher.
// It is able to generate multi-row INSERT statements with positional binds for batches of rows supplied.
type SqlInsertTxtBatch struct {
	SqlStatementGeneratorConfig // mandatory to be populated.
	sqlCoreCfg
	ColList []string // list of columns extracted from SqlStatementGeneratorConfig.
}

// NewInsertGenerator creates a new SqlStmtGenerator that implements interface SqlStmtTxtBatcher.
func (*DmlGeneratorTxtBatch) NewInsertGenerator(cfg *SqlStatementGeneratorConfig) (SqlStmtGenerator, error) {
	if err := CheckSqlStatementGeneratorConfig(cfg); err != nil {
		return nil, err
	}
	cfg.Log.Debug("Creating NewInsertGenerator")
	o := &SqlInsertTxtBatch{SqlStatementGeneratorConfig: *cfg}
	o.setupSqlStatement()
	return o, nil
}

func (o *SqlInsertTxtBatch) setupSqlStatement() {
	// Build the list of column names.
	o.ColList = make([]string, o.TargetCols.Len()) // a slice of length that matches num target table cols.
	idx := 0
	h.OrderedMapValuesToStringSlice(o.Log, o.TargetCols, &o.ColList, &idx)
	// Populate the SQL template.
	o.sqlStmtTemplate = `insert into <TABLE> (<TGT-COLS>) values <VALUES>`
	o.sqlStmtTemplate = strings.Replace(o.sqlStmtTemplate, "<TABLE>", o.OutputTable, 1)
	o.sqlStmtTemplate = strings.Replace(o.sqlStmtTemplate, "<TGT-COLS>", strings.Join(o.ColList, ","), 1)
	o.previousNumRowsInBatch = -1
	o.Log.Debug("setup INSERT generator with SQL (VALUES pending): ", o.sqlStmtTemplate)
}

func (o *SqlInsertTxtBatch) InitBatch(batchSize int) {
	o.Log.Trace("initBatch() for INSERT...")
	o.batchSize = batchSize
	o.rowsInBatch = 0
	// Allocate a new buffer to hold all values (args) to exec.
	o.sqlValues = make([]interface{}, 0, o.batchSize*len(o.ColList)) // many values per row in a batch.
	o.Log.Trace("batchSize = ", o.batchSize, "; colList = ", o.ColList)
}

func (o *SqlInsertTxtBatch) AddValuesToBatch(values []interface{}) (batchIsFull bool, err error) {
	if o.rowsInBatch >= o.batchSize {
		err = errors.New("no more rows allowed in INSERT batch")
		batchIsFull = true
		return
	}
	if len(values) != len(o.ColList) {
		err = fmt.Errorf("the number of values supplied (%v) does not match the number of table columns (%v)", len(values), len(o.ColList))
		return
	}
	// Append values to buffer.
	o.sqlValues = append(o.sqlValues, values...)
	o.rowsInBatch++                             // keep track of how close we are to the batch limit.
	batchIsFull = o.rowsInBatch >= o.batchSize // if full the caller should exec SQL.
	return
}

func (o *SqlInsertTxtBatch) GetValues() []interface{} {
	return o.sqlValues
}

func (o *SqlInsertTxtBatch) RowsInBatch() int {
	return o.rowsInBatch
}

// GetStatement returns the INSERT for the rows currently in the batch.
// The SQL is cached and only rebuilt when the number of rows changes, which is usually just for the final batch.
func (o *SqlInsertTxtBatch) GetStatement() string {
	if o.previousNumRowsInBatch != o.rowsInBatch { // if we have a new number of rows and need to generate SQL...
		// Build one row of bind variables: ( ?,?,? )
		row := "( " + strings.TrimRight(strings.Repeat(strBindChar+",", len(o.ColList)), ",") + " )"
		allRows := make([]string, o.rowsInBatch)
		for idx := range allRows {
			allRows[idx] = row
		}
		// ( ?,? )
		// ,( ?,? )
		o.sqlStmt = strings.Replace(o.sqlStmtTemplate, "<VALUES>", strings.Join(allRows, ","), 1)
		o.previousNumRowsInBatch = o.rowsInBatch
	} // else we have the same number of rows and can use cached SQL...
	o.Log.Trace("SQL batch INSERT generated statement: ", o.sqlStmt)
	return o.sqlStmt
}
