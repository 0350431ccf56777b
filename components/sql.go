package components

import (
	"fmt"
	"strings"

	"github.com/relloyd/deltapipe/helper"
	"github.com/relloyd/deltapipe/rdbms"
)

// GetSqlCreateTable generates SQL to create the table with one STRING column per entry in columns.
func GetSqlCreateTable(table rdbms.TableName, columns []string) string {
	cols := make([]string, len(columns))
	for idx, col := range columns {
		cols[idx] = helper.QuoteIdentifier(col) + " STRING"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %v (%v)", table.Quoted(), strings.Join(cols, ", "))
}

// GetSqlPutFile generates SQL to upload localFile to the volume path, replacing any existing file.
func GetSqlPutFile(localFile string, volumePath string) string {
	return fmt.Sprintf("PUT '%v' INTO '%v' OVERWRITE", helper.EscapeSingleQuotes(localFile), helper.EscapeSingleQuotes(volumePath))
}

// GetSqlCopyInto generates SQL to copy the CSV file at source, which has a header row, into table.
// Columns are matched by name and new columns are merged into the table schema.
func GetSqlCopyInto(table rdbms.TableName, source string) string {
	return fmt.Sprintf("COPY INTO %v FROM '%v' FILEFORMAT = CSV "+
		"FORMAT_OPTIONS ('mergeSchema' = 'true', 'header' = 'true', 'multiLine' = 'true') "+
		"COPY_OPTIONS ('mergeSchema' = 'true')",
		table.Quoted(), helper.EscapeSingleQuotes(source))
}

// GetSqlRemoveFile generates SQL to delete a file from a volume.
func GetSqlRemoveFile(volumePath string) string {
	return fmt.Sprintf("REMOVE '%v'", helper.EscapeSingleQuotes(volumePath))
}
