package components

import (
	"fmt"
)

// WriteError is returned when a statement fails after the warehouse connection was opened.
// The connection has been released by the time the caller sees it.
type WriteError struct {
	Table string
	Step  string // e.g. "create table", "stage file", "copy into", "insert".
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error writing to table %v during %v: %v", e.Table, e.Step, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func newWriteError(table fmt.Stringer, step string, err error) *WriteError {
	return &WriteError{Table: table.String(), Step: step, Err: err}
}
