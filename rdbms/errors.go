package rdbms

import (
	"fmt"
)

// ConnectionError is returned when a warehouse connection cannot be opened or verified.
// No statement has been executed when it is returned.
type ConnectionError struct {
	Host string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("error connecting to warehouse %v: %v", e.Host, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
