//go:build !odbc
// +build !odbc

package rdbms

import (
	"errors"

	"github.com/relloyd/deltapipe/logger"
	"github.com/relloyd/deltapipe/rdbms/shared"
)

var ErrOdbcNotBuilt = errors.New("this binary was built without ODBC support; rebuild with -tags odbc")

func NewOdbcConnection(_ logger.Logger, _ shared.ConnectionDetails) (shared.Connector, error) {
	return nil, ErrOdbcNotBuilt
}
