package shared

import (
	"github.com/pkg/errors"
)

// CheckSqlStatementGeneratorConfig returns an error if the config is not usable.
func CheckSqlStatementGeneratorConfig(cfg *SqlStatementGeneratorConfig) error {
	if cfg.Log == nil {
		return errors.New("missing logger in SQL generator config")
	}
	if cfg.OutputTable == "" {
		return errors.New("missing output table name")
	}
	if cfg.TargetCols == nil || cfg.TargetCols.Len() == 0 {
		return errors.New("missing output table columns")
	}
	return nil
}
