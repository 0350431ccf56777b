package cmd

import (
	"fmt"

	"github.com/relloyd/deltapipe/constants"
	"github.com/spf13/cobra"
)

var twelveFactorCmd = &cobra.Command{
	Use:   "12f",
	Short: `View help notes for running in Twelve-Factor mode`,
	Long: fmt.Sprintf(`
deltapipe can be controlled by environment variables, which suits containers and
serverless environments.

To enable Twelve-Factor mode, set environment variable %[1]s_12FACTOR_MODE=1.
Supply event parameters using the convention:

%[1]s_<event parameter in upper case>

For example:

export %[1]s_12FACTOR_MODE=1
export %[1]s_LOG_LEVEL=debug
export %[1]s_SA_COMPONENT_IDS=r_label,r_score
export %[1]s_DATABRICKS_COLUMNS=label,score
export %[1]s_DB_SERVER_HOSTNAME=adb-1234.azuredatabricks.net
export %[1]s_DB_HTTP_PATH=/sql/1.0/warehouses/abc
export %[1]s_DB_CATALOG=main
export %[1]s_DB_SCHEMA=annotations
export %[1]s_DB_TABLE=items
export %[1]s_DB_VOLUME=landing
export %[1]s_CREATE_DELTA_TABLE=true
export %[1]s_ITEMS=101,102
export %[1]s_PROJECT_ID=7
export %[1]s_TEAM_ID=42
export %[2]s=...
export %[3]s=...

Then execute the CLI tool without any arguments or flags to run the pipeline once.
A trigger file may be supplied with %[1]s_TRIGGER_FILE, in which case the variables
above override its values.

Set %[1]s_12FACTOR_MODE=lambda to run as an AWS Lambda function that receives
triggers as its payload.
`, constants.EnvVarPrefix, constants.EnvVarAnnotationToken, constants.EnvVarWarehouseToken),
}

func init() {
	rootCmd.AddCommand(twelveFactorCmd)
}
