package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/relloyd/deltapipe/actions"
	"github.com/relloyd/deltapipe/config"
	c "github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/helper"
	"github.com/relloyd/deltapipe/logger"
)

// init will be called first due to the lexical order in which these functions are executed.
// This ensures the value of twelveFactorMode is set before other init() functions configure Cobra flags.
func init() {
	setupTwelveFactorMode()
}

// setupTwelveFactorMode will enable or disable 12 factor mode based on environment variable.
func setupTwelveFactorMode() {
	mode := os.Getenv(envVarTwelveFactorMode)
	if mode != "" { // if variable for 12factor mode is set and we should read env vars to determine actions...
		twelveFactorMode = true
		lambdaMode = strings.ToLower(mode) == "lambda"
	} else { // else 12factor mode should be off...
		twelveFactorMode = false // explicitly turn off this mode since tests may have turned it on while others require it off.
		lambdaMode = false
	}
	stackDumpOnPanic = os.Getenv(envVarStackDump) != ""
}

const (
	envVarTwelveFactorMode = c.EnvVarPrefix + "_" + "12FACTOR_MODE"
	envVarLogLevel         = c.EnvVarPrefix + "_" + "LOG_LEVEL"
	envVarStackDump        = c.EnvVarPrefix + "_" + "STACK_DUMP"
	envVarTriggerFile      = c.EnvVarPrefix + "_" + "TRIGGER_FILE"
	envVarItems            = c.EnvVarPrefix + "_" + "ITEMS"
	envVarProjectID        = c.EnvVarPrefix + "_" + "PROJECT_ID"
	envVarTeamID           = c.EnvVarPrefix + "_" + "TEAM_ID"
	envVarOutput           = c.EnvVarPrefix + "_" + "OUTPUT"
)

var (
	twelveFactorMode bool // true if os env var envVarTwelveFactorMode is set
	lambdaMode       bool // true if os env var envVarTwelveFactorMode is set to "lambda"
)

// triggerFromEnv builds a trigger from an optional trigger file and the DP_* environment variables.
// Environment values take precedence over the file.
func triggerFromEnv() (config.Trigger, error) {
	event := make(map[string]string)
	for _, arg := range eventArgs { // for each event parameter...
		if v := os.Getenv(helper.GetArgEnvVarName(arg)); v != "" {
			event[arg] = v
		}
	}
	return buildTrigger(os.Getenv(envVarTriggerFile), event, os.Getenv(envVarItems), os.Getenv(envVarProjectID), os.Getenv(envVarTeamID))
}

// execute12FactorMode runs the pipeline once for the trigger described by the environment and writes the result to w.
func execute12FactorMode(ctx context.Context, log logger.Logger, runner actions.TriggerRunner, w io.Writer) error {
	log.Info(c.ServiceName, " is running in 12 Factor mode...")
	t, err := triggerFromEnv()
	if err != nil {
		log.Error("Error: ", err)
		return err
	}
	res, err := runner.Run(ctx, t)
	if e := writeResult(w, res, helper.ReadValueFromEnvWithDefault(envVarOutput, "json")); e != nil {
		log.Error("Error writing result: ", e)
	}
	if err != nil {
		log.Error("Error: ", err)
	}
	return err
}
