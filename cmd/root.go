package cmd

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/relloyd/deltapipe/actions"
	"github.com/relloyd/deltapipe/config"
	c "github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/helper"
	"github.com/relloyd/deltapipe/logger"
	"github.com/spf13/cobra"
)

var (
	// Default values may be set at compile time.
	version          = "0.1.0"
	buildDate        = "2024-01-02T03:04+0000"
	stackDumpOnPanic bool
	defaultsFile     *config.File
)

var rootCmd = &cobra.Command{
	Use: c.ServiceName,
	Long: `deltapipe copies annotation components of items selected in SuperAnnotate into a
Databricks Delta table, one row per item. Run it once from the command line, start
an HTTP server to receive triggers, or run it in Twelve-Factor mode, including AWS Lambda.`,
}

func init() {
	// General setup.
	cobra.EnableCommandSorting = false
	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&stackDumpOnPanic, "print-stack", false, "Print a stack dump if there is a panic")
	_ = rootCmd.PersistentFlags().MarkHidden("print-stack")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if twelveFactorMode { // if we are running based on environment variables...
		logLevel := helper.ReadValueFromEnvWithDefault(envVarLogLevel, "info")
		if lambdaMode { // if we should handle lambda execution...
			log := logger.NewJSONLogger(c.ServiceName, logLevel, stackDumpOnPanic)
			lambda.Start(actions.LambdaHandler(newRunner(log)))
		} else {
			log := logger.NewLogger(c.ServiceName, logLevel, stackDumpOnPanic)
			if err := execute12FactorMode(context.Background(), log, newRunner(log), os.Stdout); err != nil {
				// execute12FactorMode logs the error.
				os.Exit(1)
			}
		}
	} else { // else we're using CLI args and flags via Cobra...
		if err := rootCmd.Execute(); err != nil {
			// Execute() prints the error.
			os.Exit(1)
		}
	}
}

// getDefaultsFile returns the defaults file in the user's home directory.
func getDefaultsFile() (*config.File, error) {
	if defaultsFile == nil {
		f, err := config.NewDefaultFile()
		if err != nil {
			return nil, err
		}
		defaultsFile = f
	}
	return defaultsFile, nil
}

// newRunner returns a Runner that reads secrets from the environment and defaults from the defaults file.
// Runs go ahead without defaults when there is no home directory.
func newRunner(log logger.Logger) *actions.Runner {
	r := &actions.Runner{Log: log, Secrets: config.EnvSecretStore{}}
	if f, err := getDefaultsFile(); err == nil {
		r.Defaults = f
	} else {
		log.Warn("defaults file is unavailable: ", err)
	}
	return r
}
