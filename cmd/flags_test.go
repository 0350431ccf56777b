package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/relloyd/deltapipe/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestGetCliFlag(t *testing.T) {
	fnGetConfig := func(key string, out interface{}) error {
		return config.KeyNotFoundError{}
	}
	flagName := "output"
	outputEnvVar := flagNameToEnvVar(flagName)
	expected := "envTest"
	d := "myDefault"
	defer func() { twelveFactorMode = false }()
	// Test 1 - test default value applied to output CLI flag.
	twelveFactorMode = false
	got := switches.getCliFlag(flagName, d, fnGetConfig)
	if got.val != d { // if no default was applied...
		t.Fatalf("test 1 failed: expected default value %v to be applied to output CLI flag", got.val)
	}
	// Test 2 - fetch flag value from environment when it is not set - expect default value to be applied.
	twelveFactorMode = true // enable twelveFactorMode so that env variables are read.
	_ = os.Unsetenv(outputEnvVar)
	got = switches.getCliFlag(flagName, d, fnGetConfig)
	if got.val != d {
		t.Fatalf("test 2 failed: expected default value (%v) to be applied to output CLI flag fetched via environment variable (%v)", got.val, outputEnvVar)
	}
	// Test 3 - fetch flag value from environment after setting it explicitly (requires twelveFactorMode).
	t.Setenv(outputEnvVar, expected)
	got = switches.getCliFlag(flagName, d, fnGetConfig)
	if got.val != expected {
		t.Fatalf("test 3 failed: expected value (%v) to be applied to output CLI flag (%v) fetched from environment variable (%v); got: %v", expected, flagName, outputEnvVar, got.val)
	}
	// Test 4 - value from the defaults file.
	twelveFactorMode = false
	got = switches.getCliFlag(flagName, d, func(key string, out interface{}) error {
		*(out.(*string)) = "fromConfig"
		return nil
	})
	if got.val != "fromConfig" {
		t.Fatalf("test 4 failed: expected value from config; got: %v", got.val)
	}
}

func TestFlagNames(t *testing.T) {
	assert.Equal(t, "DP_LOG_LEVEL", flagNameToEnvVar("log-level"))
	assert.Equal(t, "db-http-path", argToFlagName("db_http_path"))
	// Event parameters read from the environment match the flag names.
	for _, arg := range eventArgs {
		assert.Equal(t, flagNameToEnvVar(argToFlagName(arg)), "DP_"+strings.ToUpper(arg))
	}
}

func TestChangedEventFlags(t *testing.T) {
	c := &cobra.Command{Use: "test"}
	m := make(map[string]*string)
	addEventFlags(c, m)
	assert.Len(t, m, len(eventArgs))
	assert.NoError(t, c.Flags().Parse([]string{"--db-catalog", "main", "--create-delta-table", "false"}))
	got := changedEventFlags(c.Flags(), m)
	assert.Equal(t, map[string]string{"db_catalog": "main", "create_delta_table": "false"}, got)
}

func TestEverySwitchIsRegistered(t *testing.T) {
	names := make(map[string]bool)
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		c.Flags().VisitAll(func(f *pflag.Flag) { names[f.Name] = true })
		c.PersistentFlags().VisitAll(func(f *pflag.Flag) { names[f.Name] = true })
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
	for name := range switches {
		assert.True(t, names[name], "switch %q is not used by any command", name)
	}
}
