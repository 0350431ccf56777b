package cmd

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/helper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type cliFlag struct {
	name      string // name of flag
	val       string // default value
	shortHand string // single character name for the flag
	desc      string // description of the flag; the long text
}

type cliFlags map[string]cliFlag

var switches = cliFlags{
	"log-level": cliFlag{name: "log-level", shortHand: "l",
		desc: "Log level: trace|debug|info|warn|error"},
	"port": cliFlag{name: "port", shortHand: "p",
		desc: "Port to listen on"},
	"trigger-file": cliFlag{name: "trigger-file", shortHand: "f",
		desc: "File containing the trigger payload (.yaml or .json) with keys 'event' and 'context'"},
	"items": cliFlag{name: "items", shortHand: "i",
		desc: "The <CSV of item ids or names> to process. Overrides the items in the trigger context"},
	"project-id": cliFlag{name: "project-id", shortHand: "P",
		desc: "The project id. Overrides the value in the trigger context"},
	"team-id": cliFlag{name: "team-id", shortHand: "T",
		desc: "The team id. Overrides the value in the trigger context"},
	"output": cliFlag{name: "output", shortHand: "o",
		desc: "Output format for the run result: yaml|json"},
}

// eventArgs lists the event parameters that can be supplied as flags on the run command or as environment variables
// in twelveFactorMode.
var eventArgs = []string{
	constants.ArgComponentIDs,
	constants.ArgColumnNames,
	constants.ArgServerHostname,
	constants.ArgHTTPPath,
	constants.ArgCatalog,
	constants.ArgSchema,
	constants.ArgTable,
	constants.ArgVolume,
	constants.ArgCreateDeltaTable,
	constants.ArgLoadMode,
	constants.ArgDriver,
	constants.ArgS3Url,
	constants.ArgS3Region,
	constants.ArgBatchSize,
}

// addFlag add a flag to cobra.Command c, based on the type of targetVar (which must be a pointer).
// The name of the flag is looked up in map, cliFlags.
// When running in twelveFactorMode, the targetVar is populated using the value of environment variable for the supplied
// name, or if not set then the supplied default value is used.
// When NOT running in twelveFactorMode, the default value is fetched from the defaults file if it exists else the
// supplied defaultValue is applied.
// The flag is marked as required in Cobra based on the value of required.
func (f *cliFlags) addFlag(c *cobra.Command, targetVar interface{}, name string, defaultValue string, required bool, desc2 string) {
	v := reflect.ValueOf(targetVar)
	if v.Kind() != reflect.Ptr {
		fmt.Println("error adding flag: targetVar must be a pointer")
		os.Exit(1)
	}
	sw := f.getCliFlag(name, defaultValue, getDefault) // get the cliFlag details, with defaults taken from config or the supplied defaultValue
	desc := sw.desc + desc2                            // create the full flag description for use below
	// Apply the flag.
	switch p := targetVar.(type) {
	case *string:
		if twelveFactorMode {
			*p = sw.val
		} else {
			c.Flags().StringVarP(p, sw.name, sw.shortHand, sw.val, desc)
		}
	case *bool:
		defaultBool := helper.GetTrueFalseStringAsBool(sw.val)
		if twelveFactorMode {
			*p = defaultBool
		} else {
			c.Flags().BoolVarP(p, sw.name, sw.shortHand, defaultBool, desc)
		}
	case *int:
		defaultInt, err := strconv.Atoi(sw.val)
		if err != nil {
			fmt.Printf("the value for flag %q must be an integer: %v\n", sw.name, err)
			os.Exit(1)
		}
		if twelveFactorMode {
			*p = defaultInt
		} else {
			c.Flags().IntVarP(p, sw.name, sw.shortHand, defaultInt, desc)
		}
	default:
		panic("Error: unhandled CLI flag target value type")
	}
	// Optionally mark the flag as mandatory.
	if required && !twelveFactorMode { // if the flag is required...
		_ = c.MarkFlagRequired(sw.name)
	}
}

// getCliFlag fetches the value of name from the environment, when running in twelveFactorMode,
// else read the defaults file to find it.
// If a value cannot be found then use the supplied defaultValue in its place.
func (f *cliFlags) getCliFlag(name string, defaultValue string, fnGetConfig func(key string, out interface{}) error) cliFlag {
	s, ok := (*f)[name]
	if !ok {
		panic(fmt.Sprintf("unregistered CLI flag, %q", name))
	}
	if twelveFactorMode { // if we should read env vars...
		if err := helper.ReadValueFromEnv(flagNameToEnvVar(name), &s.val); err != nil { // if there's no value for the env var read into the switch val...
			// Apply the default.
			s.val = defaultValue
		}
	} else { // else check the config file or apply default...
		err := fnGetConfig(s.name, &s.val)
		if err != nil || s.val == "" { // if there was no key found...
			// Apply the default.
			s.val = defaultValue
		}
	}
	return s
}

// getDefault reads key from the defaults file.
func getDefault(key string, out interface{}) error {
	f, err := getDefaultsFile()
	if err != nil {
		return err
	}
	return f.Get(key, out)
}

// flagNameToEnvVar will form a sanitised environment variable name using constants.EnvVarPrefix.
func flagNameToEnvVar(name string) string {
	return constants.EnvVarPrefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// argToFlagName converts an event parameter like db_catalog into flag name db-catalog.
func argToFlagName(arg string) string {
	return strings.ReplaceAll(arg, "_", "-")
}

// addEventFlags adds a string flag to c for each event parameter and saves the flag values into m.
// The flags have no defaults of their own since defaults are applied to event parameters when the config is parsed.
func addEventFlags(c *cobra.Command, m map[string]*string) {
	for _, arg := range eventArgs {
		v := new(string)
		m[arg] = v
		c.Flags().StringVar(v, argToFlagName(arg), "", fmt.Sprintf("Event parameter %v", arg))
	}
}

// changedEventFlags returns the event parameters explicitly set on the command line.
func changedEventFlags(fs *pflag.FlagSet, m map[string]*string) map[string]string {
	retval := make(map[string]string)
	for arg, v := range m {
		if fs.Changed(argToFlagName(arg)) {
			retval[arg] = *v
		}
	}
	return retval
}
