package cmd

import (
	"context"

	c "github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/logger"
	"github.com/spf13/cobra"
)

type runConfig struct {
	LogLevel    string
	TriggerFile string
	Items       string
	ProjectID   string
	TeamID      string
	Output      string
	Event       map[string]*string
}

var runCfg = runConfig{Event: make(map[string]*string)}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Copy annotations of the selected items into a Delta table",
	Long: `Run the pipeline once for a trigger, where:

- The trigger is read from --trigger-file and has the keys 'event' and 'context'
- Event parameter flags, --items, --project-id and --team-id override the trigger
- Event parameters missing from the trigger are taken from the defaults file
- Secrets are read from environment variables SA_TEAM_TOKEN and DB_ACCESS_TOKEN`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewLogger(c.ServiceName, runCfg.LogLevel, stackDumpOnPanic)
		t, err := buildTrigger(runCfg.TriggerFile, changedEventFlags(cmd.Flags(), runCfg.Event), runCfg.Items, runCfg.ProjectID, runCfg.TeamID)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		res, err := newRunner(log).Run(ctx, t)
		if e := writeResult(cmd.OutOrStdout(), res, runCfg.Output); e != nil {
			log.Error("error writing result: ", e)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().SortFlags = false
	switches.addFlag(runCmd, &runCfg.TriggerFile, "trigger-file", "", false, "")
	switches.addFlag(runCmd, &runCfg.Items, "items", "", false, "")
	switches.addFlag(runCmd, &runCfg.ProjectID, "project-id", "", false, "")
	switches.addFlag(runCmd, &runCfg.TeamID, "team-id", "", false, "")
	addEventFlags(runCmd, runCfg.Event)
	switches.addFlag(runCmd, &runCfg.Output, "output", "yaml", false, "")
	switches.addFlag(runCmd, &runCfg.LogLevel, "log-level", "info", false, "")
	runCmd.SilenceUsage = true
}
