package cmd

import (
	"net"

	"github.com/relloyd/deltapipe/actions"
	c "github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/logger"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a web service that runs the pipeline for each trigger received",
	Long: `Start a web service with routes:

- POST /trigger runs the pipeline for the trigger in the request body (JSON or YAML)
- GET /health
- GET /stop shuts down the service`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serveConfig.Runner = newRunner(logger.NewLogger(c.ServiceName, serveConfig.LogLevel, stackDumpOnPanic))
		serveConfig.StackDumpOnPanic = stackDumpOnPanic
		return actions.RunWebServer(&serveConfig)
	},
}

var serveConfig = actions.WebServerConfig{
	LogLevel: "info",
	Scheme:   "http",
	Addr:     net.IP{0, 0, 0, 0},
	Port:     8080,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().SortFlags = false
	serveCmd.Flags().IPVarP(&serveConfig.Addr, "address", "a", net.IP{0, 0, 0, 0}, "Address to listen on")
	switches.addFlag(serveCmd, &serveConfig.Port, "port", "8080", false, "")
	switches.addFlag(serveCmd, &serveConfig.LogLevel, "log-level", "info", false, "")
	serveCmd.SilenceUsage = true
}
