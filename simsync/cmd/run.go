package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/simsync/logging"
)

func newRunCommand() *cobra.Command {
	var (
		opts     runOptions
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario against the in-memory host.",
		Long: `Run a scenario against the in-memory host and print what the ` +
			`session saw on each frame.

Example:
  simsync run scenarios/lights.yaml
  simsync run --record lights --monitor 8080 --open-monitor scenarios/lights.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}

			sc, err := LoadScenario(args[0])
			if err != nil {
				return err
			}

			logger := logging.New(cmd.ErrOrStderr(), level)

			return newRunner(sc, opts, cmd.OutOrStdout(), logger).run()
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", envOr(EnvLogLevel, "warn"),
		"trace, debug, info, warn or error")
	cmd.Flags().StringVar(&opts.record, "record", envOr(EnvRecordPath, ""),
		"record the session into <path>.sqlite3")
	cmd.Flags().IntVar(&opts.monitorPort, "monitor", envIntOr(EnvMonitorPort, 0),
		"serve the monitor on this port; 0 turns monitoring off")
	cmd.Flags().BoolVar(&opts.openMonitor, "open-monitor", false,
		"open the monitor in a browser")

	return cmd
}
