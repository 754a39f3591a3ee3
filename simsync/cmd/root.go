// Package cmd provides the command-line interface of simsync.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Environment variables that provide flag defaults. They may also come
// from a .env file in the working directory.
const (
	EnvLogLevel    = "SIMSYNC_LOG_LEVEL"
	EnvRecordPath  = "SIMSYNC_RECORD_PATH"
	EnvMonitorPort = "SIMSYNC_MONITOR_PORT"
)

// NewRootCommand creates the root command of the CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simsync",
		Short: "simsync runs scripted sessions of the data synchronization core.",
		Long: `simsync runs scripted sessions of the data synchronization core ` +
			`against an in-memory host. A session can be recorded into SQLite ` +
			`and watched through the monitoring server.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Execute loads .env, runs the root command and exits through atexit so
// that recordings are flushed.
func Execute() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "cannot load .env: %v\n", err)
	}

	if err := NewRootCommand().Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func envOr(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}

	return fallback
}

func envIntOr(name string, fallback int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return n
}
