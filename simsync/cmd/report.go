package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/simsync/datarecording"
)

func newReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report <recording.sqlite3>",
		Short: "Summarize a recorded session.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return err
			}

			reader, err := datarecording.NewReader(args[0])
			if err != nil {
				return err
			}
			defer reader.Close()

			return report(cmd.Context(), reader, cmd)
		},
	}
}

func report(ctx context.Context, reader datarecording.DataReader, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()

	reader.MapTable(datarecording.ExecTableName, datarecording.ExecInfo{})

	infos, _, err := reader.Query(ctx, datarecording.ExecTableName, datarecording.QueryParams{})
	if err != nil {
		return err
	}

	for _, i := range infos {
		info := i.(*datarecording.ExecInfo)
		fmt.Fprintf(out, "%s: %s\n", info.Property, info.Value)
	}

	tables, err := reader.ListTables(ctx)
	if err != nil {
		return err
	}

	for _, table := range tables {
		if table == datarecording.ExecTableName {
			continue
		}

		n, err := reader.Count(ctx, table, datarecording.QueryParams{})
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s: %d rows\n", table, n)
	}

	dropped, err := reader.Count(ctx, datarecording.MessageTableName,
		datarecording.QueryParams{Where: "Dropped = ?", Args: []any{true}})
	if err != nil {
		return err
	}

	skipped, err := reader.Count(ctx, datarecording.FrameTableName,
		datarecording.QueryParams{Where: "Skipped = ?", Args: []any{true}})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "dropped messages: %d\nskipped frames: %d\n", dropped, skipped)

	return nil
}
