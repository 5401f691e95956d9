package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/targetsweep/pkg/sweep/output"
)

func newListCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "Print target directories without the interactive list",
		Long: `Scan like the root command and print the results.

Formats: ` + strings.Join(output.Available(), ", "),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Reject an unknown format before scanning.
			if _, err := output.Get(format); err != nil {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(output.Available(), ", "))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := a.scan(ctx, cmd, args)
			if err != nil {
				return err
			}

			data, err := output.Render(format, output.FromScan(res, a.runID))
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "table", "output format")

	return cmd
}
