package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/targetsweep/cmd/targetsweep/tui"
	"github.com/jamesainslie/targetsweep/pkg/sweep/config"
	"github.com/jamesainslie/targetsweep/pkg/sweep/output"
	"github.com/jamesainslie/targetsweep/pkg/sweep/scanner"
	"github.com/jamesainslie/targetsweep/pkg/sweep/trash"
	"github.com/jamesainslie/targetsweep/pkg/sweep/types"
)

// Replaced in tests.
var (
	runTUI           = tui.Run
	outputIsTerminal = isTerminal
)

// runSweep scans, then shows the interactive list.
func (a *app) runSweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := a.scan(ctx, cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(res.Matches) == 0 {
		printInfo(out, "No target folders found!")
		return nil
	}

	// Piped output gets the plain list instead of a TUI.
	if !outputIsTerminal(out) {
		data, err := output.Render("plain", output.FromScan(res, a.runID))
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	trashOpts, err := a.cfg.TrashOptions()
	if err != nil {
		return err
	}

	if err := a.initLogging(true); err != nil {
		return &ExitError{Code: exitTUIFailed, Err: err}
	}

	err = runTUI(ctx, tui.Options{
		Result:  res,
		Deleter: trash.New(trashOpts),
		DryRun:  trashOpts.DryRun,
	})
	if err != nil {
		a.log.Error("tui failed", "err", err)
		return &ExitError{Code: exitTUIFailed, Err: err}
	}

	return nil
}

// scan resolves the path argument and runs the scanner. A failure is an
// ExitError with exit code 1.
func (a *app) scan(ctx context.Context, cmd *cobra.Command, args []string) (*types.ScanResult, error) {
	path := scanner.DefaultRoot
	if len(args) > 0 {
		path = args[0]
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, &ExitError{Code: exitScanFailed, Err: err}
	}

	printInfo(cmd.ErrOrStderr(), "Scanning %s...", expanded)

	s := scanner.New(scanner.Options{
		Root: expanded,
		OnProgress: func(p types.ScanProgress) {
			a.log.Debug("scan progress", "dirs", p.DirsScanned, "matches", p.Matches, "current", p.CurrentPath)
		},
	})

	res, err := s.Scan(ctx)
	if err != nil {
		a.log.Error("scan failed", "root", expanded, "err", err)
		return nil, &ExitError{Code: exitScanFailed, Err: fmt.Errorf("scan failed: %w", err)}
	}

	stats := res.Stats()
	a.log.Info("scan complete", "root", res.Root, "found", stats.Found, "dirs", stats.Dirs, "errors", stats.Errors)

	return res, nil
}
