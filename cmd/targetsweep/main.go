// Package main is the targetsweep command: it finds Cargo build output
// directories below a path and lets the operator send them to the trash.
package main

import (
	"errors"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit code. It is
// the only place that decides how the process ends.
func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err != nil {
		printError(cmd.ErrOrStderr(), err)
	}
	return exitCode(err)
}

// Exit codes.
const (
	exitOK         = 0
	exitScanFailed = 1
	exitTUIFailed  = 2
)

// ExitError carries a process exit code up to main.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps an error returned by a command to an exit code. Errors
// without an ExitError, such as usage errors, exit with 1.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return exitScanFailed
}
