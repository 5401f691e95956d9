package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/targetsweep/pkg/sweep/config"
	"github.com/jamesainslie/targetsweep/pkg/sweep/logging"
)

// app holds what the persistent pre-run hook prepared for a command.
type app struct {
	cfgFile string
	cfg     *config.Config
	runID   string
	log     *logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "targetsweep [path]",
		Short: "Find and trash Rust target directories",
		Long: `targetsweep walks a directory tree, finds every Cargo project that has
a target/ build directory, and lists those directories so you can send them
to the trash one at a time or all at once.

Hidden directories and symbolic links are never entered.

Keys:
  up/down, k/j   move the selection
  delete, x      trash the selected directory
  a              trash every listed directory
  esc, q         quit

Examples:
  targetsweep                 # Scan the current directory
  targetsweep ~/src           # Scan a specific directory
  targetsweep list -o json .  # Non-interactive JSON output`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logging.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSweep(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: "+config.DefaultFile()+")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output on stderr")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// initialize loads configuration and starts logging.
func (a *app) initialize(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	if err := a.initLogging(false); err != nil {
		// Logging is not essential; keep going without a log file.
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	a.runID = uuid.NewString()
	a.log = logging.Get("cli").With("run_id", a.runID)
	a.log.Debug("command started", "command", cmd.CommandPath(), "config", cfg.File())

	return nil
}

// initLogging (re)initializes logging. In TUI mode console output is
// disabled and recent entries are buffered for the status line.
func (a *app) initLogging(tuiMode bool) error {
	logCfg, err := a.cfg.LoggingOptions()
	if err != nil {
		return err
	}

	logCfg.TUIMode = tuiMode
	if getVerbose() {
		logCfg.Level = "debug"
		logCfg.ConsoleLevel = "debug"
	} else {
		logCfg.ConsoleLevel = "warn"
	}

	if err := logging.Init(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// printInfo prints a line to w.
func printInfo(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// printError prints err to w, in red when w is a terminal.
func printError(w io.Writer, err error) {
	c := color.New(color.FgRed, color.Bold)
	if !isTerminal(w) {
		c.DisableColor()
	}
	fmt.Fprintf(w, "%s %v\n", c.Sprint("Error:"), err)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
