/*
Command math3d evaluates TOML workbooks of vector, matrix and quaternion
operations with the engine package.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/math3d/engine"
	"github.com/spaghettifunk/math3d/engine/core"
	"github.com/spaghettifunk/math3d/engine/workbook"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configFile string
	logLevel   string
	workers    int
	tolerance  float64
	quiet      bool
)

var errFailedSteps = errors.New("some workbook steps failed")

func main() {
	rootCmd := &cobra.Command{
		Use:           "math3d",
		Short:         "small-dimension linear algebra workbooks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", engine.DefaultSettingsFile, "settings file (toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "number of evaluation workers")
	rootCmd.PersistentFlags().Float64Var(&tolerance, "tolerance", 0, "default expectation tolerance")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "print summaries instead of full reports")

	evalCmd := &cobra.Command{
		Use:   "eval [workbook...]",
		Short: "evaluate workbooks and print their reports",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runEval,
	}

	watchCmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "evaluate workbooks again whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWatch,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	rootCmd.AddCommand(evalCmd, watchCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailedSteps) {
			core.LogError(err.Error())
		}
		os.Exit(1)
	}
}

func loadSettings(cmd *cobra.Command) (engine.Settings, error) {
	settings, err := engine.LoadSettings(configFile)
	if err != nil {
		return settings, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		settings.LogLevel = logLevel
	}
	if flags.Changed("workers") {
		settings.Workers = workers
	}
	if flags.Changed("tolerance") {
		settings.Tolerance = tolerance
	}
	return settings, nil
}

// startEngine builds and initializes an engine bound to a context that is
// cancelled on SIGINT, SIGTERM or SIGQUIT.
func startEngine(cmd *cobra.Command) (*engine.Engine, context.Context, context.CancelFunc, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	e, err := engine.New(settings)
	if err != nil {
		return nil, nil, nil, err
	}

	// capture sigterm and other system calls here
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	if err := e.Initialize(ctx); err != nil {
		stop()
		return nil, nil, nil, err
	}
	return e, ctx, stop, nil
}

func printReport(cmd *cobra.Command, r *workbook.Report) {
	if quiet {
		fmt.Fprintln(cmd.OutOrStdout(), r.Summary())
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), r.Render())
}

func runEval(cmd *cobra.Command, args []string) error {
	e, _, stop, err := startEngine(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer e.Shutdown()

	reports, err := e.Evaluate(args)
	failed := false
	for _, r := range reports {
		if r == nil {
			continue
		}
		printReport(cmd, r)
		failed = failed || !r.OK()
	}
	if err != nil {
		return err
	}
	if failed {
		return errFailedSteps
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	e, ctx, stop, err := startEngine(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer e.Shutdown()

	dir := e.Settings().WatchDir
	if len(args) == 1 {
		dir = args[0]
	}
	return e.Watch(ctx, dir, func(r *workbook.Report) {
		printReport(cmd, r)
	})
}
