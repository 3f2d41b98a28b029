package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tetratelabs/wasmvm"
	"github.com/tetratelabs/wasmvm/internal/logging"
	"github.com/tetratelabs/wasmvm/internal/wast"
)

var errCommandsFailed = errors.New("commands failed")

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] script.wast...",
		Short: "Run scripts and report their results",
		Long: `Run parses each script, instantiates its modules and runs its commands.

Each failed command is printed with its position, followed by a summary per script. The exit code
is 1 if any script didn't parse or any command failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScripts,
	}
	cmd.Flags().Bool("strict", false, "Fail calls which reach an unsupported operation, instead of skipping it")
	cmd.Flags().Bool("fail-fast", false, "Stop each script at its first failed command")
	return cmd
}

func runScripts(cmd *cobra.Command, paths []string) (err error) {
	c, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(c.Log.Level, c.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	rt := wasmvm.NewRuntimeWithConfig(wasmvm.NewRuntimeConfig().
		WithLogger(logger).
		WithStrictUnsupported(c.Runtime.StrictUnsupported))

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range paths {
		report, parseErr := runScript(rt, logger.With(zap.String("script", path)), c.Runtime.FailFast, path)
		if parseErr != nil {
			err = multierr.Append(err, parseErr)
			continue
		}
		for _, f := range report.Failures {
			fmt.Fprintf(out, "%s:%v\n", path, f)
		}
		fmt.Fprintf(out, "%s: %s\n", path, report)
		failed += report.Failed
	}

	if failed > 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %d", errCommandsFailed, failed))
	}
	return err
}

// runScript returns the report of the script at path, or an error if it couldn't be read or parsed.
func runScript(rt wasmvm.Runtime, logger *zap.Logger, failFast bool, path string) (*wast.Report, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}
	s, err := wast.ParseScript(source, logger)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	r := &wast.Runner{Runtime: rt, Logger: logger, FailFast: failFast}
	return r.Run(s), nil
}
