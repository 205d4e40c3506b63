// Package main is the entry point for the kindplane application.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/devantler-tech/kindplane/internal/buildmeta"
	"github.com/devantler-tech/kindplane/pkg/cli/cmd"
	"github.com/devantler-tech/kindplane/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/kindplane/pkg/svc/provider"
	"github.com/devantler-tech/kindplane/pkg/utils/notify"
)

const (
	exitOK      = 0
	exitFailure = 1
	// exitUsage signals command-line usage mistakes such as unknown flags or
	// invalid configuration values.
	exitUsage = 2
	// exitMissingTool signals that a required binary was not found on PATH.
	exitMissingTool = 127
)

func main() {
	exitCode := runSafely(os.Args[1:], runWithArgs, os.Stderr)

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			panicMessage := fmt.Sprintf("panic recovered: %v\n%s", r, debug.Stack())
			notify.WriteMessage(notify.Message{
				Type:    notify.ErrorType,
				Content: panicMessage,
				Writer:  errWriter,
			})

			exitCode = exitFailure
		}
	}()

	exitCode = runner(args)

	return exitCode
}

func runWithArgs(args []string) int {
	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)

	err := cmd.Execute(rootCmd)
	if err != nil {
		notify.Errorf(rootCmd.ErrOrStderr(), "%v", err)

		return exitCodeFor(err)
	}

	return exitOK
}

// exitCodeFor maps an execution failure to the process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, provider.ErrMissingTool):
		return exitMissingTool
	case errorhandler.IsUsageError(err):
		return exitUsage
	default:
		return exitFailure
	}
}
