// Package main is the entry point for the daytrack CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/daytrack/internal/app"
	"github.com/runoshun/daytrack/internal/cli"
	"github.com/runoshun/daytrack/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

// exitShutdown tells a desktop host to close its window.
const exitShutdown = 3

// newRootCommand is a function variable so tests can swap the root command.
var newRootCommand = cli.NewRootCommand

func main() {
	os.Exit(exitCode(run()))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrShutdownRequested):
		return exitShutdown
	default:
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
}

func run() error {
	dataDir, err := app.DefaultDataDir()
	if err != nil {
		return fmt.Errorf("failed to resolve data directory: %w", err)
	}

	// Create dependency injection container
	container, err := app.New(dataDir)
	if err != nil {
		// Help and version still work when the data directory is unusable
		return runWithoutContainer(fmt.Errorf("failed to initialize: %w", err))
	}
	defer func() { _ = container.Close() }()

	// Create and execute root command
	rootCmd := newRootCommand(container, version)
	return rootCmd.Execute()
}

// runWithoutContainer runs help and version without a container.
// Other commands report initErr.
func runWithoutContainer(initErr error) error {
	if canRunWithoutContainer(os.Args[1:]) {
		return newRootCommand(nil, version).Execute()
	}
	return initErr
}

func canRunWithoutContainer(args []string) bool {
	if len(args) > 0 && args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "--help" || arg == "-h" || strings.HasPrefix(arg, "--help=") {
			return true
		}
	}
	return false
}
