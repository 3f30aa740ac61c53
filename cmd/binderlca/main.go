// Package main is the binderlca command-line entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/binderlca/internal/cli"
	"github.com/rshade/binderlca/pkg/version"
)

// exitInterrupted is the shell convention for a run stopped by SIGINT.
const exitInterrupted = 130

func main() {
	err := run(context.Background(), os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

func run(ctx context.Context, args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetVersionTemplate(versionText())
	return root
}

// versionText is printed by --version. Builds whose version is not a plain
// release carry a "(dev build)" marker.
func versionText() string {
	head := "binderlca " + version.GetVersion()
	if !version.IsRelease() {
		head += " (dev build)"
	}
	return fmt.Sprintf("%s\ncommit: %s\nbuilt:  %s\n", head, version.GetGitCommit(), version.GetBuildDate())
}

// exitCode maps the error returned by run to a process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return 1
	}
}
