package tplresolve

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/schmitthub/tplresolve/internal/cmd/factory"
	"github.com/schmitthub/tplresolve/internal/cmd/root"
	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/schmitthub/tplresolve/internal/logger"
	"github.com/schmitthub/tplresolve/internal/signals"
)

// Build-time variables injected via ldflags
var (
	Version = "dev"
	Commit  = "none"
)

const (
	exitOk    = 0
	exitError = 1
	exitUsage = 2
)

// Main is the entry point for the tplresolve CLI.
// It initializes the Factory, creates the root command, and executes it.
func Main() int {
	// Ensure logs are flushed on exit
	defer logger.CloseFileWriter()

	ctx, cancel := signals.SetupSignalContext(context.Background())
	defer cancel()

	f := factory.New(Version, Commit)
	code := run(ctx, f, os.Args[1:])
	if sig, ok := signals.Interrupted(ctx); ok {
		logger.Debug().Str("signal", sig.String()).Msg("interrupted")
	}
	return code
}

// run executes the command tree for args and maps the outcome to an exit code.
func run(ctx context.Context, f *cmdutil.Factory, args []string) int {
	rootCmd := root.NewCmdRoot(f)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(f.IOStreams.In)
	rootCmd.SetOut(f.IOStreams.Out)
	rootCmd.SetErr(f.IOStreams.ErrOut)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return exitOk
	}

	ios := f.IOStreams
	var (
		exitErr *cmdutil.ExitError
		flagErr *cmdutil.FlagError
	)
	switch {
	case errors.Is(err, cmdutil.SilentError):
		return exitError
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.As(err, &flagErr) || isCobraUsageError(err):
		fmt.Fprintf(ios.ErrOut, "Error: %s\n", err)
		fmt.Fprintln(ios.ErrOut)
		fmt.Fprint(ios.ErrOut, cmd.UsageString())
		return exitUsage
	default:
		fmt.Fprintf(ios.ErrOut, "Error: %s\n", err)
		cmdutil.PrintHelpHint(ios, cmd.CommandPath())
		return exitError
	}
}
