package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/tplresolve/internal/cmdutil"
	internalconfig "github.com/schmitthub/tplresolve/internal/config"
	"github.com/schmitthub/tplresolve/internal/iostreams"
	"github.com/schmitthub/tplresolve/internal/logger"
)

// CheckOptions holds options for the config check command.
type CheckOptions struct {
	IOStreams  *iostreams.IOStreams
	ConfigPath func() string

	File string
}

// NewCmdCheck creates the config check command.
func NewCmdCheck(f *cmdutil.Factory, runF func(context.Context, *CheckOptions) error) *cobra.Command {
	opts := &CheckOptions{
		IOStreams:  f.IOStreams,
		ConfigPath: func() string { return f.ConfigPath },
	}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate tplresolve.yaml",
		Long: `Validates the tplresolve.yaml configuration file.

Checks for:
  - A default directory or at least one folder
  - Valid strategy and file extension
  - Unique, well-formed folder aliases
  - Non-negative watch and logging settings`,
		Example: `  # Validate the configuration found from the current directory
  tplresolve config check

  # Validate a specific file
  tplresolve config check --file ./deploy/tplresolve.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return checkRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Path to the configuration file (default: --config or search)")

	return cmd
}

func checkRun(_ context.Context, opts *CheckOptions) error {
	ios := opts.IOStreams
	cs := ios.ColorScheme()

	path := opts.File
	if path == "" {
		path = opts.ConfigPath()
	}
	logger.Debug().Str("path", path).Msg("checking configuration")

	cfg, err := internalconfig.Load(path)
	if err != nil {
		var multiErr *internalconfig.MultiValidationError
		switch {
		case internalconfig.IsConfigNotFound(err):
			fmt.Fprintf(ios.ErrOut, "%s %s\n", cs.FailureIcon(), err)
			cmdutil.PrintNextSteps(ios, "Run 'tplresolve config init' to create a configuration file")
		case errors.As(err, &multiErr):
			fmt.Fprintf(ios.ErrOut, "%s Configuration validation failed\n\n", cs.FailureIcon())
			for _, e := range multiErr.ValidationErrors() {
				fmt.Fprintf(ios.ErrOut, "  - %s\n", e)
			}
			cmdutil.PrintNextSteps(ios,
				"Review the errors above",
				"Edit tplresolve.yaml to fix the issues",
				"Run 'tplresolve config check' again",
			)
		default:
			fmt.Fprintf(ios.ErrOut, "%s Failed to load configuration\n", cs.FailureIcon())
			fmt.Fprintf(ios.ErrOut, "  %s\n", err)
			cmdutil.PrintNextSteps(ios, "Check YAML syntax (indentation, colons, quotes)")
		}
		return cmdutil.SilentError
	}
	if cfg.Path() == "" {
		fmt.Fprintf(ios.ErrOut, "%s No %s found; defaults are in use\n", cs.WarningIcon(), internalconfig.FileName)
		cmdutil.PrintNextSteps(ios, "Run 'tplresolve config init' to create a configuration file")
		return nil
	}

	validator := internalconfig.NewValidator()
	_ = validator.Validate(cfg)
	for _, warning := range validator.Warnings() {
		fmt.Fprintf(ios.ErrOut, "%s %s\n", cs.WarningIcon(), warning)
	}

	fmt.Fprintf(ios.ErrOut, "%s Configuration is valid!\n\n", cs.SuccessIcon())
	fmt.Fprintf(ios.ErrOut, "  File:      %s\n", cfg.Path())
	fmt.Fprintf(ios.ErrOut, "  Directory: %s\n", cfg.DirectoryPath())
	fmt.Fprintf(ios.ErrOut, "  Strategy:  %s\n", cfg.Strategy)
	fmt.Fprintf(ios.ErrOut, "  Folders:   %d\n", len(cfg.Folders))
	return nil
}
