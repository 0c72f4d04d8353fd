package add

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/schmitthub/tplresolve/internal/config"
	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/iostreams"
	"github.com/schmitthub/tplresolve/internal/logger"
)

// AddOptions holds options for the folder add command.
type AddOptions struct {
	IOStreams  *iostreams.IOStreams
	Config     func() (*config.Config, error)
	ConfigPath func() string

	Name string
	Path string
}

// NewCmdAdd creates the folder add command.
func NewCmdAdd(f *cmdutil.Factory, runF func(context.Context, *AddOptions) error) *cobra.Command {
	opts := &AddOptions{
		IOStreams:  f.IOStreams,
		Config:     f.Config,
		ConfigPath: func() string { return f.ConfigPath },
	}

	cmd := &cobra.Command{
		Use:   "add NAME PATH",
		Short: "Register a folder alias",
		Long: `Registers a folder alias in tplresolve.yaml. PATH is relative to the working
directory; it is stored relative to the configuration file when it lies below
the configuration file's directory.

If no configuration file exists yet, tplresolve.yaml is created in the working
directory.`,
		Example: `  # Register the templates a module ships
  tplresolve folder add blog ./modules/Blog/templates`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name, opts.Path = args[0], args[1]
			if err := engine.ValidateFolderName(opts.Name); err != nil {
				return cmdutil.FlagErrorWrap(err)
			}
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return addRun(cmd.Context(), opts)
		},
	}

	return cmd
}

func addRun(_ context.Context, opts *AddOptions) error {
	ios := opts.IOStreams
	cs := ios.ColorScheme()

	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	for _, f := range cfg.Folders {
		if f.Name == opts.Name {
			return fmt.Errorf("folder %q is already registered at %s", opts.Name, f.Path)
		}
	}

	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", opts.Path, err)
	}
	stored := relativeTo(cfg.BaseDir(), abs)

	cfg.AddFolder(opts.Name, stored)
	if err := config.NewValidator().Validate(cfg); err != nil {
		return err
	}
	if err := cfg.Write(config.WriteOptions{Path: opts.ConfigPath()}); err != nil {
		return err
	}
	logger.Debug().Str("folder", opts.Name).Str("path", stored).Str("config", cfg.Path()).Msg("folder registered")

	fmt.Fprintf(ios.ErrOut, "%s Registered folder %s -> %s\n", cs.SuccessIcon(), cs.Bold(opts.Name), abs)
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		fmt.Fprintf(ios.ErrOut, "%s %s is not a directory yet; templates will not be found there\n", cs.WarningIcon(), abs)
	}
	return nil
}

// relativeTo returns path relative to base when it lies below base.
func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
