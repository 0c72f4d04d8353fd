package root

import (
	configcmd "github.com/schmitthub/tplresolve/internal/cmd/config"
	"github.com/schmitthub/tplresolve/internal/cmd/folder"
	"github.com/schmitthub/tplresolve/internal/cmd/resolve"
	versioncmd "github.com/schmitthub/tplresolve/internal/cmd/version"
	"github.com/schmitthub/tplresolve/internal/cmd/watch"
	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/schmitthub/tplresolve/internal/logger"
	"github.com/spf13/cobra"
)

// NewCmdRoot creates the root command for the tplresolve CLI.
func NewCmdRoot(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tplresolve",
		Short: "Resolve template names to files across overridable template folders",
		Long: `tplresolve maps template names such as "blog::post/index" or "blog/post/index"
to the file they refer to, using a default template directory and named
folders that modules register.

Strategies:
  direct             A name with a folder is looked up in that folder only
  reverse-fallback   The default directory wins; the folder is the fallback,
                     so an application can override any module template

Quick start:
  tplresolve config init                      # Create tplresolve.yaml
  tplresolve folder add blog ./Blog/templates # Register a module folder
  tplresolve resolve blog/post/index          # Print the resolved path`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initializeLogger(f)

			logger.Debug().
				Str("version", f.Version).
				Str("command", cmd.CommandPath()).
				Bool("debug", f.Debug).
				Msg("tplresolve starting")

			return nil
		},
		Version: f.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&f.ConfigPath, "config", "c", "", "Path to tplresolve.yaml (default: search working directory, then user config dir)")
	cmd.PersistentFlags().BoolVarP(&f.Debug, "debug", "D", false, "Enable debug logging")

	cmd.SetVersionTemplate(versioncmd.Format(f.Version, f.Commit))

	registerAliases(cmd, f)

	cmd.AddCommand(resolve.NewCmdResolve(f, nil))
	cmd.AddCommand(watch.NewCmdWatch(f, nil))
	cmd.AddCommand(folder.NewCmdFolder(f))
	cmd.AddCommand(configcmd.NewCmdConfig(f))
	cmd.AddCommand(versioncmd.NewCmdVersion(f, nil))

	return cmd
}

// initializeLogger sets up the logger with file logging if possible.
// Falls back to console-only logging on any errors.
func initializeLogger(f *cmdutil.Factory) {
	invocation := logger.NewInvocationID()

	if f.Config == nil {
		logger.Init(f.Debug)
		logger.SetContext("", invocation)
		return
	}

	cfg, err := f.Config()
	if err != nil {
		// The command reports the config error itself.
		logger.Init(f.Debug)
		logger.SetContext("", invocation)
		logger.Debug().Err(err).Msg("file logging unavailable: failed to load config")
		return
	}

	if err := logger.InitWithFile(f.Debug, cfg.LogsDir(), cfg.LoggerConfig()); err != nil {
		logger.Init(f.Debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to initialize file writer")
	}
	logger.SetContext(cfg.Strategy, invocation)
}
