package config

import (
	"github.com/schmitthub/tplresolve/internal/cmd/config/check"
	initcmd "github.com/schmitthub/tplresolve/internal/cmd/config/init"
	"github.com/schmitthub/tplresolve/internal/cmd/config/show"
	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/spf13/cobra"
)

// NewCmdConfig creates the config command.
func NewCmdConfig(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		Long:  `Commands for creating, inspecting and validating tplresolve.yaml.`,
	}

	cmd.AddCommand(initcmd.NewCmdInit(f, nil))
	cmd.AddCommand(show.NewCmdShow(f, nil))
	cmd.AddCommand(check.NewCmdCheck(f, nil))

	return cmd
}
