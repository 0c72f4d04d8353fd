package root

import (
	"fmt"

	configcheck "github.com/schmitthub/tplresolve/internal/cmd/config/check"
	configinit "github.com/schmitthub/tplresolve/internal/cmd/config/init"
	folderlist "github.com/schmitthub/tplresolve/internal/cmd/folder/list"
	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/spf13/cobra"
)

// Alias defines a top-level command alias to a subcommand, so that
// `tplresolve init` runs `tplresolve config init`.
// Each alias creates a new command instance from the factory, overriding only Use and
// optionally Example, while inheriting all other properties (flags, RunE, etc.).
type Alias struct {
	// Use sets the command's Use field (required)
	Use string
	// Example optionally replaces the command's Example field (empty preserves original)
	Example string
	// Command is a factory function that creates the target command
	Command func(*cmdutil.Factory) *cobra.Command
}

// topLevelAliases defines all top-level shortcuts to subcommands.
var topLevelAliases = []Alias{
	{
		Use:     "init",
		Example: initExample,
		Command: func(f *cmdutil.Factory) *cobra.Command { return configinit.NewCmdInit(f, nil) },
	},
	{
		Use:     "check",
		Example: checkExample,
		Command: func(f *cmdutil.Factory) *cobra.Command { return configcheck.NewCmdCheck(f, nil) },
	},
	{
		Use:     "folders",
		Example: foldersExample,
		Command: func(f *cmdutil.Factory) *cobra.Command { return folderlist.NewCmdList(f, nil) },
	},
}

// registerAliases adds all top-level aliases to the root command.
func registerAliases(root *cobra.Command, f *cmdutil.Factory) {
	for _, alias := range topLevelAliases {
		if alias.Use == "" {
			panic("alias has empty Use field")
		}
		if alias.Command == nil {
			panic(fmt.Sprintf("alias %q has nil Command factory", alias.Use))
		}
		cmd := alias.Command(f)
		if cmd == nil {
			panic(fmt.Sprintf("alias %q factory returned nil command", alias.Use))
		}
		cmd.Use = alias.Use
		cmd.Aliases = nil
		if alias.Example != "" {
			cmd.Example = alias.Example
		}
		root.AddCommand(cmd)
	}
}

const initExample = `  # Create tplresolve.yaml in the current directory
  tplresolve init

  # Overwrite an existing file
  tplresolve init --force`

const checkExample = `  # Validate the configuration found from the current directory
  tplresolve check`

const foldersExample = `  # List registered folders
  tplresolve folders`
