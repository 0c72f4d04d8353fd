package folder

import (
	"github.com/spf13/cobra"

	"github.com/schmitthub/tplresolve/internal/cmd/folder/add"
	"github.com/schmitthub/tplresolve/internal/cmd/folder/list"
	"github.com/schmitthub/tplresolve/internal/cmdutil"
)

// NewCmdFolder creates the folder command.
func NewCmdFolder(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage template folder aliases",
		Long: `Commands for listing and registering folder aliases.

A folder maps an alias to a directory of templates, so that "blog::post/index"
or "blog/post/index" can find templates a module ships outside the default
template directory.`,
	}

	cmd.AddCommand(list.NewCmdList(f, nil))
	cmd.AddCommand(add.NewCmdAdd(f, nil))

	return cmd
}
