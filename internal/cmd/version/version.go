package version

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/schmitthub/tplresolve/internal/iostreams"
	"github.com/spf13/cobra"
)

// VersionOptions holds options for the version command.
type VersionOptions struct {
	IOStreams *iostreams.IOStreams
	Version   string
	Commit    string
	JSON      bool
}

// Info is the machine-readable version report.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// NewCmdVersion creates the "version" subcommand.
func NewCmdVersion(f *cmdutil.Factory, runF func(context.Context, *VersionOptions) error) *cobra.Command {
	opts := &VersionOptions{
		IOStreams: f.IOStreams,
		Version:   f.Version,
		Commit:    f.Commit,
	}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of tplresolve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return versionRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output version information as JSON")

	return cmd
}

func versionRun(_ context.Context, opts *VersionOptions) error {
	if opts.JSON {
		return cmdutil.WriteJSON(opts.IOStreams.Out, Info{
			Version:   strings.TrimPrefix(opts.Version, "v"),
			Commit:    opts.Commit,
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		})
	}
	fmt.Fprint(opts.IOStreams.Out, Format(opts.Version, opts.Commit))
	return nil
}

// Format returns the version string for display.
func Format(version, commit string) string {
	version = strings.TrimPrefix(version, "v")

	var commitStr string
	if commit != "" {
		commitStr = fmt.Sprintf(" (%s)", commit)
	}

	return fmt.Sprintf("tplresolve version %s%s\n", version, commitStr)
}
