// Package docs renders reference documentation for the tplresolve command
// tree as Markdown pages and man pages.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// visibleCommands returns the documented subcommands of cmd, sorted by name.
// Hidden commands and the generated help command are skipped.
func visibleCommands(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand() {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// walk calls fn for cmd and every visible descendant, children first.
func walk(cmd *cobra.Command, fn func(*cobra.Command) error) error {
	for _, c := range visibleCommands(cmd) {
		if err := walk(c, fn); err != nil {
			return err
		}
	}
	return fn(cmd)
}

// writeFile creates path and lets render fill it.
func writeFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// basename joins the command path with sep: "tplresolve folder add" becomes
// "tplresolve_folder_add" for sep "_".
func basename(cmd *cobra.Command, sep string) string {
	return strings.ReplaceAll(cmd.CommandPath(), " ", sep)
}

type flagDoc struct {
	name      string
	shorthand string
	kind      string
	usage     string
	def       string
}

// flagDocs lists the visible flags of fs, sorted by name.
func flagDocs(fs *pflag.FlagSet) []flagDoc {
	var out []flagDoc
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		d := flagDoc{
			name:      f.Name,
			shorthand: f.Shorthand,
			kind:      f.Value.Type(),
			usage:     f.Usage,
		}
		switch f.DefValue {
		case "", "false", "0", "0s", "[]":
		default:
			d.def = f.DefValue
		}
		out = append(out, d)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// EnsureDir creates dir, including parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func join(dir, name string) string { return filepath.Join(dir, name) }
