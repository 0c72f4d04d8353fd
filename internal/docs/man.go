package docs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/spf13/cobra"
)

// GenManHeader contains man page metadata
type GenManHeader struct {
	Section string
	Date    *time.Time
	Source  string
	Manual  string
}

// DefaultManHeader is used by GenManTree.
func DefaultManHeader() *GenManHeader {
	return &GenManHeader{
		Section: "1",
		Source:  "tplresolve",
		Manual:  "tplresolve Manual",
	}
}

// GenManTree writes one man page per command into dir, named like
// "tplresolve-folder-add.1".
func GenManTree(cmd *cobra.Command, dir string, header *GenManHeader) error {
	if header == nil {
		header = DefaultManHeader()
	}
	if header.Section == "" {
		header.Section = "1"
	}
	return walk(cmd, func(c *cobra.Command) error {
		path := join(dir, basename(c, "-")+"."+header.Section)
		return writeFile(path, func(f *os.File) error {
			return GenMan(c, header, f)
		})
	})
}

// GenMan renders the man page for a single command through md2man.
func GenMan(cmd *cobra.Command, header *GenManHeader, w io.Writer) error {
	if header == nil {
		header = DefaultManHeader()
	}
	_, err := w.Write(md2man.Render(manMarkdown(cmd, header)))
	return err
}

func manMarkdown(cmd *cobra.Command, header *GenManHeader) []byte {
	cmd.InitDefaultHelpFlag()

	section := header.Section
	if section == "" {
		section = "1"
	}
	name := cmd.CommandPath()

	var buf bytes.Buffer
	date := ""
	if header.Date != nil {
		date = header.Date.Format("Jan 2006")
	}
	fmt.Fprintf(&buf, "%% %s(%s) %s | %s\n", strings.ToUpper(basename(cmd, "-")), section, header.Source, header.Manual)
	fmt.Fprintf(&buf, "%% %s\n%% %s\n\n", header.Source, date)

	buf.WriteString("# NAME\n")
	fmt.Fprintf(&buf, "%s \\- %s\n\n", name, cmd.Short)

	buf.WriteString("# SYNOPSIS\n")
	fmt.Fprintf(&buf, "**%s**", cmd.UseLine())
	buf.WriteString("\n\n")

	if cmd.Long != "" {
		fmt.Fprintf(&buf, "# DESCRIPTION\n%s\n\n", cmd.Long)
	}

	if subs := visibleCommands(cmd); len(subs) > 0 {
		buf.WriteString("# COMMANDS\n")
		for _, c := range subs {
			fmt.Fprintf(&buf, "**%s**\n: %s\n\n", c.Name(), c.Short)
		}
	}

	flags := append(flagDocs(cmd.NonInheritedFlags()), flagDocs(cmd.InheritedFlags())...)
	if len(flags) > 0 {
		buf.WriteString("# OPTIONS\n")
		for _, f := range flags {
			if f.shorthand != "" {
				fmt.Fprintf(&buf, "**-%s**, ", f.shorthand)
			}
			fmt.Fprintf(&buf, "**--%s**", f.name)
			if f.kind != "bool" {
				fmt.Fprintf(&buf, " <%s>", f.kind)
			}
			buf.WriteString("\n: " + f.usage)
			if f.def != "" {
				fmt.Fprintf(&buf, " (default: %s)", f.def)
			}
			buf.WriteString("\n\n")
		}
	}

	if cmd.Example != "" {
		fmt.Fprintf(&buf, "# EXAMPLES\n```\n%s\n```\n\n", cmd.Example)
	}

	var related []string
	if cmd.HasParent() {
		related = append(related, fmt.Sprintf("**%s(%s)**", basename(cmd.Parent(), "-"), section))
	}
	for _, c := range visibleCommands(cmd) {
		related = append(related, fmt.Sprintf("**%s(%s)**", basename(c, "-"), section))
	}
	if len(related) > 0 {
		fmt.Fprintf(&buf, "# SEE ALSO\n%s\n", strings.Join(related, ", "))
	}

	return buf.Bytes()
}
