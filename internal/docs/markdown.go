package docs

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// GenMarkdownTree writes one Markdown page per command into dir.
func GenMarkdownTree(cmd *cobra.Command, dir string) error {
	return GenMarkdownTreeCustom(cmd, dir, func(string) string { return "" }, func(name string) string { return name + ".md" })
}

// GenMarkdownTreeCustom writes one Markdown page per command into dir.
// prepend returns content placed before each page (front matter); link
// turns a page basename into the target of a cross reference.
func GenMarkdownTreeCustom(cmd *cobra.Command, dir string, prepend, link func(string) string) error {
	return walk(cmd, func(c *cobra.Command) error {
		path := join(dir, basename(c, "_")+".md")
		return writeFile(path, func(f *os.File) error {
			if _, err := io.WriteString(f, prepend(path)); err != nil {
				return err
			}
			return GenMarkdownCustom(c, f, link)
		})
	})
}

// GenMarkdown writes the Markdown page for a single command.
func GenMarkdown(cmd *cobra.Command, w io.Writer) error {
	return GenMarkdownCustom(cmd, w, func(name string) string { return name + ".md" })
}

// GenMarkdownCustom writes the Markdown page for a single command using link
// for cross references.
func GenMarkdownCustom(cmd *cobra.Command, w io.Writer, link func(string) string) error {
	cmd.InitDefaultHelpFlag()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "## %s\n\n", cmd.CommandPath())
	if cmd.Short != "" {
		fmt.Fprintf(&buf, "%s\n\n", cmd.Short)
	}

	if cmd.Long != "" {
		fmt.Fprintf(&buf, "### Synopsis\n\n%s\n\n", cmd.Long)
	}
	if cmd.Runnable() {
		fmt.Fprintf(&buf, "```\n%s\n```\n\n", cmd.UseLine())
	}

	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(&buf, "### Aliases\n\n`%s`\n\n", joinQuoted(cmd.Aliases))
	}

	if cmd.Example != "" {
		fmt.Fprintf(&buf, "### Examples\n\n```\n%s\n```\n\n", cmd.Example)
	}

	mdFlags(&buf, "Options", flagDocs(cmd.NonInheritedFlags()))
	mdFlags(&buf, "Options inherited from parent commands", flagDocs(cmd.InheritedFlags()))

	subs := visibleCommands(cmd)
	if cmd.HasParent() || len(subs) > 0 {
		buf.WriteString("### See also\n\n")
		if cmd.HasParent() {
			p := cmd.Parent()
			fmt.Fprintf(&buf, "* [%s](%s) - %s\n", p.CommandPath(), link(basename(p, "_")), p.Short)
		}
		for _, c := range subs {
			fmt.Fprintf(&buf, "* [%s](%s) - %s\n", c.CommandPath(), link(basename(c, "_")), c.Short)
		}
		buf.WriteString("\n")
	}

	_, err := buf.WriteTo(w)
	return err
}

func mdFlags(buf *bytes.Buffer, title string, flags []flagDoc) {
	if len(flags) == 0 {
		return
	}
	fmt.Fprintf(buf, "### %s\n\n", title)
	buf.WriteString("| Flag | Type | Default | Description |\n")
	buf.WriteString("|------|------|---------|-------------|\n")
	for _, f := range flags {
		name := "`--" + f.name + "`"
		if f.shorthand != "" {
			name = "`-" + f.shorthand + "`, " + name
		}
		def := ""
		if f.def != "" {
			def = "`" + f.def + "`"
		}
		fmt.Fprintf(buf, "| %s | %s | %s | %s |\n", name, f.kind, def, f.usage)
	}
	buf.WriteString("\n")
}

func joinQuoted(items []string) string {
	var buf bytes.Buffer
	for i, s := range items {
		if i > 0 {
			buf.WriteString("`, `")
		}
		buf.WriteString(s)
	}
	return buf.String()
}
