// gen-docs generates the tplresolve CLI reference as Markdown pages and man
// pages.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schmitthub/tplresolve/internal/cmd/root"
	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/schmitthub/tplresolve/internal/docs"
	"github.com/schmitthub/tplresolve/internal/iostreams"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("gen-docs", pflag.ContinueOnError)

	var (
		flagDocPath  string
		flagMarkdown bool
		flagManPage  bool
		flagWebsite  bool
	)

	flags.StringVar(&flagDocPath, "doc-path", "", "Output directory for generated docs (required)")
	flags.BoolVar(&flagMarkdown, "markdown", false, "Generate Markdown documentation")
	flags.BoolVar(&flagManPage, "man-page", false, "Generate man pages")
	flags.BoolVar(&flagWebsite, "website", false, "Add Jekyll front matter (requires --markdown)")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n\n%s", filepath.Base(args[0]), flags.FlagUsages())
	}

	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	if flagDocPath == "" {
		return fmt.Errorf("--doc-path is required")
	}
	if !flagMarkdown && !flagManPage {
		return fmt.Errorf("at least one format must be specified (--markdown, --man-page)")
	}
	if flagWebsite && !flagMarkdown {
		return fmt.Errorf("--website requires --markdown")
	}

	// The tree is only walked, never executed, so no closures are wired.
	f := &cmdutil.Factory{IOStreams: iostreams.New()}
	rootCmd := root.NewCmdRoot(f)
	rootCmd.DisableAutoGenTag = true

	if flagMarkdown {
		dir := filepath.Join(flagDocPath, "markdown")
		if err := docs.EnsureDir(dir); err != nil {
			return err
		}

		var err error
		if flagWebsite {
			err = docs.GenMarkdownTreeCustom(rootCmd, dir, jekyllFilePrepender, jekyllLinkHandler)
		} else {
			err = docs.GenMarkdownTree(rootCmd, dir)
		}
		if err != nil {
			return fmt.Errorf("failed to generate Markdown documentation: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Generated Markdown documentation in %s\n", dir)
	}

	if flagManPage {
		dir := filepath.Join(flagDocPath, "man")
		if err := docs.EnsureDir(dir); err != nil {
			return err
		}
		if err := docs.GenManTree(rootCmd, dir, nil); err != nil {
			return fmt.Errorf("failed to generate man pages: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Generated man pages in %s\n", dir)
	}

	return nil
}

// jekyllFilePrepender returns Jekyll front matter for a given filename.
func jekyllFilePrepender(filename string) string {
	// "tplresolve_folder_add.md" -> "tplresolve folder add"
	name := strings.TrimSuffix(filepath.Base(filename), ".md")

	return fmt.Sprintf(`---
layout: manual
permalink: /cli/%s/
title: %s
---

`, strings.ReplaceAll(name, "_", "/"), strings.ReplaceAll(name, "_", " "))
}

// jekyllLinkHandler links to the permalink of another page.
func jekyllLinkHandler(name string) string {
	return "/cli/" + strings.ReplaceAll(name, "_", "/") + "/"
}
