package cmdutil

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/schmitthub/tplresolve/internal/iostreams"
)

// WriteJSON encodes data as pretty-printed JSON to the given writer.
// Used by commands when --json is specified.
func WriteJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// PrintNextSteps prints numbered follow-up suggestions to stderr.
func PrintNextSteps(ios *iostreams.IOStreams, steps ...string) {
	if len(steps) == 0 {
		return
	}

	fmt.Fprintln(ios.ErrOut, "\nNext Steps:")
	for i, step := range steps {
		fmt.Fprintf(ios.ErrOut, "  %d. %s\n", i+1, step)
	}
}

// PrintHelpHint prints a contextual help hint to stderr.
// cmdPath should be cmd.CommandPath() (e.g., "tplresolve folder add")
func PrintHelpHint(ios *iostreams.IOStreams, cmdPath string) {
	fmt.Fprintf(ios.ErrOut, "\nRun '%s --help' for more information.\n", cmdPath)
}
