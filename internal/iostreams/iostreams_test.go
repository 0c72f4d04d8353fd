package iostreams_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/tplresolve/internal/iostreams"
	"github.com/schmitthub/tplresolve/internal/iostreams/iostreamstest"
)

func TestIOStreams_NonFileStreams(t *testing.T) {
	ios := &iostreams.IOStreams{
		In:     strings.NewReader(""),
		Out:    &bytes.Buffer{},
		ErrOut: &bytes.Buffer{},
	}
	ios.SetTTY(false)

	assert.False(t, ios.IsInputTTY())
	assert.False(t, ios.IsOutputTTY())
	assert.False(t, ios.IsStderrTTY())
	assert.Equal(t, 80, ios.TerminalWidth())
}

func TestIOStreams_Color(t *testing.T) {
	ios := iostreamstest.New()
	assert.False(t, ios.ColorEnabled())
	assert.False(t, ios.ColorScheme().Enabled())

	ios.SetColorEnabled(true)
	assert.True(t, ios.ColorScheme().Enabled())
}

func TestColorScheme_Disabled(t *testing.T) {
	cs := iostreams.NewColorScheme(false)

	assert.Equal(t, "x", cs.Red("x"))
	assert.Equal(t, "x", cs.Green("x"))
	assert.Equal(t, "x", cs.Bold("x"))
	assert.Equal(t, "a 1", cs.Mutedf("a %d", 1))
	assert.Equal(t, "[ok]", cs.SuccessIcon())
	assert.Equal(t, "[warn]", cs.WarningIcon())
	assert.Equal(t, "[error]", cs.FailureIcon())
	assert.Equal(t, "[info]", cs.InfoIcon())
}

func TestColorScheme_Enabled(t *testing.T) {
	cs := iostreams.NewColorScheme(true)

	assert.Contains(t, cs.SuccessIcon(), "✓")
	assert.Contains(t, cs.FailureIcon(), "✗")
	assert.Contains(t, cs.Red("boom"), "boom")
}

func TestTablePrinter_Plain(t *testing.T) {
	ios := iostreamstest.New()

	tp := ios.NewTablePrinter("NAME", "PATH")
	tp.AddRow("blog", "/app/Blog/templates")
	tp.AddRow("shop")
	require.Equal(t, 2, tp.Len())
	require.NoError(t, tp.Render())

	lines := strings.Split(strings.TrimRight(ios.OutBuf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "NAME  PATH", lines[0])
	assert.Equal(t, "blog  /app/Blog/templates", lines[1])
	assert.Equal(t, "shop", strings.TrimRight(lines[2], " "))
}

func TestTablePrinter_Styled(t *testing.T) {
	ios := iostreamstest.New()
	ios.SetTTY(true)
	ios.SetColorEnabled(true)
	ios.SetTerminalWidth(20)

	tp := ios.NewTablePrinter("NAME", "PATH")
	tp.AddRow("blog", "/a/very/long/path/to/templates")
	require.NoError(t, tp.Render())

	out := ios.OutBuf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "─")
	assert.Contains(t, out, "…", "long cells are truncated to the terminal width")
}
