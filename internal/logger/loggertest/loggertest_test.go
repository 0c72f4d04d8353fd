package loggertest_test

import (
	"strings"
	"testing"

	"github.com/schmitthub/tplresolve/internal/logger"
	"github.com/schmitthub/tplresolve/internal/logger/loggertest"
)

func TestNew(t *testing.T) {
	log, buf := loggertest.New()
	log.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"message":"hello"`) {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}

func TestCapture(t *testing.T) {
	buf := loggertest.Capture(t)

	logger.SetContext("direct", "abc")
	logger.Debug().Str("template", "blog/post/index").Msg("captured")

	out := buf.String()
	if !strings.Contains(out, `"template":"blog/post/index"`) {
		t.Errorf("captured output missing field, got %q", out)
	}
	if !strings.Contains(out, `"strategy":"direct"`) {
		t.Errorf("captured output missing context, got %q", out)
	}

	buf.Reset()
	if buf.String() != "" {
		t.Error("String() should be empty after Reset()")
	}
}
