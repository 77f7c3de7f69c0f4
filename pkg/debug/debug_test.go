package debug

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	prevEnabled := enabled
	prevLogger := logger
	t.Cleanup(func() {
		enabled = prevEnabled
		logger = prevLogger
	})
	var buf bytes.Buffer
	SetEnabled(true)
	SetOutput(&buf)
	return &buf
}

func TestLog_Disabled(t *testing.T) {
	buf := capture(t)
	SetEnabled(false)
	Log("hidden %d", 1)
	LogTiming("x", time.Second)
	LogIf(true, "hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output when disabled, got %q", buf.String())
	}
}

func TestLog_Enabled(t *testing.T) {
	buf := capture(t)
	Log("compiled %d nodes", 3)
	LogIf(false, "skipped")
	LogTiming("reset", 2*time.Millisecond)
	defer LogEnterExit("scope")()

	out := buf.String()
	for _, want := range []string{"[TREEVIEW]", "compiled 3 nodes", "reset took 2ms", "-> scope"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "skipped") {
		t.Error("LogIf(false) should not log")
	}
}
