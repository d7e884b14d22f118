package debug

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	if !Enabled() {
		t.Fatal("expected logging enabled")
	}
	Log("selected %s", "Trachea")
	LogIf(false, "hidden")
	LogIf(true, "shown %d", 1)
	LogTiming("render", 3*time.Millisecond)
	Section("mount")
	LogEnterExit("View")()

	out := buf.String()
	for _, want := range []string{prefix, "selected Trachea", "shown 1", "render took 3ms", "=== mount ===", "-> View", "<- View"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Error("LogIf(false) must not write")
	}
}

func TestDisabledIsNoop(t *testing.T) {
	SetOutput(nil)
	if Enabled() {
		t.Fatal("expected logging disabled")
	}
	// Must not panic with a nil logger.
	Log("x")
	LogTiming("x", time.Second)
	Section("x")
	LogEnterExit("x")()
}
