package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

// capture redirects output to a buffer with verbose on, restoring the
// defaults when the test ends.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestVerboseToggle(t *testing.T) {
	t.Cleanup(func() { SetVerbose(false) })

	SetVerbose(true)
	if !IsVerbose() {
		t.Fatal("expected verbose after SetVerbose(true)")
	}
	SetVerbose(false)
	if IsVerbose() {
		t.Fatal("expected non-verbose after SetVerbose(false)")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("fetched %d posts", 3) }, "[DEBUG] fetched 3 posts\n"},
		{"info", func() { Info("merge complete") }, "[INFO] merge complete\n"},
		{"warn", func() { Warn("skipping line %d", 7) }, "[WARN] skipping line 7\n"},
		{"section", func() { Section("run %s", "ab12cd34") }, "\n=== run ab12cd34 ===\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t)
			tt.log()
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSilentWhenNotVerbose(t *testing.T) {
	buf := capture(t)
	SetVerbose(false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	if buf.Len() > 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestConcurrentUse(t *testing.T) {
	capture(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			SetVerbose(true)
			Debug("worker %d", n)
			IsVerbose()
			SetVerbose(false)
		}(i)
	}
	wg.Wait()
	// Passes if the race detector stays quiet.
}
