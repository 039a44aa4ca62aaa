package runtime

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"organizer-gui/internal/logging"
	"organizer-gui/internal/runner"
	"organizer-gui/internal/runstatus"
)

func newTestLogger() *logging.Logger {
	logger := logging.New(false)
	logger.SetTerminalOutputEnabled(false)
	return logger
}

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("WriteFile(%q) error = %v", path, err)
	}
	return path
}

type hookRecorder struct {
	mu       sync.Mutex
	output   []string
	statuses []string
	codes    []int
	done     chan int
}

func newHookRecorder() *hookRecorder {
	return &hookRecorder{done: make(chan int, 1)}
}

func (r *hookRecorder) hooks() Hooks {
	return Hooks{
		OnOutput: func(text string) {
			r.mu.Lock()
			r.output = append(r.output, text)
			r.mu.Unlock()
		},
		OnStatus: func(status string) {
			r.mu.Lock()
			r.statuses = append(r.statuses, status)
			r.mu.Unlock()
		},
		OnDone: func(code int) {
			r.mu.Lock()
			r.codes = append(r.codes, code)
			r.mu.Unlock()
			r.done <- code
		},
	}
}

func (r *hookRecorder) waitDone(t *testing.T) int {
	t.Helper()
	select {
	case code := <-r.done:
		return code
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for OnDone")
		return 0
	}
}

func TestControllerRunsScriptAndReportsStatus(t *testing.T) {
	script := writeScript(t, "organize_files.sh", `echo "organizing $1 -> $2"`+"\nexit 0\n")

	c := NewController(context.Background(), runstatus.Organizer, newTestLogger())
	rec := newHookRecorder()
	if err := c.Start(runner.NewCommand(script, "/in", "/out"), rec.hooks()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if code := rec.waitDone(t); code != 0 {
		t.Fatalf("OnDone code = %d, want 0", code)
	}
	if !c.Wait(5 * time.Second) {
		t.Fatalf("Wait() timed out")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	joined := strings.Join(rec.output, "")
	if !strings.Contains(joined, "organizing /in -> /out") {
		t.Fatalf("output = %q", joined)
	}
	if len(rec.statuses) < 2 || rec.statuses[0] != runstatus.Organizer.Running {
		t.Fatalf("statuses = %q", rec.statuses)
	}
	if last := rec.statuses[len(rec.statuses)-1]; last != runstatus.Organizer.Succeeded {
		t.Fatalf("final status = %q, want %q", last, runstatus.Organizer.Succeeded)
	}
	if len(rec.codes) != 1 {
		t.Fatalf("OnDone fired %d times", len(rec.codes))
	}
}

func TestControllerRefusesOverlappingStart(t *testing.T) {
	script := writeScript(t, "slow.sh", "sleep 30\n")

	c := NewController(context.Background(), runstatus.Organizer, newTestLogger())
	rec := newHookRecorder()
	if err := c.Start(runner.NewCommand(script), rec.hooks()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := c.Start(runner.NewCommand(script), rec.hooks()); err == nil {
		t.Fatalf("second Start() should be refused while running")
	}
	if !c.StopAndWait(5 * time.Second) {
		t.Fatalf("StopAndWait() timed out")
	}
	if c.IsRunning() {
		t.Fatalf("IsRunning() = true after StopAndWait")
	}
}

func TestControllerReportsFailureStatus(t *testing.T) {
	script := writeScript(t, "verify_integrity.sh", "echo mismatch\nexit 2\n")

	c := NewController(context.Background(), runstatus.Integrity, newTestLogger())
	rec := newHookRecorder()
	if err := c.Start(runner.NewCommand(script, "/organized"), rec.hooks()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if code := rec.waitDone(t); code != 2 {
		t.Fatalf("OnDone code = %d, want 2", code)
	}
	c.Wait(5 * time.Second)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if last := rec.statuses[len(rec.statuses)-1]; last != runstatus.Integrity.Failed {
		t.Fatalf("final status = %q, want %q", last, runstatus.Integrity.Failed)
	}
}

func TestStartOrganizeValidatesBeforeSpawn(t *testing.T) {
	c := NewController(context.Background(), runstatus.Organizer, newTestLogger())
	err := StartOrganize(c, filepath.Join(t.TempDir(), "missing.sh"), "", "", Hooks{})
	if err == nil {
		t.Fatalf("StartOrganize() should fail validation")
	}
	if c.IsRunning() {
		t.Fatalf("validation failure must not leave a run active")
	}
}

func TestStartOrganizeCreatesOutputDir(t *testing.T) {
	script := writeScript(t, "organize_files.sh", "exit 0\n")
	tmp := t.TempDir()
	source := filepath.Join(tmp, "incoming")
	if err := os.MkdirAll(source, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	output := filepath.Join(tmp, "organized")

	c := NewController(context.Background(), runstatus.Organizer, newTestLogger())
	rec := newHookRecorder()
	if err := StartOrganize(c, script, source, output, rec.hooks()); err != nil {
		t.Fatalf("StartOrganize() error = %v", err)
	}
	rec.waitDone(t)
	c.Wait(5 * time.Second)

	if info, err := os.Stat(output); err != nil || !info.IsDir() {
		t.Fatalf("output directory was not created: %v", err)
	}
}
