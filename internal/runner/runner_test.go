package runner

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"organizer-gui/internal/logging"
	"organizer-gui/internal/relay"
)

func newTestLogger() *logging.Logger {
	logger := logging.New(false)
	logger.SetTerminalOutputEnabled(false)
	return logger
}

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test scripts require a POSIX shell")
	}
}

func drainAll(q *relay.Queue) (chunks []string, completions []int) {
	for _, item := range q.Drain() {
		switch v := item.(type) {
		case relay.Chunk:
			chunks = append(chunks, v.Text)
		case relay.Completion:
			completions = append(completions, v.Code)
		}
	}
	return chunks, completions
}

func TestRunStreamsLinesInOrder(t *testing.T) {
	requireShell(t)
	q := relay.NewQueue()

	result := Run(context.Background(), NewCommand("sh", "-c", `printf 'one\ntwo\nthree\n'`), q, newTestLogger())
	if result.Code != 0 {
		t.Fatalf("Run() code = %d, want 0", result.Code)
	}

	chunks, completions := drainAll(q)
	want := []string{"one\n", "two\n", "three\n"}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d: %q", len(chunks), len(want), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Fatalf("chunks[%d] = %q, want %q", i, chunks[i], want[i])
		}
	}
	if len(completions) != 1 || completions[0] != 0 {
		t.Fatalf("completions = %v, want exactly one zero", completions)
	}
}

func TestRunMergesStderrIntoStream(t *testing.T) {
	requireShell(t)
	q := relay.NewQueue()

	result := Run(context.Background(), NewCommand("sh", "-c", `echo out; echo err >&2`), q, newTestLogger())
	if result.Code != 0 {
		t.Fatalf("Run() code = %d, want 0", result.Code)
	}
	chunks, _ := drainAll(q)
	joined := strings.Join(chunks, "")
	if !strings.Contains(joined, "out\n") || !strings.Contains(joined, "err\n") {
		t.Fatalf("merged stream missing stdout or stderr: %q", joined)
	}
}

func TestRunReportsScriptExitCode(t *testing.T) {
	requireShell(t)
	q := relay.NewQueue()

	result := Run(context.Background(), NewCommand("sh", "-c", `echo failing; exit 3`), q, newTestLogger())
	if result.Code != 3 {
		t.Fatalf("Run() code = %d, want 3", result.Code)
	}
	_, completions := drainAll(q)
	if len(completions) != 1 || completions[0] != 3 {
		t.Fatalf("completions = %v, want exactly one 3", completions)
	}
}

func TestRunMissingExecutable(t *testing.T) {
	q := relay.NewQueue()
	missing := filepath.Join(t.TempDir(), "organize_files.sh")

	result := Run(context.Background(), NewCommand(missing, "src", "out"), q, newTestLogger())
	if result.Code != LaunchFailureCode {
		t.Fatalf("Run() code = %d, want %d", result.Code, LaunchFailureCode)
	}

	chunks, completions := drainAll(q)
	if len(chunks) == 0 || !strings.Contains(chunks[0], "[ERROR] Script not found or not executable") {
		t.Fatalf("expected launch diagnostic chunk, got %q", chunks)
	}
	if len(completions) != 1 || completions[0] != LaunchFailureCode {
		t.Fatalf("completions = %v, want exactly one %d", completions, LaunchFailureCode)
	}
}

func TestRunCanceledContextKillsProcess(t *testing.T) {
	requireShell(t)
	q := relay.NewQueue()

	ctx, cancel := context.WithCancel(context.Background())
	done := Start(ctx, NewCommand("sh", "-c", `echo started; sleep 30`), q, newTestLogger())

	deadline := time.After(5 * time.Second)
	for q.Len() == 0 {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for first output")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()

	select {
	case result := <-done:
		if result.Code == 0 {
			t.Fatalf("Run() code = 0 after kill, want nonzero")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("process did not exit after cancel")
	}
	_, completions := drainAll(q)
	if len(completions) != 1 {
		t.Fatalf("completions = %v, want exactly one", completions)
	}
}

func TestCommandString(t *testing.T) {
	if got := NewCommand("/opt/organize_files.sh", "/in", "/out").String(); got != "/opt/organize_files.sh /in /out" {
		t.Fatalf("String() = %q", got)
	}
	if got := NewCommand("script.sh").String(); got != "script.sh" {
		t.Fatalf("String() = %q", got)
	}
}
