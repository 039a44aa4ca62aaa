//go:build !headless

package gui

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestDoneMessagesCarryExitCode(t *testing.T) {
	for _, code := range []int{1, 2, 127} {
		want := strconv.Itoa(code)
		if got := organizerDoneMessage(code); !strings.Contains(got, "code "+want) {
			t.Fatalf("organizer message %q missing exit code %d", got, code)
		}
		if got := integrityDoneMessage(code); !strings.Contains(got, "code "+want) {
			t.Fatalf("integrity message %q missing exit code %d", got, code)
		}
	}
}

func TestAnyLogPresent(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "organizer.log"),
		filepath.Join(dir, "integrity_check.log"),
	}

	if anyLogPresent(paths) {
		t.Fatal("expected no logs before any file is written")
	}

	if err := os.WriteFile(paths[1], []byte("checking...\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !anyLogPresent(paths) {
		t.Fatal("expected presence once one log file exists")
	}
}

func TestAnyLogPresentIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "organizer.log")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if anyLogPresent([]string{path}) {
		t.Fatal("a directory must not count as a log file")
	}
}
