// Package sysopen hands a file or directory to the desktop's default
// opener.
package sysopen

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Open launches the platform opener for the given path and does not wait
// for it. The path must exist; a typo'd path would otherwise fail
// silently inside the opener.
func Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch opener for %s: %w", path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
