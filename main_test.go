package main

import (
	"os"
	"path/filepath"
	"testing"

	"organizer-gui/internal/config"
)

func TestMissingScriptsReportsOnlyAbsentPaths(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, config.OrganizeScriptName)
	if err := os.WriteFile(present, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	absent := filepath.Join(dir, config.VerifyScriptName)

	missing := missingScripts(config.Options{
		OrganizeScript: present,
		VerifyScript:   absent,
	})
	if len(missing) != 1 || missing[0] != absent {
		t.Fatalf("missing = %v, want [%s]", missing, absent)
	}
}

func TestMissingScriptsSkipsEmptyPaths(t *testing.T) {
	if missing := missingScripts(config.Options{}); len(missing) != 0 {
		t.Fatalf("empty options should report nothing, got %v", missing)
	}
}
