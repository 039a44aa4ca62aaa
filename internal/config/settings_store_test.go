package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestSettingsSaveLoadAndPath(t *testing.T) {
	root := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("AppData", root)
	} else {
		t.Setenv("XDG_CONFIG_HOME", root)
	}

	path, err := SettingsPath()
	if err != nil {
		t.Fatalf("SettingsPath() error = %v", err)
	}
	wantPath := filepath.Join(root, "organizer-gui", "settings.json")
	if path != wantPath {
		t.Fatalf("SettingsPath() = %q, want %q", path, wantPath)
	}

	in := AppSettings{
		SourceDir:      "/tmp/incoming",
		OutputDir:      "/tmp/organized",
		OrganizeScript: "/opt/scripts/organize_files.sh",
		VerifyScript:   "/opt/scripts/verify_integrity.sh",
		Debug:          true,
	}
	if err := SaveSettings(in); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	out, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if out != in {
		t.Fatalf("loaded settings = %#v, want %#v", out, in)
	}
}

func TestMergeOptionsWithSettings_PrefersCLI(t *testing.T) {
	merged := MergeOptionsWithSettings(
		Options{
			SourceDir: "/cli/incoming",
			OutputDir: "",
			Debug:     false,
		},
		AppSettings{
			SourceDir: "/saved/incoming",
			OutputDir: "/saved/organized",
			Debug:     true,
		},
	)

	if merged.SourceDir != "/cli/incoming" {
		t.Fatalf("SourceDir = %q", merged.SourceDir)
	}
	if merged.OutputDir != "/saved/organized" {
		t.Fatalf("OutputDir = %q", merged.OutputDir)
	}
	if !merged.Debug {
		t.Fatalf("Debug should merge from saved when CLI false: %#v", merged)
	}
}
