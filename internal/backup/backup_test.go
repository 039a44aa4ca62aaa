package backup

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", path, err)
	}
	defer f.Close()
	w := zip.NewWriter(f)
	for name, content := range files {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("zip Create(%q) error = %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("zip Write(%q) error = %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip Close() error = %v", err)
	}
}

func TestListFiltersAndOrdersNewestFirst(t *testing.T) {
	organized := t.TempDir()
	backups := filepath.Join(organized, "backups")
	if err := os.MkdirAll(backups, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	for _, name := range []string{"backup_20260101.zip", "backup_20260301.zip", "notes.txt", "backup_20260201.ZIP"} {
		if err := os.WriteFile(filepath.Join(backups, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%q) error = %v", name, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(backups, "nested.zip"), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	entries, err := List(organized)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"backup_20260301.zip", "backup_20260201.ZIP", "backup_20260101.zip"}
	if len(entries) != len(want) {
		t.Fatalf("List() returned %d entries, want %d", len(entries), len(want))
	}
	for i, entry := range entries {
		if entry.Name != want[i] {
			t.Fatalf("entries[%d].Name = %q, want %q", i, entry.Name, want[i])
		}
	}
}

func TestListMissingBackupsDir(t *testing.T) {
	entries, err := List(t.TempDir())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("List() = %v, want empty", entries)
	}
}

func TestRestoreExtractsAndOverwrites(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "backup_20260301.zip")
	writeZip(t, archive, map[string]string{
		"photos/a.jpg":   "restored-a",
		"documents/b.md": "restored-b",
	})

	dest := filepath.Join(tmp, "organized")
	if err := os.MkdirAll(filepath.Join(dest, "photos"), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dest, "photos", "a.jpg"), []byte("stale"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	count, err := Restore(archive, dest)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("Restore() extracted %d files, want 2", count)
	}
	for path, want := range map[string]string{
		filepath.Join(dest, "photos", "a.jpg"):   "restored-a",
		filepath.Join(dest, "documents", "b.md"): "restored-b",
	} {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			t.Fatalf("ReadFile(%q) error = %v", path, readErr)
		}
		if string(data) != want {
			t.Fatalf("content of %q = %q, want %q", path, data, want)
		}
	}
}

func TestRestoreMissingArchive(t *testing.T) {
	tmp := t.TempDir()
	if _, err := Restore(filepath.Join(tmp, "nope.zip"), tmp); err == nil {
		t.Fatalf("expected error for missing archive")
	}
}

func TestRestoreRejectsEscapingEntries(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "evil.zip")
	writeZip(t, archive, map[string]string{"../escape.txt": "nope"})

	dest := filepath.Join(tmp, "organized")
	if _, err := Restore(archive, dest); err == nil {
		t.Fatalf("expected error for entry escaping destination")
	}
	if _, err := os.Stat(filepath.Join(tmp, "escape.txt")); err == nil {
		t.Fatalf("escaping entry was written outside destination")
	}
}
