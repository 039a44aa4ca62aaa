package logging

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	if got := Truncate("  "); got != "<empty>" {
		t.Fatalf("Truncate(blank) = %q", got)
	}
	if got := Truncate("a\nb\r\nc"); got != "a b  c" {
		t.Fatalf("Truncate(multiline) = %q", got)
	}
	long := strings.Repeat("x", clipLimit+10)
	if got := Truncate(long); len(got) != clipLimit+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("Truncate(long) = %q", got)
	}
}

func TestFormatEventLine_FieldsSortedAndErrorsFlattened(t *testing.T) {
	event := Event{
		Time:    time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Level:   slog.LevelWarn,
		Message: "restore failed",
		Fields: map[string]any{
			"error":   errors.New("zip: not a valid zip file"),
			"archive": "backup_2024.zip",
		},
	}
	got := FormatEventLine(event)
	want := "09:30:00 [WARN] restore failed archive=backup_2024.zip error=zip: not a valid zip file\n"
	if got != want {
		t.Fatalf("FormatEventLine() = %q, want %q", got, want)
	}
}

func TestFormatEventLine_NoFields(t *testing.T) {
	event := Event{
		Time:    time.Date(2026, 3, 1, 9, 30, 5, 0, time.UTC),
		Level:   slog.LevelInfo,
		Message: "organizer completed",
	}
	if got := FormatEventLine(event); got != "09:30:05 [INFO] organizer completed\n" {
		t.Fatalf("FormatEventLine() = %q", got)
	}
}
