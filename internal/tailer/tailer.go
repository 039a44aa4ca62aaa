package tailer

import (
	"io"
	"os"
	"path/filepath"
)

// Tailer follows one script log file by byte offset. The scripts append
// plain text; no line reassembly is needed because the view renders raw
// chunks the same way the scripts wrote them.
type Tailer struct {
	Path   string
	Offset int64
}

// ReadNew returns everything appended since the last read and advances
// the offset. A file that shrank since the last read was truncated and
// rewritten, so the offset resets and the new content is read from the
// start.
func (t *Tailer) ReadNew() (string, error) {
	file, err := os.Open(t.Path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}
	if info.Size() < t.Offset {
		t.Offset = 0
	}
	if _, err := file.Seek(t.Offset, io.SeekStart); err != nil {
		return "", err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	t.Offset += int64(len(data))
	return string(data), nil
}

// FormatSection frames a chunk of log content under a header naming the
// file it came from, matching how the log view separates interleaved
// sources.
func FormatSection(path, content string) string {
	return "--- " + filepath.Base(path) + " ---\n" + content + "\n"
}
