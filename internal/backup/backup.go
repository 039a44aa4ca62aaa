package backup

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"organizer-gui/internal/config"
)

type Entry struct {
	Name string
	Path string
	Size int64
}

// List returns the zip archives under the organized directory's backups
// folder, newest first. The organize script names archives by timestamp,
// so descending name order is descending age. A missing backups folder
// means no backups have been taken yet.
func List(organizedDir string) ([]Entry, error) {
	dir := config.BackupsDir(organizedDir)
	items, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	entries := []Entry{}
	for _, item := range items {
		if item.IsDir() || !strings.EqualFold(filepath.Ext(item.Name()), ".zip") {
			continue
		}
		info, infoErr := item.Info()
		if infoErr != nil {
			continue
		}
		entries = append(entries, Entry{
			Name: item.Name(),
			Path: filepath.Join(dir, item.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name > entries[j].Name })
	return entries, nil
}

// Restore extracts an archive into the destination directory, overwriting
// existing files. There is no rollback; a failure partway leaves whatever
// was already extracted in place, and the caller reports it.
func Restore(archivePath, destDir string) (int, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("backup archive not found: %s", archivePath)
		}
		return 0, fmt.Errorf("failed to open backup archive: %w", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, err
	}

	extracted := 0
	for _, file := range reader.File {
		target, pathErr := safeJoin(destDir, file.Name)
		if pathErr != nil {
			return extracted, pathErr
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return extracted, err
			}
			continue
		}
		if err := extractFile(file, target); err != nil {
			return extracted, err
		}
		extracted++
	}
	return extracted, nil
}

func extractFile(file *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, file.Mode().Perm()|0o200)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// safeJoin rejects archive entries that would escape the destination.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	cleanDest := filepath.Clean(destDir)
	if target != cleanDest && !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes destination: %s", name)
	}
	return target, nil
}
