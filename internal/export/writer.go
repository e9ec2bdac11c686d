package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileRef describes a file written by WriteTextFile
type FileRef struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Bytes int64  `json:"bytes"`
	Lines int    `json:"lines"`
}

// WriteTextFile writes content to path in a single operation, replacing any
// existing file. The text goes to a temp file in the same directory first and
// is renamed into place, so readers never see a partial export.
func WriteTextFile(path string, content string) (ref FileRef, err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-tmp-*")
	if err != nil {
		return FileRef{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.WriteString(content); err != nil {
		return FileRef{}, fmt.Errorf("failed to write export: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return FileRef{}, fmt.Errorf("failed to sync export: %w", err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return FileRef{}, fmt.Errorf("failed to set file mode: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return FileRef{}, fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return FileRef{}, fmt.Errorf("failed to move export into place: %w", err)
	}

	lines := 0
	if content != "" {
		lines = strings.Count(content, "\n") + 1
	}

	return FileRef{
		Path:  path,
		Name:  filepath.Base(path),
		Bytes: int64(len(content)),
		Lines: lines,
	}, nil
}
