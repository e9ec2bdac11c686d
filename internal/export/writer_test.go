package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	ref, err := WriteTextFile(path, "line one\nline two")
	if err != nil {
		t.Fatalf("WriteTextFile failed: %v", err)
	}

	if ref.Path != path || ref.Name != "out.txt" {
		t.Errorf("ref: got %+v", ref)
	}
	if ref.Lines != 2 {
		t.Errorf("Lines: got %d, want 2", ref.Lines)
	}
	if ref.Bytes != int64(len("line one\nline two")) {
		t.Errorf("Bytes: got %d", ref.Bytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "line one\nline two" {
		t.Errorf("content: got %q", string(data))
	}
}

func TestWriteTextFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	if err := os.WriteFile(path, []byte("old content that is longer"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, err := WriteTextFile(path, "new"); err != nil {
		t.Fatalf("WriteTextFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("content: got %q, want %q", string(data), "new")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory should only hold the export, got %d entries", len(entries))
	}
}

func TestWriteTextFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")

	ref, err := WriteTextFile(path, "")
	if err != nil {
		t.Fatalf("WriteTextFile failed: %v", err)
	}
	if ref.Lines != 0 || ref.Bytes != 0 {
		t.Errorf("ref: got %+v, want zero lines and bytes", ref)
	}
}

func TestWriteTextFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")

	if _, err := WriteTextFile(path, "x"); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be created")
	}
}
