package fileops

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyFileCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	if err := os.WriteFile(src, []byte("image"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "out", "SHOW1001", "SHOW1001-Lamp-COA.jpg")
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Expected destination to exist: %v", err)
	}
	if string(data) != "image" {
		t.Errorf("Expected copied content, got %q", data)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("Expected mtime %v, got %v", mtime, info.ModTime())
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "out.jpg")); err == nil {
		t.Error("Expected error for missing source")
	}
}

func TestSaveTextLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "extracted_text")

	tests := []struct {
		name     string
		stem     string
		text     string
		expected string
	}{
		{"with text", "IMG_1", "CERTIFICATE", "# File: IMG_1\n\nCERTIFICATE"},
		{"empty", "IMG_2", "", "# File: IMG_2\n\n(No text detected)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := DebugLogPath(dir, tt.stem)
			if err := SaveTextLog(path, tt.text); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, data)
			}
		})
	}
}

func TestCleanDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.md"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub", "deeper"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := CleanDirectory(dir); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Expected directory to remain: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty directory, got %d entries", len(entries))
	}

	if err := CleanDirectory(filepath.Join(dir, "missing")); err != nil {
		t.Errorf("Expected no error for missing directory, got %v", err)
	}
}

func TestLockOutput(t *testing.T) {
	root := filepath.Join(t.TempDir(), "sorted")

	first, err := LockOutput(root)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, err := LockOutput(root); err == nil {
		t.Error("Expected second lock on the same root to fail")
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Unexpected release error: %v", err)
	}

	again, err := LockOutput(root)
	if err != nil {
		t.Fatalf("Expected lock after release, got %v", err)
	}
	_ = again.Release()
}
