package fileops

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"a.jpg", true},
		{"A.JPEG", true},
		{"scan.TIF", true},
		{"photo.webp", true},
		{"notes.md", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := IsImage(tt.path); got != tt.expected {
			t.Errorf("IsImage(%q): expected %v, got %v", tt.path, tt.expected, got)
		}
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "1.jpg"))
	touch(t, filepath.Join(dir, "2.PNG"))
	touch(t, filepath.Join(dir, "readme.txt"))
	touch(t, filepath.Join(dir, "nested", "3.jpg"))
	touch(t, filepath.Join(dir, "Output", "SHOW1001", "old.jpg"))
	single := filepath.Join(t.TempDir(), "single.bmp")
	touch(t, single)

	tests := []struct {
		name      string
		recursive bool
		expected  []string
	}{
		{
			name:     "top level",
			expected: []string{filepath.Join(dir, "1.jpg"), filepath.Join(dir, "2.PNG"), single},
		},
		{
			name:      "recursive skips output",
			recursive: true,
			expected:  []string{filepath.Join(dir, "1.jpg"), filepath.Join(dir, "2.PNG"), filepath.Join(dir, "nested", "3.jpg"), single},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ListImages([]string{dir, single, single}, tt.recursive, filepath.Join(dir, "Output"))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			sort.Strings(got)
			sort.Strings(tt.expected)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Expected %s, got %s", tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestListImagesMissingPath(t *testing.T) {
	if _, err := ListImages([]string{filepath.Join(t.TempDir(), "missing")}, false, ""); err == nil {
		t.Error("Expected error for missing path")
	}
}
