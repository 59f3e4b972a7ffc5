// Package fileops holds the filesystem primitives the sorter relies on:
// copying into the output tree, debug text artifacts and the output lock.
package fileops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// NoTextPlaceholder is written to a debug artifact when OCR returned nothing
const NoTextPlaceholder = "(No text detected)"

// LockFileName is created in the output root while a run owns it
const LockFileName = ".argus.lock"

// CopyFile copies src to dst, creating dst's parent directories and keeping
// the source's mode and modification time.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// DebugLogPath is the artifact path for an image stem
func DebugLogPath(dir, stem string) string {
	return filepath.Join(dir, stem+".md")
}

// SaveTextLog writes "# File: <stem>" followed by the text, or a placeholder when empty
func SaveTextLog(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	base := filepath.Base(path)
	stem := base[:len(base)-len(filepath.Ext(base))]

	content := "# File: " + stem + "\n\n"
	if text == "" {
		content += NoTextPlaceholder
	} else {
		content += text
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

// CleanDirectory removes everything inside dir, leaving dir itself.
// A missing directory is not an error; entries that cannot be removed are
// reported together.
func CleanDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}

	var errs []error
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", e.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// OutputLock is an exclusive lock on an output root
type OutputLock struct {
	lock *flock.Flock
}

// LockOutput creates root if needed and takes its lock without waiting
func LockOutput(root string) (*OutputLock, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	l := flock.New(filepath.Join(root, LockFileName))
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("output directory %s is in use by another run", root)
	}
	return &OutputLock{lock: l}, nil
}

// Release unlocks and removes the lock file
func (o *OutputLock) Release() error {
	if o == nil || o.lock == nil {
		return nil
	}
	if err := o.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	_ = os.Remove(o.lock.Path())
	return nil
}
