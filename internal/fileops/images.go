package fileops

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
	".webp": true,
}

// IsImage reports whether path has a supported image extension
func IsImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ListImages expands files and directories into image paths. Directories are
// read one level deep unless recursive is set; skipDir, when non-empty, is never
// descended into so a run does not pick up its own output.
func ListImages(paths []string, recursive bool, skipDir string) ([]string, error) {
	var skipAbs string
	if skipDir != "" {
		if abs, err := filepath.Abs(skipDir); err == nil {
			skipAbs = abs
		}
	}

	seen := make(map[string]bool)
	var images []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			images = append(images, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}

		if !info.IsDir() {
			if IsImage(p) {
				add(p)
			}
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == p {
					return nil
				}
				if !recursive || isSameDir(path, skipAbs) || strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && IsImage(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", p, err)
		}
	}

	return images, nil
}

func isSameDir(path, abs string) bool {
	if abs == "" {
		return false
	}
	p, err := filepath.Abs(path)
	return err == nil && p == abs
}
