package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileInfo holds metadata about a single candidate file.
type FileInfo struct {
	Path    string // Absolute path on disk.
	RelPath string // Path relative to the root directory, slash separated.
	Name    string // Base name.
	Size    int64  // File size in bytes.
	Mode    fs.FileMode
}

// WalkerConfig controls the behaviour of the Walk function.
type WalkerConfig struct {
	RootDir    string   // Root directory to scan.
	Include    []string // Glob patterns — only matching files are included.
	Exclude    []string // Glob patterns — matching files are excluded.
	SkipPrefix string   // Base names starting with this prefix are skipped (backups).
	Recursive  bool     // Descend into subdirectories.
}

// Walk lists the regular files (or symlinks to them) under config.RootDir
// that pass filtering, sorted by relative path. Only a failure to read the root itself is
// returned as an error; unreadable entries below it are skipped.
func Walk(config WalkerConfig) ([]FileInfo, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("walker: %s is not a directory", root)
	}

	var files []FileInfo

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			// Skip entries we cannot read instead of aborting.
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if !config.Recursive || shouldExcludeDir(name) {
				return filepath.SkipDir
			}
			return nil
		}

		// Regular files, and symlinks that resolve to one. Linked
		// directories are not followed.
		var fi fs.FileInfo
		switch {
		case d.Type().IsRegular():
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				return nil
			}
			fi = target
		default:
			return nil
		}

		if config.SkipPrefix != "" && strings.HasPrefix(name, config.SkipPrefix) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if !MatchesInclude(relPath, config.Include) {
			return nil
		}
		if MatchesExclude(relPath, config.Exclude) {
			return nil
		}

		if fi == nil {
			if fi, err = d.Info(); err != nil {
				return nil
			}
		}

		files = append(files, FileInfo{
			Path:    path,
			RelPath: filepath.ToSlash(relPath),
			Name:    name,
			Size:    fi.Size(),
			Mode:    fi.Mode().Perm(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}
