package utils

import "path/filepath"

// ResolvePath resolves path relative to baseDir. Absolute and empty paths
// are returned unchanged.
func ResolvePath(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResolvePaths applies ResolvePath to every entry.
func ResolvePaths(paths []string, baseDir string) []string {
	if len(paths) == 0 {
		return nil
	}

	resolved := make([]string, 0, len(paths))
	for _, path := range paths {
		resolved = append(resolved, ResolvePath(path, baseDir))
	}
	return resolved
}
