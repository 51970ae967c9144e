package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner scans a suite root for spec files
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all files under root whose base name matches pattern.
// Results are in lexical walk order.
func (s *Scanner) Scan(root, pattern string) ([]string, error) {
	var specs []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("suite root does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("suite root is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		matched, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return fmt.Errorf("bad spec pattern %q: %w", pattern, err)
		}
		if matched {
			specs = append(specs, path)
		}

		return nil
	})

	return specs, err
}
