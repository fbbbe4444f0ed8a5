package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"simtest/internal/config"
	"simtest/internal/logging"
)

// Source is an assembly test source found on disk
type Source struct {
	Name string // File name without the .asm extension
	Path string // Path to the source file
	Key  string // Path relative to the scanned root, without the extension
}

// Scanner scans for assembly test sources in a directory tree
type Scanner struct {
	log *logging.Logger
}

// NewScanner creates a new Scanner
func NewScanner(log *logging.Logger) *Scanner {
	if log == nil {
		log = logging.Discard()
	}
	return &Scanner{log: log}
}

// Scan finds all .asm files under root, at any depth.
// Files are returned in walk order, which is lexical within each directory.
func (s *Scanner) Scan(root string) ([]Source, error) {
	var sources []Source

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("tests path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("tests path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			s.log.Logf(logging.LevelAll, "Searching for %s files in: %s", config.SourceExtension, path)
			return nil
		}

		name := d.Name()
		if !strings.HasSuffix(name, config.SourceExtension) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		s.log.Logf(logging.LevelAll, "Found file: %s", name)
		sources = append(sources, Source{
			Name: strings.TrimSuffix(name, config.SourceExtension),
			Path: path,
			Key:  strings.TrimSuffix(rel, config.SourceExtension),
		})
		return nil
	})

	return sources, err
}
