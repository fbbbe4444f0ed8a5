package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	// Create test files at several depths
	testFiles := []string{
		"add.asm",
		"alu/sub.asm",
		"alu/logic/and.asm",
		"memory/deep/nested/load.asm",
		"memory/README.md",
		"notes.asm.bak",
	}
	for _, file := range testFiles {
		fullPath := filepath.Join(tmpDir, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("nop"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	scanner := NewScanner(nil)

	t.Run("finds sources at every depth", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(results) != 4 {
			t.Fatalf("expected 4 sources, got %d", len(results))
		}

		var names []string
		for _, src := range results {
			names = append(names, src.Name)
			if filepath.Base(src.Path) != src.Name+".asm" {
				t.Errorf("name %s does not match path %s", src.Name, src.Path)
			}
		}
		sort.Strings(names)
		expected := []string{"add", "and", "load", "sub"}
		for i := range expected {
			if names[i] != expected[i] {
				t.Errorf("expected name %s, got %s", expected[i], names[i])
			}
		}
	})

	t.Run("key keeps the relative directory", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		keys := map[string]string{}
		for _, src := range results {
			keys[src.Name] = src.Key
		}
		expected := map[string]string{
			"add":  "add",
			"sub":  filepath.Join("alu", "sub"),
			"and":  filepath.Join("alu", "logic", "and"),
			"load": filepath.Join("memory", "deep", "nested", "load"),
		}
		for name, key := range expected {
			if keys[name] != key {
				t.Errorf("expected key %s for %s, got %s", key, name, keys[name])
			}
		}
	})

	t.Run("order is reproducible", func(t *testing.T) {
		first, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("scan order differs at %d: %v vs %v", i, first[i], second[i])
			}
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "add.asm"))
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}
