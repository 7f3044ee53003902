// Package scanner walks a source tree twice: once to extract the literal
// values of every #include directive, and once to build a case-insensitive
// inventory of the filenames the directives may refer to.
//
// Both walks are read-only. Paths in all results are relative to the scan
// root and slash-normalized, so results are comparable across platforms.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// includePattern matches an #include directive and captures the opening
// delimiter and the raw value between the delimiters. Backslashes inside the
// value are preserved as written.
var includePattern = regexp.MustCompile(`#include\s*(["<])(.*?)[">]`)

// ScanOptions configures both tree walks.
type ScanOptions struct {
	// Extensions is the list of recognized file suffixes (e.g. ".h", ".cpp").
	// Matching is case-sensitive: "Main.CPP" is not a recognized source file.
	Extensions []string
	// ExcludeDirs is a list of directory names to skip entirely (e.g. ".git").
	ExcludeDirs []string
	// Progress, if non-nil, is invoked once per processed file.
	Progress func()
}

// Include is a single directive value as written in a source file.
type Include struct {
	// Value is the raw text between the delimiters, unmodified.
	Value string
	// Angled is true for #include <...>, false for #include "...".
	Angled bool
}

// FileIncludes pairs a source file with the ordered list of include values
// found in it. Files containing no includes are not represented.
type FileIncludes struct {
	// Path is the file's root-relative, slash-normalized path.
	Path     string
	Includes []Include
}

// Entry is one inventory occurrence of a filename. Identical basenames in
// different directories produce separate entries.
type Entry struct {
	// Name is the basename with its actual on-disk casing.
	Name string
	// Path is the root-relative, slash-normalized path of the file.
	Path string
}

// Inventory maps a lowercased basename to every file in the tree sharing
// that basename, in first-seen walk order.
type Inventory map[string][]Entry

// Crawl extracts the include directives from every recognized source file
// under root. The result preserves walk order.
func Crawl(root string, opts ScanOptions) ([]FileIncludes, error) {
	var result []FileIncludes

	err := walkSources(root, opts, func(relPath, fullPath string, _ fs.DirEntry) error {
		data, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", relPath, err)
		}

		matches := includePattern.FindAllStringSubmatch(string(data), -1)
		if len(matches) == 0 {
			return nil
		}

		includes := make([]Include, 0, len(matches))
		for _, m := range matches {
			includes = append(includes, Include{
				Value:  m[2],
				Angled: m[1] == "<",
			})
		}
		result = append(result, FileIncludes{Path: relPath, Includes: includes})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BuildInventory indexes every recognized source file under root by its
// lowercased basename.
func BuildInventory(root string, opts ScanOptions) (Inventory, error) {
	inv := make(Inventory)

	err := walkSources(root, opts, func(relPath, fullPath string, d fs.DirEntry) error {
		name := d.Name()
		key := strings.ToLower(name)
		inv[key] = append(inv[key], Entry{Name: name, Path: relPath})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// walkSources walks root and calls visit for every file whose name ends in
// one of the recognized extensions, skipping excluded directories.
func walkSources(root string, opts ScanOptions, visit func(relPath, fullPath string, d fs.DirEntry) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", root)
	}

	excludeMap := make(map[string]bool)
	for _, dir := range opts.ExcludeDirs {
		excludeMap[dir] = true
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", path, err)
		}
		if d.IsDir() {
			if path != root && excludeMap[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasRecognizedExtension(d.Name(), opts.Extensions) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if err := visit(rel, path, d); err != nil {
			return err
		}
		if opts.Progress != nil {
			opts.Progress()
		}
		return nil
	})
}

func hasRecognizedExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
