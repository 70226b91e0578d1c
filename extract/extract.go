// Package extract finds user-facing string literals in Flutter/Dart source
// files.
//
// Extraction works on raw text: a few independent regular expressions
// ("surfaces") locate quoted literals in typical UI positions, the
// classifier filters out technical noise, and lines marked with the ignore
// directive or covered by rich-text spans are left alone. The same surfaces
// are shared with the rewriter so that every extracted literal can be
// substituted later.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the source extensions scanned when none are given.
var DefaultExtensions = []string{".dart"}

// generatedSuffixes mark files produced by code generators.
var generatedSuffixes = []string{".g.dart", ".freezed.dart"}

// skipDirs contains directory names to skip during source file scanning.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"build":        true,
	".dart_tool":   true,
	".idea":        true,
	"node_modules": true,
	".pub-cache":   true,
}

// SkippedPath is a file or directory that could not be read while walking.
type SkippedPath struct {
	Path string
	Err  error
}

func (s SkippedPath) String() string {
	return fmt.Sprintf("%s: %v", s.Path, s.Err)
}

// FindSources recursively finds all source files with one of exts in dirs.
// Skips tool and build directories and generated files. Unreadable entries
// are returned as skipped paths instead of aborting the walk.
func FindSources(dirs []string, exts []string) ([]string, []SkippedPath) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	var skipped []SkippedPath
	seen := make(map[string]bool)

	for _, dir := range dirs {
		_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				skipped = append(skipped, SkippedPath{Path: path, Err: err})
				if info != nil && info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if info.IsDir() {
				if skipDirs[info.Name()] && path != dir {
					return filepath.SkipDir
				}
				return nil
			}
			if !hasExt(path, exts) || IsGenerated(path) {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
	}

	sort.Strings(files)
	return files, skipped
}

// IsGenerated reports whether path names a code-generator output file.
func IsGenerated(path string) bool {
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

func hasExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
