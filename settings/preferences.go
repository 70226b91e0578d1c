// Package settings provides storage for arbkit user preferences that apply
// across projects.
//
// Preferences are stored in the XDG data directory:
//
//	$XDG_DATA_HOME/arbkit/preferences.json  (default: ~/.local/share/arbkit/)
//
// The file holds user exclude patterns (regular expressions added to or
// replacing the built-in classifier rules) and default key format and
// resource directory used when a project does not configure them.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minios-linux/arbkit/classify"
	"github.com/minios-linux/arbkit/fileutil"
)

const (
	dataDirName = "arbkit"
	fileName    = "preferences.json"
)

// Preferences is the preferences.json document.
type Preferences struct {
	// ExcludePatterns are user classifier rules.
	ExcludePatterns []string `json:"excludePatterns,omitempty"`
	// AppendDefaults keeps the built-in rules alongside ExcludePatterns.
	AppendDefaults bool `json:"appendDefaults,omitempty"`
	// KeyFormat is the default key naming convention.
	KeyFormat string `json:"keyFormat,omitempty"`
	// ARBDir is the default resource directory.
	ARBDir string `json:"arbDir,omitempty"`
}

// ---------------------------------------------------------------------------
// File path
// ---------------------------------------------------------------------------

// dataDir returns the XDG data directory for arbkit.
// Respects $XDG_DATA_HOME (falls back to ~/.local/share).
func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName), nil
}

// filePath returns the path to the preferences file.
func filePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// FilePath returns the preferences.json file path for display purposes.
func FilePath() string {
	p, err := filePath()
	if err != nil {
		return ""
	}
	return p
}

// ---------------------------------------------------------------------------
// Load / Save
// ---------------------------------------------------------------------------

// Load reads preferences from disk.
// Returns empty preferences if the file doesn't exist or is invalid.
func Load() *Preferences {
	path, err := filePath()
	if err != nil {
		return &Preferences{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &Preferences{}
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return &Preferences{}
	}
	return &p
}

// Save writes preferences to disk.
func Save(p *Preferences) error {
	path, err := filePath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if err := fileutil.WriteAtomic(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("writing preferences file: %w", err)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Exclude patterns
// ---------------------------------------------------------------------------

// LoadExcludePatterns returns the stored user patterns and whether they
// extend the built-in rules.
func LoadExcludePatterns() ([]string, bool) {
	p := Load()
	return p.ExcludePatterns, p.AppendDefaults
}

// AddExcludePatterns validates and stores patterns. Patterns that do not
// compile are rejected; the others are stored. Already stored patterns are
// skipped. The returned error lists every rejected pattern.
func AddExcludePatterns(patterns ...string) (added []string, err error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	p := Load()
	have := make(map[string]bool, len(p.ExcludePatterns))
	for _, x := range p.ExcludePatterns {
		have[x] = true
	}

	cls, compileErr := classify.New(patterns, false)
	for _, pat := range cls.Patterns() {
		if have[pat] {
			continue
		}
		have[pat] = true
		p.ExcludePatterns = append(p.ExcludePatterns, pat)
		added = append(added, pat)
	}
	if len(added) > 0 {
		if err := Save(p); err != nil {
			return nil, err
		}
	}
	return added, compileErr
}

// RemoveExcludePattern deletes one stored pattern. Reports whether it was
// present.
func RemoveExcludePattern(pattern string) (bool, error) {
	p := Load()
	for i, x := range p.ExcludePatterns {
		if x == pattern {
			p.ExcludePatterns = append(p.ExcludePatterns[:i], p.ExcludePatterns[i+1:]...)
			return true, Save(p)
		}
	}
	return false, nil
}

// SetAppendDefaults stores whether user patterns extend the built-in rules.
func SetAppendDefaults(appendDefaults bool) error {
	p := Load()
	p.AppendDefaults = appendDefaults
	return Save(p)
}

// ResetExcludes clears all stored patterns.
func ResetExcludes() error {
	p := Load()
	p.ExcludePatterns = nil
	p.AppendDefaults = false
	return Save(p)
}

// RemoveAll removes the preferences file, restoring every default.
func RemoveAll() error {
	path, err := filePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing preferences file: %w", err)
	}
	return nil
}
