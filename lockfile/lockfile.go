// Package lockfile implements arbkit.lock, a lock file that pins the key
// chosen for each extracted string. Re-runs look values up here first, so
// the same literal keeps the same key even after it was removed from the
// resource file and later reintroduced, or when keys would otherwise be
// suffixed differently.
//
// The lock file is stored in the project root next to .arbkit.yaml.
package lockfile

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/arbkit/fileutil"
)

// LockFileName is the default lock file name.
const LockFileName = "arbkit.lock"

// Version is the lock file format version.
const Version = 1

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// LockFile represents the arbkit.lock file structure.
type LockFile struct {
	Version int                          `yaml:"version"`
	Pins    map[string]map[string]string `yaml:"pins"` // target -> md5(value) -> key

	mu   sync.Mutex `yaml:"-"`
	path string     `yaml:"-"`
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// Load reads a lock file from the given directory.
// Returns an empty lock file if the file doesn't exist.
func Load(dir string) (*LockFile, error) {
	path := filepath.Join(dir, LockFileName)
	lf := &LockFile{
		Version: Version,
		Pins:    make(map[string]map[string]string),
		path:    path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lf, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, lf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	lf.path = path

	if lf.Pins == nil {
		lf.Pins = make(map[string]map[string]string)
	}

	return lf, nil
}

// Save writes the lock file to disk atomically.
func (lf *LockFile) Save() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.path == "" {
		return fmt.Errorf("lock file path not set")
	}

	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}

	if err := fileutil.WriteAtomic(lf.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", lf.path, err)
	}

	return nil
}

// Path returns the lock file path.
func (lf *LockFile) Path() string {
	return lf.path
}

// ---------------------------------------------------------------------------
// Pin operations
// ---------------------------------------------------------------------------

// Hash computes the MD5 hex digest of a string.
func Hash(s string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(s)))
}

// TargetKey builds the target name for a resource file path, relative to
// the project root when possible.
func TargetKey(root, arbPath string) string {
	if rel, err := filepath.Rel(root, arbPath); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(arbPath)
}

// Pinned returns the key pinned for value in target.
func (lf *LockFile) Pinned(target, value string) (string, bool) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	key, ok := lf.Pins[target][Hash(value)]
	return key, ok
}

// Pin records the key chosen for value.
func (lf *LockFile) Pin(target, value, key string) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.Pins[target] == nil {
		lf.Pins[target] = make(map[string]string)
	}
	lf.Pins[target][Hash(value)] = key
}

// PinBatch records keys for multiple values at once (value -> key).
func (lf *LockFile) PinBatch(target string, entries map[string]string) {
	for value, key := range entries {
		lf.Pin(target, value, key)
	}
}

// Reuse returns value -> key for every value in values that has a pin.
// Pins whose key is not in allowed are skipped when allowed is non-nil.
func (lf *LockFile) Reuse(target string, values []string, allowed func(key string) bool) map[string]string {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	pins := lf.Pins[target]
	out := make(map[string]string)
	if pins == nil {
		return out
	}
	for _, v := range values {
		key, ok := pins[Hash(v)]
		if !ok || (allowed != nil && !allowed(key)) {
			continue
		}
		out[v] = key
	}
	return out
}

// Clean removes pins whose key is no longer present in currentKeys.
// This prevents stale entries from accumulating.
func (lf *LockFile) Clean(target string, currentKeys []string) int {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	existing := lf.Pins[target]
	if existing == nil {
		return 0
	}

	valid := make(map[string]bool, len(currentKeys))
	for _, k := range currentKeys {
		valid[k] = true
	}

	removed := 0
	for h, k := range existing {
		if !valid[k] {
			delete(existing, h)
			removed++
		}
	}
	return removed
}

// RemoveTarget removes all pins for a target.
func (lf *LockFile) RemoveTarget(target string) {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	delete(lf.Pins, target)
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

// Stats returns the number of targets and total pins in the lock file.
func (lf *LockFile) Stats() (targets, pins int) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	targets = len(lf.Pins)
	for _, m := range lf.Pins {
		pins += len(m)
	}
	return
}

// Targets returns sorted list of target keys.
func (lf *LockFile) Targets() []string {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	targets := make([]string, 0, len(lf.Pins))
	for t := range lf.Pins {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// ---------------------------------------------------------------------------
// Human-readable summary
// ---------------------------------------------------------------------------

// Summary returns a human-readable summary string.
func (lf *LockFile) Summary() string {
	targets, pins := lf.Stats()
	if targets == 0 {
		return "empty"
	}

	var parts []string
	for _, t := range lf.Targets() {
		lf.mu.Lock()
		n := len(lf.Pins[t])
		lf.mu.Unlock()
		parts = append(parts, fmt.Sprintf("%s: %d keys", t, n))
	}
	return fmt.Sprintf("%d targets, %d keys (%s)", targets, pins, strings.Join(parts, ", "))
}
