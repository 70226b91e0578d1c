package extract

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/minios-linux/arbkit/arbfile"
	"github.com/minios-linux/arbkit/keygen"
)

// ARBCandidates are checked, in order, before walking the project.
var ARBCandidates = []string{
	"lib/l10n/app_en.arb",
	"lib/l10n/intl_en.arb",
	"lib/src/l10n/app_en.arb",
	"l10n/app_en.arb",
	"assets/l10n/app_en.arb",
}

var errFound = errors.New("found")

// FindARB returns the template ARB file of the project under root, or ""
// when there is none.
func FindARB(root string) string {
	if root == "" {
		return ""
	}
	for _, c := range ARBCandidates {
		p := filepath.Join(root, filepath.FromSlash(c))
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}

	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".arb" {
			found = path
			return errFound
		}
		return nil
	})
	return found
}

// known returns accessor identifier → text from the project's ARB file,
// loading it on first use. Keys that are not valid identifiers (dot.case)
// are also indexed under the identifier the rewriter emits for them.
func (e *Extractor) known() map[string]string {
	e.lookupOnce.Do(func() {
		e.lookup = make(map[string]string)
		path := e.arbPath
		if info, err := os.Stat(path); path == "" || err != nil || info.IsDir() {
			path = FindARB(e.workDir)
		}
		if path == "" {
			return
		}
		f, err := arbfile.ParseFile(path)
		if err != nil {
			log.Debug().Err(err).Str("file", path).Msg("Reverse lookup disabled")
			return
		}
		values := f.SourceValues()
		for k, v := range values {
			if v != "" {
				e.lookup[k] = v
			}
		}
		for _, k := range f.Keys() {
			v, id := values[k], keygen.Identifier(k)
			if _, taken := e.lookup[id]; v != "" && !taken {
				e.lookup[id] = v
			}
		}
		log.Debug().Str("file", path).Int("keys", len(values)).Msg("Reverse lookup table loaded")
	})
	return e.lookup
}
