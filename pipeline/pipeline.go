// Package pipeline runs arbkit over a project: extract literals from every
// source file, assign keys, merge them into the ARB file and rewrite the
// sources to use the keys.
//
// Extraction and rewriting run on a bounded worker pool, one task per
// file, in fixed-size batches. Key assignment and the ARB save happen once,
// sequentially, between the two parallel phases.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/minios-linux/arbkit/arbfile"
	"github.com/minios-linux/arbkit/classify"
	"github.com/minios-linux/arbkit/extract"
	"github.com/minios-linux/arbkit/fileutil"
	"github.com/minios-linux/arbkit/keygen"
	"github.com/minios-linux/arbkit/lockfile"
	"github.com/minios-linux/arbkit/merge"
	"github.com/minios-linux/arbkit/rewrite"
	"github.com/minios-linux/arbkit/settings"
)

// ErrRootNotFound is returned when the project root is missing or is not
// a directory.
var ErrRootNotFound = errors.New("root directory not found")

const defaultBatchSize = 50

// Options control a run.
type Options struct {
	// Root is the project directory.
	Root string
	// SourceDirs are scanned for sources. Defaults to Root.
	SourceDirs []string
	// Extensions of source files. Defaults to extract.DefaultExtensions.
	Extensions []string
	// ARBPath is the template resource file.
	// Defaults to <Root>/lib/l10n/app_en.arb.
	ARBPath string

	KeyFormat keygen.Format
	Mode      merge.Mode

	UseAccessor   bool
	PreserveConst bool
	AccessorClass string
	// ImportLine is added to rewritten files that use the accessor.
	ImportLine string
	// Constructors are extra display constructors.
	Constructors []string

	// Exclude replaces the built-in classifier rules, or extends them when
	// AppendExcludes is set. When nil, stored user preferences are used.
	Exclude        []string
	AppendExcludes bool

	Workers   int
	BatchSize int
	// DryRun computes everything but writes nothing; Summary.Previews
	// holds the rewrites. Imports are not inserted.
	DryRun bool
	// UseLock reads and updates arbkit.lock in Root.
	UseLock bool

	// OnProgress is called after each batch of a phase.
	OnProgress func(phase string, done, total int)
}

// Skip is a file that was not processed.
type Skip struct {
	Path   string
	Reason string
}

// FileResult holds the literals found in one file.
type FileResult struct {
	Path     string
	Literals []extract.Literal
}

// ScanResult is the outcome of an extraction-only pass.
type ScanResult struct {
	Files   []FileResult
	Scanned int
	Skipped []Skip
}

// Summary reports a run.
type Summary struct {
	FilesScanned int
	StringsFound int
	FilesChanged int
	FilesSkipped int
	KeysAdded    int
	KeysReused   int
	Skipped      []Skip
	// Previews are filled on dry runs only.
	Previews []Preview
	// Keys maps every extracted value to its key.
	Keys map[string]string
	// Annotated lists keys that received an ambiguity description.
	Annotated []string
}

// source is one read file in the extraction phase.
type source struct {
	path     string
	content  string
	literals []extract.Literal
	err      error
}

func (o *Options) setDefaults() {
	if len(o.SourceDirs) == 0 {
		o.SourceDirs = []string{o.Root}
	}
	if len(o.Extensions) == 0 {
		o.Extensions = extract.DefaultExtensions
	}
	if o.ARBPath == "" {
		o.ARBPath = filepath.Join(o.Root, "lib", "l10n", "app_en.arb")
	}
	if o.KeyFormat == "" {
		o.KeyFormat = keygen.FormatCamel
	}
	if o.Mode == "" {
		o.Mode = merge.ModeDedupe
	}
	if o.AccessorClass == "" {
		o.AccessorClass = extract.DefaultAccessorClass
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.BatchSize <= 0 {
		o.BatchSize = defaultBatchSize
	}
}

func (o *Options) progress(phase string, done, total int) {
	log.Debug().Str("phase", phase).Int("done", done).Int("total", total).Msg("Batch finished")
	if o.OnProgress != nil {
		o.OnProgress(phase, done, total)
	}
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}
	return nil
}

// classifier builds the run's classifier. Invalid patterns are reported
// and dropped.
func classifier(opts *Options) *classify.Classifier {
	patterns, appendDefaults := opts.Exclude, opts.AppendExcludes
	if patterns == nil {
		patterns, appendDefaults = settings.LoadExcludePatterns()
	}
	cls, err := classify.New(patterns, appendDefaults)
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring invalid exclude patterns")
	}
	return cls
}

// Scan extracts literals from every source file without touching
// anything on disk.
func Scan(ctx context.Context, opts Options) (*ScanResult, error) {
	if err := checkRoot(opts.Root); err != nil {
		return nil, err
	}
	opts.setDefaults()

	sources, skipped, err := extractAll(ctx, &opts)
	if err != nil {
		return nil, err
	}
	res := &ScanResult{Skipped: skipped}
	for _, s := range sources {
		res.Scanned++
		if len(s.literals) > 0 {
			res.Files = append(res.Files, FileResult{Path: s.path, Literals: s.literals})
		}
	}
	return res, nil
}

// Run executes the full pipeline.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := checkRoot(opts.Root); err != nil {
		return nil, err
	}
	opts.setDefaults()

	sources, skipped, err := extractAll(ctx, &opts)
	if err != nil {
		return nil, err
	}
	sum := &Summary{Skipped: skipped}

	var values []string
	seen := make(map[string]bool)
	for _, s := range sources {
		sum.FilesScanned++
		sum.StringsFound += len(s.literals)
		for _, v := range extract.Values(s.literals) {
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
	}
	log.Info().Int("files", sum.FilesScanned).Int("strings", sum.StringsFound).Int("unique", len(values)).Msg("Extraction finished")

	arb, err := merge.Load(opts.ARBPath)
	if err != nil {
		return nil, fmt.Errorf("loading resource file: %w", err)
	}

	var lock *lockfile.LockFile
	target := lockfile.TargetKey(opts.Root, opts.ARBPath)
	if opts.UseLock {
		if lock, err = lockfile.Load(opts.Root); err != nil {
			log.Warn().Err(err).Msg("Ignoring unreadable lock file")
			lock = nil
		}
	}

	keys := keygen.Assign(values, opts.KeyFormat, keySet(arb), reuseTable(arb, lock, target, values))
	entries := make([]merge.Entry, 0, len(values))
	for _, v := range values {
		entries = append(entries, merge.Entry{Key: keys[v], Value: v})
	}
	res := merge.Merge(arb, entries, merge.Options{Mode: opts.Mode})
	sum.KeysAdded = res.Added
	sum.KeysReused = len(res.Reused)
	sum.Keys = res.Keys
	sum.Annotated = res.Annotated

	if !opts.DryRun && (res.Added > 0 || len(res.Annotated) > 0) {
		if err := merge.Save(arb, opts.ARBPath); err != nil {
			return nil, err
		}
	}
	if lock != nil && !opts.DryRun {
		lock.PinBatch(target, res.Keys)
		if n := lock.Clean(target, arb.Keys()); n > 0 {
			log.Debug().Int("removed", n).Msg("Removed stale lock pins")
		}
		pruneTargets(lock, opts.Root, target)
		if err := lock.Save(); err != nil {
			log.Warn().Err(err).Msg("Could not save lock file")
		}
	}

	if err := rewriteAll(ctx, &opts, sources, res.Keys, sum); err != nil {
		return nil, err
	}
	sum.FilesSkipped = len(sum.Skipped)
	return sum, nil
}

// extractAll runs phase one. Unreadable files become skips.
func extractAll(ctx context.Context, opts *Options) ([]source, []Skip, error) {
	paths, walkSkips := extract.FindSources(opts.SourceDirs, opts.Extensions)
	var skipped []Skip
	for _, s := range walkSkips {
		log.Warn().Str("file", s.Path).Err(s.Err).Msg("Skipping unreadable path")
		skipped = append(skipped, Skip{Path: s.Path, Reason: s.Err.Error()})
	}

	ex := extract.NewExtractor(classifier(opts), extract.Options{
		AccessorClass:     opts.AccessorClass,
		WorkDir:           opts.Root,
		ARBPath:           opts.ARBPath,
		ExtraConstructors: opts.Constructors,
	})

	slots := make([]source, len(paths))
	for _, batch := range batches(len(paths), opts.BatchSize) {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i := batch[0]; i < batch[1]; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				slot := &slots[i]
				slot.path = paths[i]
				data, err := os.ReadFile(paths[i])
				if err != nil {
					slot.err = err
					return nil
				}
				slot.content = string(data)
				slot.literals = ex.Extract(paths[i], slot.content)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
		opts.progress("extract", batch[1], len(paths))
	}

	sources := slots[:0]
	for _, s := range slots {
		if s.err != nil {
			log.Warn().Str("file", s.path).Err(s.err).Msg("Skipping unreadable file")
			skipped = append(skipped, Skip{Path: s.path, Reason: s.err.Error()})
			continue
		}
		sources = append(sources, s)
	}
	return sources, skipped, nil
}

// rewriteAll runs phase three over the files that had literals.
func rewriteAll(ctx context.Context, opts *Options, sources []source, keys map[string]string, sum *Summary) error {
	var todo []source
	for _, s := range sources {
		if len(s.literals) > 0 {
			todo = append(todo, s)
		}
	}

	rw := rewrite.New(rewrite.Options{
		UseAccessor:       opts.UseAccessor,
		PreserveConst:     opts.PreserveConst,
		AccessorClass:     opts.AccessorClass,
		ExtraConstructors: opts.Constructors,
	})

	type outcome struct {
		changed bool
		preview *Preview
		err     error
	}
	outcomes := make([]outcome, len(todo))

	for _, batch := range batches(len(todo), opts.BatchSize) {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i := batch[0]; i < batch[1]; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				s := todo[i]
				repl := make(map[string]string, len(s.literals))
				for _, l := range s.literals {
					if k, ok := keys[l.Value]; ok {
						repl[l.Value] = k
					}
				}
				rec := rw.Rewrite(s.content, repl)
				if !rec.Changed {
					return nil
				}
				content := rec.Content
				if opts.DryRun {
					p := NewPreview(s.path, s.content, content)
					outcomes[i] = outcome{changed: true, preview: &p}
					return nil
				}
				if rec.ImportNeeded && opts.ImportLine != "" {
					content, _ = rewrite.EnsureImport(content, opts.ImportLine)
				}
				mode := fileutil.FileMode(s.path, 0644)
				if err := fileutil.WriteAtomic(s.path, []byte(content), mode); err != nil {
					outcomes[i] = outcome{err: err}
					return nil
				}
				outcomes[i] = outcome{changed: true}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		opts.progress("rewrite", batch[1], len(todo))
	}

	for i, o := range outcomes {
		switch {
		case o.err != nil:
			log.Warn().Str("file", todo[i].path).Err(o.err).Msg("Could not write file")
			sum.Skipped = append(sum.Skipped, Skip{Path: todo[i].path, Reason: o.err.Error()})
		case o.changed:
			sum.FilesChanged++
			if o.preview != nil {
				sum.Previews = append(sum.Previews, *o.preview)
			}
		}
	}
	return nil
}

// reuseTable returns value -> key for values that keep a key from an
// earlier run: stored ARB values first, then lock file pins whose key is
// still free.
func reuseTable(arb *arbfile.File, lock *lockfile.LockFile, target string, values []string) map[string]string {
	stored := merge.ReuseIndex(arb)
	reuse := make(map[string]string)
	used := make(map[string]bool)
	for _, v := range values {
		if k, ok := stored[v]; ok {
			reuse[v] = k
			used[k] = true
		}
	}
	if lock == nil {
		return reuse
	}
	pins := lock.Reuse(target, values, func(k string) bool { return !arb.HasKey(k) })
	for _, v := range values {
		k, ok := pins[v]
		if !ok || used[k] {
			continue
		}
		if _, done := reuse[v]; done {
			continue
		}
		reuse[v] = k
		used[k] = true
	}
	return reuse
}

// pruneTargets drops the pins of resource files that no longer exist,
// such as the old template after the ARB path was changed.
func pruneTargets(lock *lockfile.LockFile, root, current string) {
	for _, t := range lock.Targets() {
		if t == current {
			continue
		}
		path := filepath.FromSlash(t)
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("target", t).Msg("Removing lock pins of a missing resource file")
			lock.RemoveTarget(t)
		}
	}
}

func keySet(f *arbfile.File) map[string]bool {
	keys := f.Keys()
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// batches splits n items into [start, end) ranges of at most size.
func batches(n, size int) [][2]int {
	var out [][2]int
	for i := 0; i < n; i += size {
		end := i + size
		if end > n {
			end = n
		}
		out = append(out, [2]int{i, end})
	}
	return out
}
