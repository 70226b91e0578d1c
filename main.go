// arbkit: extracts UI strings from Flutter sources into an ARB file and
// rewrites the sources to use the generated localization accessor.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/minios-linux/arbkit/arbfile"
	"github.com/minios-linux/arbkit/classify"
	"github.com/minios-linux/arbkit/config"
	"github.com/minios-linux/arbkit/i18n"
	"github.com/minios-linux/arbkit/keygen"
	"github.com/minios-linux/arbkit/lockfile"
	"github.com/minios-linux/arbkit/merge"
	"github.com/minios-linux/arbkit/pipeline"
	"github.com/minios-linux/arbkit/settings"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	infoTag     = color.New(color.FgBlue).Sprint("[INFO]")
	okTag       = color.New(color.FgGreen).Sprint("[OK]")
	warnTag     = color.New(color.Bold, color.FgYellow).Sprint("[WARN]")
	errorTag    = color.New(color.FgRed).Sprint("[ERROR]")
	heading     = color.New(color.FgBlue).SprintFunc()
	addedLine   = color.New(color.FgGreen).SprintFunc()
	removedLine = color.New(color.FgRed).SprintFunc()
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, infoTag+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, okTag+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, warnTag+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, errorTag+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir string
	verbose bool
)

// setupLogging routes diagnostics from the library packages to stderr.
func setupLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "arbkit",
		Short: i18n.T("Extract Flutter UI strings into ARB files"),
		Long: i18n.T(`arbkit extracts user-facing string literals from Flutter/Dart sources,
gives each a stable key, stores them in the template ARB file and rewrites
the sources to use the generated localization accessor.

Commands:
  status      Show project info and resource statistics
  scan        List translatable strings without changing anything
  run         Extract, store and rewrite
  exclude     Manage user exclude patterns
  prefs       Manage user defaults`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
	}

	root.PersistentFlags().StringVar(&rootDir, "root", ".", i18n.T("Project root directory"))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, i18n.T("Show debug output"))

	root.AddCommand(
		newStatusCmd(),
		newScanCmd(),
		newRunCmd(),
		newExcludeCmd(),
		newPrefsCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: i18n.T("Show version information"),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("arbkit version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// status (read-only)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	var notes bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: i18n.T("Show project info and resource statistics"),
		Long: i18n.T(`Show the detected Flutter project, the effective settings and
statistics about the template ARB file and the lock file. Does not modify
any files.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(notes)
		},
	}
	cmd.Flags().BoolVar(&notes, "notes", false, i18n.T("List the translator notes stored in the ARB file"))
	return cmd
}

func runStatus(notes bool) error {
	s, err := config.Resolve(rootDir)
	if err != nil {
		return err
	}
	proj := s.Project

	fmt.Fprintf(os.Stderr, "\n%s\n", heading(i18n.T("Project")))
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Name:"), proj.Name)
	if proj.Version != "" {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Version:"), proj.Version)
	}
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Root:"), proj.Root)
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Type:"), projectType(proj))
	if proj.IsFlutter && !proj.HasLocalizations {
		logWarning("%s", i18n.T("flutter_localizations is not a dependency in pubspec.yaml"))
	}

	var dirs []string
	for _, d := range s.SourceDirs {
		dirs = append(dirs, s.RelPath(d))
	}
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Sources:"), strings.Join(dirs, ", "))
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("ARB file:"), s.RelPath(s.ARBPath))
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Accessor:"), s.AccessorClass)
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Key format:"), s.KeyFormat)
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Merge mode:"), s.Mode)
	if s.File != nil {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Config:"), config.FileName)
	}
	fmt.Fprintln(os.Stderr)

	fmt.Fprintf(os.Stderr, "%s\n", heading(i18n.T("Resources")))
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	if !fileExists(s.ARBPath) {
		logInfo("%s", i18n.T("No ARB file yet. Run 'arbkit run' to create it."))
	} else {
		f, err := merge.Load(s.ARBPath)
		if err != nil {
			return err
		}
		total, variants, annotated := f.Stats()
		fmt.Fprintf(os.Stderr, "  %-12s %d\n", i18n.T("Keys:"), total)
		fmt.Fprintf(os.Stderr, "  %-12s %d\n", i18n.T("Variants:"), variants)
		fmt.Fprintf(os.Stderr, "  %-12s %d\n", i18n.T("Annotated:"), annotated)
		if f.Locale() != "" {
			fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Locale:"), f.Locale())
		}
		if notes {
			fmt.Fprintf(os.Stderr, "  %s\n", i18n.T("Notes:"))
			for _, line := range translatorNotes(f) {
				fmt.Fprintf(os.Stderr, "    %s\n", line)
			}
		}
	}

	if lf, err := lockfile.Load(proj.Root); err != nil {
		logWarning("%v", err)
	} else {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Lock file:"), lf.Summary())
	}

	patterns, appendDefaults := settings.LoadExcludePatterns()
	if len(s.Exclude) > 0 {
		patterns, appendDefaults = s.Exclude, s.AppendExcludes
	}
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Excludes:"), describeExcludes(patterns, appendDefaults))
	fmt.Fprintln(os.Stderr)
	return nil
}

// translatorNotes returns "key: description" for every key with a
// description, in file order.
func translatorNotes(f *arbfile.File) []string {
	var out []string
	for _, k := range f.Keys() {
		if d, ok := f.Description(k); ok {
			out = append(out, k+": "+d)
		}
	}
	return out
}

func projectType(proj *config.Project) string {
	switch {
	case proj.IsFlutter && proj.HasL10nConfig:
		return i18n.T("Flutter (gen-l10n)")
	case proj.IsFlutter:
		return i18n.T("Flutter")
	default:
		return i18n.T("Dart sources")
	}
}

func describeExcludes(patterns []string, appendDefaults bool) string {
	switch {
	case len(patterns) == 0:
		return i18n.T("built-in rules")
	case appendDefaults:
		return fmt.Sprintf(i18n.N("%d user pattern + built-in rules", "%d user patterns + built-in rules", len(patterns)), len(patterns))
	default:
		return fmt.Sprintf(i18n.N("%d user pattern", "%d user patterns", len(patterns)), len(patterns))
	}
}

// ---------------------------------------------------------------------------
// Shared run options
// ---------------------------------------------------------------------------

// runFlags are the command-line overrides shared by scan and run.
type runFlags struct {
	dryRun         bool
	format         string
	arb            string
	noAccessor     bool
	keepConst      bool
	mode           string
	exclude        []string
	appendExcludes bool
	workers        int
	noLock         bool
}

func (f *runFlags) addRun(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, i18n.T("Show what would change without writing files"))
	cmd.Flags().StringVar(&f.format, "format", "", i18n.T("Key format: snake_case, camelCase or dot.case"))
	cmd.Flags().StringVar(&f.arb, "arb", "", i18n.T("Template ARB file"))
	cmd.Flags().BoolVar(&f.noAccessor, "no-accessor", false, i18n.T("Emit tr(\"key\") calls instead of the accessor"))
	cmd.Flags().BoolVar(&f.keepConst, "keep-const", false, i18n.T("Keep const modifiers (only with --no-accessor)"))
	cmd.Flags().StringVar(&f.mode, "mode", "", i18n.T("Merge mode: dedupe or verbatim"))
	cmd.Flags().BoolVar(&f.noLock, "no-lock", false, i18n.T("Do not read or update arbkit.lock"))
}

func (f *runFlags) addExtraction(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.exclude, "exclude", nil, i18n.T("Exclude pattern (regular expression, repeatable)"))
	cmd.Flags().BoolVar(&f.appendExcludes, "append-excludes", false, i18n.T("Keep built-in rules alongside --exclude patterns"))
	cmd.Flags().IntVar(&f.workers, "workers", 0, i18n.T("Parallel workers (default: number of CPUs)"))
}

// options builds pipeline options from resolved settings and the flags
// that were set on cmd.
func (f *runFlags) options(cmd *cobra.Command) (pipeline.Options, *config.Settings, error) {
	s, err := config.Resolve(rootDir)
	if err != nil {
		return pipeline.Options{}, nil, err
	}
	changed := cmd.Flags().Changed

	if changed("format") {
		if s.KeyFormat, err = keygen.ParseFormat(f.format); err != nil {
			return pipeline.Options{}, nil, err
		}
	}
	if changed("mode") {
		if s.Mode, err = merge.ParseMode(f.mode); err != nil {
			return pipeline.Options{}, nil, err
		}
	}
	if changed("arb") {
		s.ARBPath, _ = filepath.Abs(f.arb)
	}
	if changed("no-accessor") {
		s.UseAccessor = !f.noAccessor
	}
	if changed("keep-const") {
		s.PreserveConst = f.keepConst
	}
	if changed("exclude") {
		s.Exclude = f.exclude
	}
	if changed("append-excludes") {
		s.AppendExcludes = f.appendExcludes
	}
	if changed("workers") && f.workers > 0 {
		s.Workers = f.workers
	}

	opts := pipeline.Options{
		Root:           s.Project.Root,
		SourceDirs:     s.SourceDirs,
		Extensions:     s.Extensions,
		ARBPath:        s.ARBPath,
		KeyFormat:      s.KeyFormat,
		Mode:           s.Mode,
		UseAccessor:    s.UseAccessor,
		PreserveConst:  s.PreserveConst,
		AccessorClass:  s.AccessorClass,
		ImportLine:     s.ImportLine,
		Constructors:   s.Constructors,
		Exclude:        s.Exclude,
		AppendExcludes: s.AppendExcludes,
		Workers:        s.Workers,
		BatchSize:      s.BatchSize,
		DryRun:         f.dryRun,
		UseLock:        !f.noLock,
	}
	log.Debug().Str("settings", s.String()).Msg("Resolved settings")
	return opts, s, nil
}

// ---------------------------------------------------------------------------
// scan
// ---------------------------------------------------------------------------

func newScanCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "scan",
		Short: i18n.T("List translatable strings without changing anything"),
		Example: `  arbkit scan
  arbkit scan --root ./my_app --exclude '^Debug'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, s, err := f.options(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			res, err := pipeline.Scan(ctx, opts)
			if err != nil {
				return err
			}
			printSkips(s, res.Skipped)

			total := 0
			for _, file := range res.Files {
				fmt.Println(heading(s.RelPath(file.Path)))
				for _, l := range file.Literals {
					fmt.Printf("  %4d  %q\n", l.Line, l.Value)
				}
				total += len(file.Literals)
			}
			logSuccess(i18n.T("Found %d strings in %d of %d files"), total, len(res.Files), res.Scanned)
			return nil
		},
	}
	f.addExtraction(cmd)
	return cmd
}

// ---------------------------------------------------------------------------
// run
// ---------------------------------------------------------------------------

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: i18n.T("Extract strings, update the ARB file and rewrite sources"),
		Long: i18n.T(`Extract translatable strings, give each a key, append new keys to the
template ARB file and replace the literals in the sources with accessor
calls. Running it again on the result changes nothing.`),
		Example: `  # Preview the changes
  arbkit run --dry-run

  # snake_case keys, tr("key") calls instead of the accessor
  arbkit run --format snake_case --no-accessor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, s, err := f.options(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			if opts.DryRun {
				logInfo("%s", i18n.T("Dry run: no files will be written"))
			}
			opts.OnProgress = func(phase string, done, total int) {
				if verbose {
					logInfo(i18n.T("%s: %d/%d files"), phase, done, total)
				}
			}

			sum, err := pipeline.Run(ctx, opts)
			if err != nil {
				if errors.Is(err, pipeline.ErrRootNotFound) {
					return fmt.Errorf("%s: %w", i18n.T("nothing to do"), err)
				}
				return err
			}
			printSkips(s, sum.Skipped)
			for _, p := range sum.Previews {
				printPreview(s, p)
			}
			printSummary(s, opts, sum)
			return nil
		},
	}

	f.addRun(cmd)
	f.addExtraction(cmd)
	return cmd
}

func printSkips(s *config.Settings, skips []pipeline.Skip) {
	for _, sk := range skips {
		logWarning(i18n.T("Skipped %s: %s"), s.RelPath(sk.Path), sk.Reason)
	}
}

func printPreview(s *config.Settings, p pipeline.Preview) {
	rel := s.RelPath(p.Path)
	fmt.Printf("--- %s\n+++ %s\n", rel, rel)
	for _, h := range p.Hunks {
		fmt.Println(heading(fmt.Sprintf("@@ line %d @@", h.Line)))
		for _, l := range h.Before {
			fmt.Println(removedLine("-" + l))
		}
		for _, l := range h.After {
			fmt.Println(addedLine("+" + l))
		}
	}
	fmt.Println()
}

func printSummary(s *config.Settings, opts pipeline.Options, sum *pipeline.Summary) {
	fmt.Fprintf(os.Stderr, "\n%s\n", heading(i18n.T("Summary")))
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 40))
	rows := []struct {
		label string
		value int
	}{
		{i18n.T("Files scanned"), sum.FilesScanned},
		{i18n.T("Strings found"), sum.StringsFound},
		{i18n.T("Files changed"), sum.FilesChanged},
		{i18n.T("Files skipped"), sum.FilesSkipped},
		{i18n.T("Keys added"), sum.KeysAdded},
		{i18n.T("Keys reused"), sum.KeysReused},
	}
	for _, r := range rows {
		fmt.Fprintf(os.Stderr, "  %-16s %d\n", r.label, r.value)
	}
	fmt.Fprintln(os.Stderr)

	for _, key := range sortedCopy(sum.Annotated) {
		logWarning(i18n.T("Key %q is ambiguous; a description was added for translators"), key)
	}

	switch {
	case opts.DryRun:
		logInfo("%s", i18n.T("Dry run finished; run without --dry-run to apply"))
	case sum.KeysAdded > 0 || sum.FilesChanged > 0:
		logSuccess(i18n.T("Updated %s"), s.RelPath(opts.ARBPath))
		if opts.UseAccessor {
			logInfo(i18n.T("Run 'flutter gen-l10n' to regenerate %s"), s.AccessorClass)
		}
	default:
		logSuccess("%s", i18n.T("Everything is up to date"))
	}
}

// ---------------------------------------------------------------------------
// exclude (user preferences)
// ---------------------------------------------------------------------------

func newExcludeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exclude",
		Short: i18n.T("Manage user exclude patterns"),
		Long: i18n.T(`Exclude patterns are regular expressions. A string matching any of
them is never extracted. User patterns replace the built-in rules unless
appending is enabled. They are stored in the arbkit data directory and
apply to every project without its own exclude list.`),
	}
	cmd.AddCommand(
		newExcludeListCmd(),
		newExcludeAddCmd(),
		newExcludeRemoveCmd(),
		newExcludeResetCmd(),
	)
	return cmd
}

func newExcludeListCmd() *cobra.Command {
	var builtin bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: i18n.T("List exclude patterns"),
		Run: func(cmd *cobra.Command, args []string) {
			if builtin {
				for _, p := range classify.Default().Patterns() {
					fmt.Println(p)
				}
				return
			}
			patterns, appendDefaults := settings.LoadExcludePatterns()
			if len(patterns) == 0 {
				logInfo("%s", i18n.T("No user patterns; the built-in rules apply"))
				return
			}
			for _, p := range patterns {
				fmt.Println(p)
			}
			logInfo("%s (%s)", describeExcludes(patterns, appendDefaults), settings.FilePath())
		},
	}
	cmd.Flags().BoolVar(&builtin, "builtin", false, i18n.T("List the built-in rules instead"))
	return cmd
}

func newExcludeAddCmd() *cobra.Command {
	var appendDefaults bool
	cmd := &cobra.Command{
		Use:   "add PATTERN...",
		Short: i18n.T("Add exclude patterns"),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			added, err := settings.AddExcludePatterns(args...)
			for _, p := range added {
				logSuccess(i18n.T("Added %s"), p)
			}
			if cmd.Flags().Changed("append") {
				if err := settings.SetAppendDefaults(appendDefaults); err != nil {
					return err
				}
			}
			var perr *classify.PatternError
			if errors.As(err, &perr) {
				logError("%v", err)
				return errors.New(i18n.T("some patterns were rejected"))
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&appendDefaults, "append", false, i18n.T("Keep the built-in rules alongside user patterns"))
	return cmd
}

func newExcludeRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove PATTERN",
		Short: i18n.T("Remove an exclude pattern"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := settings.RemoveExcludePattern(args[0])
			if err != nil {
				return err
			}
			if !removed {
				logWarning(i18n.T("Pattern %s is not stored"), args[0])
				return nil
			}
			logSuccess(i18n.T("Removed %s"), args[0])
			return nil
		},
	}
}

func newExcludeResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: i18n.T("Remove all user patterns"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.ResetExcludes(); err != nil {
				return err
			}
			logSuccess("%s", i18n.T("User patterns cleared; the built-in rules apply"))
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// prefs (user defaults)
// ---------------------------------------------------------------------------

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: i18n.T("Manage user defaults"),
		Long: i18n.T(`User defaults apply to every project that does not set them in
.arbkit.yaml or l10n.yaml. They are stored next to the exclude patterns.`),
	}
	cmd.AddCommand(
		newPrefsShowCmd(),
		newPrefsSetCmd(),
		newPrefsResetCmd(),
	)
	return cmd
}

func newPrefsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: i18n.T("Show stored defaults"),
		Run: func(cmd *cobra.Command, args []string) {
			p := settings.Load()
			orDefault := func(v string) string {
				if v == "" {
					return i18n.T("(default)")
				}
				return v
			}
			fmt.Printf("%-12s %s\n", i18n.T("File:"), settings.FilePath())
			fmt.Printf("%-12s %s\n", i18n.T("Key format:"), orDefault(p.KeyFormat))
			fmt.Printf("%-12s %s\n", i18n.T("ARB dir:"), orDefault(p.ARBDir))
			fmt.Printf("%-12s %s\n", i18n.T("Excludes:"), describeExcludes(p.ExcludePatterns, p.AppendDefaults))
		},
	}
}

func newPrefsSetCmd() *cobra.Command {
	var format, arbDir string
	cmd := &cobra.Command{
		Use:   "set",
		Short: i18n.T("Store default key format or ARB directory"),
		Example: `  arbkit prefs set --format snake_case
  arbkit prefs set --arb-dir assets/l10n`,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := cmd.Flags().Changed
			if !changed("format") && !changed("arb-dir") {
				return errors.New(i18n.T("nothing to set: use --format or --arb-dir"))
			}
			p := settings.Load()
			if changed("format") {
				f, err := keygen.ParseFormat(format)
				if err != nil {
					return err
				}
				p.KeyFormat = string(f)
			}
			if changed("arb-dir") {
				p.ARBDir = filepath.ToSlash(filepath.Clean(arbDir))
			}
			if err := settings.Save(p); err != nil {
				return err
			}
			logSuccess(i18n.T("Saved %s"), settings.FilePath())
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", i18n.T("Key format: snake_case, camelCase or dot.case"))
	cmd.Flags().StringVar(&arbDir, "arb-dir", "", i18n.T("ARB directory relative to the project root"))
	return cmd
}

func newPrefsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: i18n.T("Remove all stored defaults and exclude patterns"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.RemoveAll(); err != nil {
				return err
			}
			logSuccess("%s", i18n.T("Preferences removed"))
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// fileExists returns true if the file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
