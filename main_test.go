package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/minios-linux/arbkit/arbfile"
	"github.com/minios-linux/arbkit/config"
	"github.com/minios-linux/arbkit/keygen"
	"github.com/minios-linux/arbkit/merge"
	"github.com/minios-linux/arbkit/settings"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

// isolate keeps user preferences and environment overrides out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv(config.EnvKeyFormat, "")
	t.Setenv(config.EnvWorkers, "")
	t.Setenv(config.EnvARBDir, "")
	t.Setenv(config.EnvAccessorClass, "")
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestDescribeExcludes(t *testing.T) {
	tests := []struct {
		patterns       []string
		appendDefaults bool
		want           string
	}{
		{nil, false, "built-in rules"},
		{[]string{"a"}, false, "1 user pattern"},
		{[]string{"a", "b"}, false, "2 user patterns"},
		{[]string{"a", "b"}, true, "2 user patterns + built-in rules"},
	}
	for _, tc := range tests {
		if got := describeExcludes(tc.patterns, tc.appendDefaults); got != tc.want {
			t.Fatalf("describeExcludes(%v, %v) = %q, want %q", tc.patterns, tc.appendDefaults, got, tc.want)
		}
	}
}

func TestProjectType(t *testing.T) {
	if got := projectType(&config.Project{IsFlutter: true, HasL10nConfig: true}); got != "Flutter (gen-l10n)" {
		t.Fatalf("projectType = %q", got)
	}
	if got := projectType(&config.Project{}); got != "Dart sources" {
		t.Fatalf("projectType = %q", got)
	}
}

func TestSortedCopy(t *testing.T) {
	in := []string{"b", "a"}
	if got := sortedCopy(in); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("sortedCopy = %v", got)
	}
	if in[0] != "b" {
		t.Fatal("sortedCopy modified its input")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(filePath, []byte("ok"), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}

	if !fileExists(filePath) {
		t.Fatalf("fileExists(file) = false, want true")
	}
	if fileExists(dir) {
		t.Fatalf("fileExists(directory) = true, want false")
	}
	if fileExists(filepath.Join(dir, "missing.txt")) {
		t.Fatalf("fileExists(missing) = true, want false")
	}
}

func newFlagsCmd(f *runFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	f.addRun(cmd)
	f.addExtraction(cmd)
	return cmd
}

func TestRunFlagsOverrideSettings(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), "key_format: snake_case\nworkers: 3\n")

	rootDir = dir
	t.Cleanup(func() { rootDir = "." })

	flags := runFlags{}
	c := newFlagsCmd(&flags)
	if err := c.ParseFlags([]string{"--format", "dot.case", "--mode", "verbatim", "--no-accessor", "--exclude", "^X", "--exclude", "^Y"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	opts, s, err := flags.options(c)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.KeyFormat != keygen.FormatDot || opts.Mode != merge.ModeVerbatim {
		t.Errorf("KeyFormat/Mode = %s/%s", opts.KeyFormat, opts.Mode)
	}
	if opts.UseAccessor {
		t.Error("UseAccessor should be off with --no-accessor")
	}
	if !reflect.DeepEqual(opts.Exclude, []string{"^X", "^Y"}) {
		t.Errorf("Exclude = %v", opts.Exclude)
	}
	if opts.Workers != 3 {
		t.Errorf("Workers = %d, want 3 from %s", opts.Workers, config.FileName)
	}
	if !opts.UseLock || opts.DryRun {
		t.Errorf("UseLock/DryRun = %v/%v", opts.UseLock, opts.DryRun)
	}
	if s.Project.Root != opts.Root {
		t.Errorf("Root = %q, want %q", opts.Root, s.Project.Root)
	}

	bad := runFlags{}
	c = newFlagsCmd(&bad)
	if err := c.ParseFlags([]string{"--format", "kebab"}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := bad.options(c); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRunCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pubspec.yaml"), "name: demo\ndependencies:\n  flutter:\n    sdk: flutter\n")
	src := filepath.Join(dir, "lib", "main.dart")
	writeFile(t, src, "import 'package:flutter/material.dart';\n\nfinal w = Text(\"Welcome to our app\");\n")
	t.Cleanup(func() { rootDir = "." })

	if err := execute(t, "--root", dir, "run", "--dry-run"); err != nil {
		t.Fatalf("run --dry-run: %v", err)
	}
	if fileExists(filepath.Join(dir, "lib", "l10n", "app_en.arb")) {
		t.Fatal("dry run wrote the ARB file")
	}

	if err := execute(t, "--root", dir, "run"); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "AppLocalizations.of(context).welcomeToOurApp") {
		t.Fatalf("source not rewritten:\n%s", data)
	}
	if !strings.Contains(string(data), "import 'package:flutter_gen/gen_l10n/app_localizations.dart';") {
		t.Fatalf("import not added:\n%s", data)
	}
	arb, err := os.ReadFile(filepath.Join(dir, "lib", "l10n", "app_en.arb"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(arb), `"welcomeToOurApp": "Welcome to our app"`) {
		t.Fatalf("ARB missing entry:\n%s", arb)
	}
	if !fileExists(filepath.Join(dir, "arbkit.lock")) {
		t.Fatal("lock file not written")
	}

	if err := execute(t, "--root", dir, "status", "--notes"); err != nil {
		t.Fatalf("status: %v", err)
	}
	if err := execute(t, "--root", dir, "scan"); err != nil {
		t.Fatalf("scan: %v", err)
	}
}

func TestRunCommandMissingRoot(t *testing.T) {
	isolate(t)
	t.Cleanup(func() { rootDir = "." })
	err := execute(t, "--root", filepath.Join(t.TempDir(), "missing"), "run")
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestExcludeCommands(t *testing.T) {
	isolate(t)

	if err := execute(t, "exclude", "add", "^Debug", "--append"); err != nil {
		t.Fatalf("exclude add: %v", err)
	}
	patterns, appendDefaults := settings.LoadExcludePatterns()
	if !reflect.DeepEqual(patterns, []string{"^Debug"}) || !appendDefaults {
		t.Fatalf("stored = %v, %v", patterns, appendDefaults)
	}

	if err := execute(t, "exclude", "add", "(bad"); err == nil {
		t.Fatal("expected error for invalid pattern")
	}

	if err := execute(t, "exclude", "list"); err != nil {
		t.Fatalf("exclude list: %v", err)
	}
	if err := execute(t, "exclude", "remove", "^Debug"); err != nil {
		t.Fatalf("exclude remove: %v", err)
	}
	if patterns, _ := settings.LoadExcludePatterns(); len(patterns) != 0 {
		t.Fatalf("patterns after remove = %v", patterns)
	}
	if err := execute(t, "exclude", "reset"); err != nil {
		t.Fatalf("exclude reset: %v", err)
	}
	if _, appendDefaults := settings.LoadExcludePatterns(); appendDefaults {
		t.Fatal("reset should clear append flag")
	}
}

func TestTranslatorNotes(t *testing.T) {
	f := arbfile.New("")
	f.Append("ok", arbfile.Plain("OK"))
	f.Append("title", arbfile.Plain("Title"))
	f.Append("save", arbfile.Plain("Save"))
	f.SetMeta("save", "Toolbar button")
	f.SetMeta("ok", "Dialog confirmation")

	want := []string{"ok: Dialog confirmation", "save: Toolbar button"}
	if got := translatorNotes(f); !reflect.DeepEqual(got, want) {
		t.Fatalf("translatorNotes = %q, want %q", got, want)
	}
	if got := translatorNotes(arbfile.New("")); got != nil {
		t.Fatalf("translatorNotes(empty) = %q, want nil", got)
	}
}

func TestPrefsCommands(t *testing.T) {
	isolate(t)

	if err := execute(t, "prefs", "set"); err == nil {
		t.Fatal("expected error without flags")
	}
	if err := execute(t, "prefs", "set", "--format", "kebab"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if err := execute(t, "prefs", "set", "--format", "snake", "--arb-dir", "res/l10n/"); err != nil {
		t.Fatalf("prefs set: %v", err)
	}
	p := settings.Load()
	if p.KeyFormat != "snake_case" || p.ARBDir != "res/l10n" {
		t.Fatalf("stored = %q, %q", p.KeyFormat, p.ARBDir)
	}
	if err := execute(t, "prefs", "show"); err != nil {
		t.Fatalf("prefs show: %v", err)
	}

	if err := execute(t, "prefs", "reset"); err != nil {
		t.Fatalf("prefs reset: %v", err)
	}
	if fileExists(settings.FilePath()) {
		t.Fatal("preferences file still exists after reset")
	}
	if err := execute(t, "prefs", "reset"); err != nil {
		t.Fatalf("second prefs reset: %v", err)
	}
}
