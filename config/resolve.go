package config

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/minios-linux/arbkit/extract"
	"github.com/minios-linux/arbkit/keygen"
	"github.com/minios-linux/arbkit/merge"
	"github.com/minios-linux/arbkit/settings"
)

// DefaultBatchSize is the number of files per progress batch.
const DefaultBatchSize = 50

// Settings are the effective settings for one run.
type Settings struct {
	Project *Project
	// File is the loaded .arbkit.yaml, or nil.
	File *ArbkitFile

	SourceDirs     []string
	Extensions     []string
	ARBPath        string
	KeyFormat      keygen.Format
	Mode           merge.Mode
	AccessorClass  string
	ImportLine     string
	UseAccessor    bool
	PreserveConst  bool
	Workers        int
	BatchSize      int
	Exclude        []string
	AppendExcludes bool
	Constructors   []string
}

// Resolve builds the effective settings for the project at root. Later
// layers win: built-in defaults, user preferences, project detection,
// .arbkit.yaml, then the environment.
func Resolve(root string) (*Settings, error) {
	proj, err := Detect(root)
	if err != nil {
		return nil, err
	}
	af, err := LoadFile(proj.Root)
	if err != nil {
		return nil, err
	}

	eff := ArbkitFile{}
	if af != nil {
		eff = *af
	}
	if err := eff.ApplyEnv(proj.Root); err != nil {
		return nil, err
	}

	s := &Settings{
		Project:        proj,
		File:           af,
		SourceDirs:     proj.SourceDirs(),
		Extensions:     extract.DefaultExtensions,
		ARBPath:        proj.ARBPath(),
		KeyFormat:      keygen.FormatCamel,
		Mode:           merge.ModeDedupe,
		AccessorClass:  proj.OutputClass,
		ImportLine:     proj.ImportLine(),
		UseAccessor:    true,
		PreserveConst:  eff.PreserveConst,
		Workers:        runtime.NumCPU(),
		BatchSize:      DefaultBatchSize,
		Exclude:        eff.Exclude,
		AppendExcludes: eff.AppendExcludes,
		Constructors:   eff.Constructors,
	}

	prefs := settings.Load()
	if prefs.KeyFormat != "" {
		if f, err := keygen.ParseFormat(prefs.KeyFormat); err == nil {
			s.KeyFormat = f
		}
	}
	if prefs.ARBDir != "" && !proj.HasL10nConfig {
		s.ARBPath = abs(proj.Root, filepath.Join(prefs.ARBDir, proj.TemplateARB))
	}

	if len(eff.Sources) > 0 {
		s.SourceDirs = nil
		for _, dir := range eff.Sources {
			s.SourceDirs = append(s.SourceDirs, abs(proj.Root, dir))
		}
	}
	if len(eff.Extensions) > 0 {
		s.Extensions = eff.Extensions
	}
	if eff.ARBFile != "" {
		s.ARBPath = abs(proj.Root, eff.ARBFile)
	}
	if eff.KeyFormat != "" {
		if s.KeyFormat, err = keygen.ParseFormat(eff.KeyFormat); err != nil {
			return nil, err
		}
	}
	if eff.Mode != "" {
		if s.Mode, err = merge.ParseMode(eff.Mode); err != nil {
			return nil, err
		}
	}
	if eff.AccessorClass != "" {
		s.AccessorClass = eff.AccessorClass
	}
	if eff.Import != "" {
		s.ImportLine = eff.Import
	}
	if eff.UseAccessor != nil {
		s.UseAccessor = *eff.UseAccessor
	}
	if eff.Workers > 0 {
		s.Workers = eff.Workers
	}
	if eff.BatchSize > 0 {
		s.BatchSize = eff.BatchSize
	}
	return s, nil
}

// RelPath returns path relative to the project root for display.
func (s *Settings) RelPath(path string) string {
	if rel, err := filepath.Rel(s.Project.Root, path); err == nil {
		return rel
	}
	return path
}

// String summarizes the settings for verbose output.
func (s *Settings) String() string {
	return fmt.Sprintf("arb=%s format=%s mode=%s accessor=%s workers=%d",
		s.RelPath(s.ARBPath), s.KeyFormat, s.Mode, s.AccessorClass, s.Workers)
}

func abs(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
