package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/arbkit/extract"
)

// Flutter gen-l10n defaults.
const (
	DefaultARBDir      = "lib/l10n"
	DefaultTemplateARB = "app_en.arb"
	DefaultOutputFile  = "app_localizations.dart"
	PubspecFileName    = "pubspec.yaml"
	L10nFileName       = "l10n.yaml"
)

// Project holds settings detected from a Flutter project.
type Project struct {
	// Root is the absolute project directory.
	Root string
	// Name is the package name from pubspec.yaml.
	Name string
	// Version from pubspec.yaml.
	Version string
	// IsFlutter reports whether pubspec.yaml depends on the Flutter SDK.
	IsFlutter bool
	// HasLocalizations reports whether flutter_localizations is a dependency.
	HasLocalizations bool
	// HasL10nConfig reports whether l10n.yaml exists.
	HasL10nConfig bool

	// ARBDir is the resource directory relative to Root.
	ARBDir string
	// TemplateARB is the template file name inside ARBDir.
	TemplateARB string
	// OutputClass is the generated accessor class.
	OutputClass string
	// OutputFile is the generated Dart file name.
	OutputFile string
	// OutputDir is where the generated file lives, relative to Root.
	OutputDir string
	// SyntheticPackage generates into package:flutter_gen.
	SyntheticPackage bool
	// NullableGetter makes <Class>.of(context) nullable.
	NullableGetter bool

	// arbPath is set when the template was found by searching instead of
	// from l10n.yaml.
	arbPath string
}

type pubspec struct {
	Name         string                 `yaml:"name"`
	Version      string                 `yaml:"version"`
	Dependencies map[string]interface{} `yaml:"dependencies"`
}

type l10nConfig struct {
	ARBDir           string `yaml:"arb-dir"`
	TemplateARBFile  string `yaml:"template-arb-file"`
	OutputClass      string `yaml:"output-class"`
	OutputFile       string `yaml:"output-localization-file"`
	OutputDir        string `yaml:"output-dir"`
	SyntheticPackage *bool  `yaml:"synthetic-package"`
	NullableGetter   *bool  `yaml:"nullable-getter"`
}

// Detect reads pubspec.yaml and l10n.yaml under root. Missing files yield
// gen-l10n defaults; malformed files are errors.
func Detect(root string) (*Project, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	p := &Project{
		Root:             absRoot,
		Name:             filepath.Base(absRoot),
		ARBDir:           DefaultARBDir,
		TemplateARB:      DefaultTemplateARB,
		OutputClass:      extract.DefaultAccessorClass,
		OutputFile:       DefaultOutputFile,
		SyntheticPackage: true,
		NullableGetter:   true,
	}

	var ps pubspec
	found, err := readYAML(filepath.Join(absRoot, PubspecFileName), &ps)
	if err != nil {
		return nil, err
	}
	if found {
		if ps.Name != "" {
			p.Name = ps.Name
		}
		p.Version = ps.Version
		_, p.IsFlutter = ps.Dependencies["flutter"]
		_, p.HasLocalizations = ps.Dependencies["flutter_localizations"]
	}

	var lc l10nConfig
	found, err = readYAML(filepath.Join(absRoot, L10nFileName), &lc)
	if err != nil {
		return nil, err
	}
	p.HasL10nConfig = found
	if found {
		if lc.ARBDir != "" {
			p.ARBDir = filepath.ToSlash(filepath.Clean(lc.ARBDir))
		}
		if lc.TemplateARBFile != "" {
			p.TemplateARB = lc.TemplateARBFile
		}
		if lc.OutputClass != "" {
			p.OutputClass = lc.OutputClass
		}
		if lc.OutputFile != "" {
			p.OutputFile = lc.OutputFile
		}
		if lc.OutputDir != "" {
			p.OutputDir = filepath.ToSlash(filepath.Clean(lc.OutputDir))
		}
		if lc.SyntheticPackage != nil {
			p.SyntheticPackage = *lc.SyntheticPackage
		}
		if lc.NullableGetter != nil {
			p.NullableGetter = *lc.NullableGetter
		}
	} else if found := extract.FindARB(absRoot); found != "" {
		p.arbPath = found
	}

	return p, nil
}

func readYAML(path string, out interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return true, nil
}

// ARBPath returns the absolute path of the template resource file.
func (p *Project) ARBPath() string {
	if p.arbPath != "" {
		return p.arbPath
	}
	return filepath.Join(p.Root, filepath.FromSlash(p.ARBDir), p.TemplateARB)
}

// ImportLine returns the Dart import that brings the accessor class into
// scope.
func (p *Project) ImportLine() string {
	if p.SyntheticPackage && p.OutputDir == "" {
		return fmt.Sprintf("import 'package:flutter_gen/gen_l10n/%s';", p.OutputFile)
	}
	dir := p.OutputDir
	if dir == "" {
		dir = p.ARBDir
	}
	dir = strings.TrimPrefix(strings.TrimPrefix(dir, "./"), "lib/")
	if dir == "lib" || dir == "." || dir == "" {
		return fmt.Sprintf("import 'package:%s/%s';", p.Name, p.OutputFile)
	}
	return fmt.Sprintf("import 'package:%s/%s/%s';", p.Name, dir, p.OutputFile)
}

// SourceDirs returns the directories scanned by default: lib/ when it
// exists, otherwise the project root.
func (p *Project) SourceDirs() []string {
	lib := filepath.Join(p.Root, "lib")
	if info, err := os.Stat(lib); err == nil && info.IsDir() {
		return []string{lib}
	}
	return []string{p.Root}
}
