// Package config loads arbkit settings from .arbkit.yaml and the project.
//
// Settings are layered: built-in defaults, then user preferences, then
// values detected from the Flutter project (pubspec.yaml, l10n.yaml), then
// .arbkit.yaml, then ARBKIT_* environment variables (from the process or a
// .env file in the project root). Command-line flags are applied last by
// the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// ArbkitFile is the top-level .arbkit.yaml structure. Empty fields mean
// "not set" and fall through to the next layer.
type ArbkitFile struct {
	// Sources are directories to scan, relative to the project root.
	Sources []string `yaml:"sources,omitempty" validate:"dive,required"`
	// Extensions are source file extensions (default ".dart").
	Extensions []string `yaml:"extensions,omitempty" validate:"dive,startswith=."`
	// ARBFile is the template resource file, relative to the project root.
	ARBFile string `yaml:"arb_file,omitempty"`
	// KeyFormat is snake_case, camelCase or dot.case.
	KeyFormat string `yaml:"key_format,omitempty" validate:"omitempty,oneof=snake_case camelCase dot.case"`
	// Mode is the merge mode: dedupe or verbatim.
	Mode string `yaml:"mode,omitempty" validate:"omitempty,oneof=dedupe verbatim"`
	// AccessorClass overrides the generated localization class name.
	AccessorClass string `yaml:"accessor_class,omitempty" validate:"omitempty,alphanum"`
	// Import overrides the import line added to rewritten files.
	Import string `yaml:"import,omitempty"`
	// UseAccessor selects <Class>.of(context).key over tr("key").
	UseAccessor *bool `yaml:"use_accessor,omitempty"`
	// PreserveConst keeps const modifiers when tr("key") is emitted.
	PreserveConst bool `yaml:"preserve_const,omitempty"`
	// Workers bounds parallel file processing.
	Workers int `yaml:"workers,omitempty" validate:"gte=0,lte=256"`
	// BatchSize is the number of files per progress batch.
	BatchSize int `yaml:"batch_size,omitempty" validate:"gte=0"`
	// Exclude are extra exclude patterns (regular expressions).
	Exclude []string `yaml:"exclude,omitempty"`
	// AppendExcludes adds Exclude to the built-in rules instead of
	// replacing them.
	AppendExcludes bool `yaml:"append_excludes,omitempty"`
	// Constructors are additional display constructors.
	Constructors []string `yaml:"constructors,omitempty" validate:"dive,alphanum"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// FileName is the default config file name.
const FileName = ".arbkit.yaml"

// EnvFileName is the optional dotenv file read from the project root.
const EnvFileName = ".env"

// Environment variables that override file settings.
const (
	EnvKeyFormat     = "ARBKIT_KEY_FORMAT"
	EnvARBDir        = "ARBKIT_ARB_DIR"
	EnvWorkers       = "ARBKIT_WORKERS"
	EnvAccessorClass = "ARBKIT_ACCESSOR_CLASS"
)

var validate = validator.New()

// LoadFile loads and validates .arbkit.yaml from the given directory.
// Returns nil if no .arbkit.yaml exists.
func LoadFile(rootDir string) (*ArbkitFile, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var af ArbkitFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&af); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: unsupported key or invalid value: %w", path, err)
	}

	if err := af.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &af, nil
}

// Validate checks field values.
func (af *ArbkitFile) Validate() error {
	if err := validate.Struct(af); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from ARBKIT_* variables. Process environment
// takes precedence over the .env file in rootDir.
func (af *ArbkitFile) ApplyEnv(rootDir string) error {
	env, err := godotenv.Read(filepath.Join(rootDir, EnvFileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", EnvFileName, err)
	}
	if env == nil {
		env = make(map[string]string)
	}
	for _, k := range []string{EnvKeyFormat, EnvARBDir, EnvWorkers, EnvAccessorClass} {
		if v, ok := os.LookupEnv(k); ok && v != "" {
			env[k] = v
		}
	}

	if v := env[EnvKeyFormat]; v != "" {
		af.KeyFormat = v
	}
	if v := env[EnvAccessorClass]; v != "" {
		af.AccessorClass = v
	}
	if v := env[EnvARBDir]; v != "" {
		base := "app_en.arb"
		if af.ARBFile != "" {
			base = filepath.Base(af.ARBFile)
		}
		af.ARBFile = filepath.Join(v, base)
	}
	if v := env[EnvWorkers]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", EnvWorkers, v)
		}
		af.Workers = n
	}
	return af.Validate()
}
