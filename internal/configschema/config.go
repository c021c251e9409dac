// Package configschema loads and validates genex.yaml.
//
// Overview:
//   - Responsibility: Parse genex.yaml, fill defaults, apply GENEX_*
//     environment overrides, validate the result
//   - Key Types: Config, Diagnostics
//   - Concurrency Model: Immutable configuration after loading
//   - Error Semantics: Problems are collected as diagnostics; Diagnostics.Err
//     turns errors into one INVALID_CONFIG error
//   - Performance Notes: Single pass over the file and the environment
//
// Usage:
//
//	config, diags := configschema.LoadOrDefault("genex.yaml")
//	if err := diags.Err(); err != nil {
//	    return err
//	}
package configschema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"go.eggybyte.com/genex/core/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "genex.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GENEX_"

// Config is the genex project configuration.
//
// Field defaults come from `default` tags and environment overrides from
// `env` tags, read as EnvPrefix+tag.
type Config struct {
	ConfigVersion string `yaml:"config_version" default:"1.0" validate:"oneof=1.0"`
	// SourceRoot is the directory name that marks the Java source root.
	SourceRoot string `yaml:"source_root" env:"SOURCE_ROOT" default:"java" validate:"required,excludesall=/\\"`
	// BaseDir is the source directory the default output dir is built from.
	BaseDir string `yaml:"base_dir" env:"BASE_DIR" default:"src/main/java" validate:"required"`
	// GroupID overrides the groupId read from the descriptor.
	GroupID string `yaml:"group_id" env:"GROUP_ID" validate:"omitempty,java_package"`
	// Descriptor is the path of the Maven descriptor.
	Descriptor string `yaml:"descriptor" env:"DESCRIPTOR" default:"pom.xml" validate:"required"`
	// TemplatesDir holds templates that replace the embedded ones.
	TemplatesDir       string         `yaml:"templates_dir" env:"TEMPLATES_DIR"`
	DedupeDependencies bool           `yaml:"dedupe_dependencies" env:"DEDUPE_DEPENDENCIES"`
	Generate           GenerateConfig `yaml:"generate"`
	Versions           VersionsConfig `yaml:"versions"`
}

// GenerateConfig holds the defaults of the generate command.
type GenerateConfig struct {
	Repository bool `yaml:"repository" env:"GENERATE_REPOSITORY" default:"true"`
	Mapper     bool `yaml:"mapper" env:"GENERATE_MAPPER" default:"true"`
	// Lombok is auto, true or false. auto follows the descriptor.
	Lombok string `yaml:"lombok" env:"GENERATE_LOMBOK" default:"auto" validate:"oneof=auto true false"`
}

// VersionsConfig holds the versions written by add-lombok-mapstruct.
type VersionsConfig struct {
	Lombok                 string `yaml:"lombok" env:"LOMBOK_VERSION" default:"1.18.30" validate:"required"`
	Mapstruct              string `yaml:"mapstruct" env:"MAPSTRUCT_VERSION" default:"1.5.5.Final" validate:"required"`
	LombokMapstructBinding string `yaml:"lombok_mapstruct_binding" env:"LOMBOK_MAPSTRUCT_BINDING_VERSION" default:"0.2.0" validate:"required"`
	CompilerPlugin         string `yaml:"compiler_plugin" env:"COMPILER_PLUGIN_VERSION" default:"3.11.0" validate:"required"`
}

// OutputDir returns the default generation directory for groupID:
// BaseDir followed by groupID with dots turned into path separators.
func (c *Config) OutputDir(groupID string) string {
	if groupID == "" {
		return filepath.Clean(c.BaseDir)
	}
	return filepath.Join(c.BaseDir, filepath.FromSlash(strings.ReplaceAll(groupID, ".", "/")))
}

// Diagnostic represents a configuration issue.
type Diagnostic struct {
	Severity   DiagnosticSeverity `json:"severity"`
	Message    string             `json:"message"`
	Path       string             `json:"path,omitempty"`
	Suggestion string             `json:"suggestion,omitempty"`
}

// DiagnosticSeverity represents the severity of a diagnostic.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
	SeverityInfo    DiagnosticSeverity = "info"
)

// Diagnostics collects configuration issues.
type Diagnostics struct {
	items []Diagnostic
}

// NewDiagnostics creates an empty collection.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{items: make([]Diagnostic, 0)}
}

// Add appends a diagnostic.
func (d *Diagnostics) Add(severity DiagnosticSeverity, message, path, suggestion string) {
	d.items = append(d.items, Diagnostic{
		Severity:   severity,
		Message:    message,
		Path:       path,
		Suggestion: suggestion,
	})
}

// AddError appends an error diagnostic.
func (d *Diagnostics) AddError(message, path, suggestion string) {
	d.Add(SeverityError, message, path, suggestion)
}

// AddWarning appends a warning diagnostic.
func (d *Diagnostics) AddWarning(message, path, suggestion string) {
	d.Add(SeverityWarning, message, path, suggestion)
}

// AddInfo appends an informational diagnostic.
func (d *Diagnostics) AddInfo(message, path, suggestion string) {
	d.Add(SeverityInfo, message, path, suggestion)
}

// HasErrors reports whether any error diagnostic was recorded.
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.items {
		if item.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Items returns a copy of all diagnostics.
func (d *Diagnostics) Items() []Diagnostic {
	result := make([]Diagnostic, len(d.items))
	copy(result, d.items)
	return result
}

// Err returns an INVALID_CONFIG error listing every error diagnostic, or nil.
func (d *Diagnostics) Err() error {
	var msgs []string
	for _, item := range d.items {
		if item.Severity != SeverityError {
			continue
		}
		if item.Path != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s", item.Path, item.Message))
		} else {
			msgs = append(msgs, item.Message)
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.New(errors.CodeInvalidConfig, strings.Join(msgs, "; "))
}

// Default returns the configuration used when no file exists, with
// environment overrides applied.
func Default() (*Config, *Diagnostics) {
	diags := NewDiagnostics()
	config := &Config{}
	if err := applyDefaults(config); err != nil {
		diags.AddError(err.Error(), "", "")
		return nil, diags
	}
	return finish(config, diags)
}

// Load reads path, applies defaults and environment overrides, and
// validates the result. A missing file is an error.
func Load(path string) (*Config, *Diagnostics) {
	diags := NewDiagnostics()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		diags.AddError("Configuration file not found", path, "Create genex.yaml or drop --config")
		return nil, diags
	}

	data, err := os.ReadFile(path)
	if err != nil {
		diags.AddError(fmt.Sprintf("Failed to read configuration file: %v", err), path, "Check file permissions")
		return nil, diags
	}

	config := &Config{}
	if err := applyDefaults(config); err != nil {
		diags.AddError(err.Error(), "", "")
		return nil, diags
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		diags.AddError(fmt.Sprintf("Failed to parse YAML: %v", err), path, "Check YAML syntax")
		return nil, diags
	}

	return finish(config, diags)
}

// LoadOrDefault behaves like Load but falls back to Default when path does
// not exist.
func LoadOrDefault(path string) (*Config, *Diagnostics) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		config, diags := Default()
		diags.AddInfo("Configuration file not found, using defaults", path, "")
		return config, diags
	}
	return Load(path)
}

func finish(config *Config, diags *Diagnostics) (*Config, *Diagnostics) {
	if err := bindEnv(envSnapshot(EnvPrefix), config); err != nil {
		diags.AddError(fmt.Sprintf("Invalid environment override: %v", err), "", "Check GENEX_* variables")
		return nil, diags
	}
	validateConfig(config, diags)
	return config, diags
}
