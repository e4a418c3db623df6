// Package templates resolves the prompt template for a generator: a main
// template (built-in default or user-supplied file) optionally combined with
// additional files under a merge or replace strategy. Generators with
// multi-part builtin templates compose a base document with a per-language
// part selected by the lang config key.
package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ogcontrol/ogc/internal/config"
)

// Template type and strategy values accepted in config.
const (
	TypeDefault = "default"
	TypeCustom  = "custom"

	StrategyMerge   = "merge"
	StrategyReplace = "replace"
)

// baseTemplateName is the shared part of a multi-part builtin template.
const baseTemplateName = "base.md"

// Source describes where a generator's template content comes from.
type Source struct {
	// Type selects the built-in default or a custom file.
	Type string
	// TemplateFile is the user-configured template path. Required for
	// custom templates, and for default templates without a builtin path.
	TemplateFile string
	// DefaultPath is the generator's builtin template location, relative to
	// the project root. Empty when the generator has no builtin.
	DefaultPath string
	// BaseDir is the generator's multi-part builtin template directory,
	// holding base.md plus per-language <lang>.md parts. When set it takes
	// the place of DefaultPath for default templates without a
	// template_file.
	BaseDir string
	// Lang selects the <lang>.md part under BaseDir.
	Lang string
	// IncludeBase prepends BaseDir/base.md to the composed template.
	IncludeBase bool
	// SupportedLanguages restricts Lang. Empty allows any value.
	SupportedLanguages []string
	// AdditionalFiles are extra documents appended (merge) or substituted
	// (replace) for the main template.
	AdditionalFiles []string
	// Strategy is merge or replace.
	Strategy string
}

// FromTable reads the shared template keys out of a settings table.
func FromTable(table config.Table, defaultPath string) Source {
	return Source{
		Type:            table.GetString("template", TypeDefault),
		TemplateFile:    table.GetString("template_file", ""),
		DefaultPath:     defaultPath,
		Lang:            table.GetString("lang", ""),
		IncludeBase:     table.GetBool("include_base_template", false),
		AdditionalFiles: table.GetStringList("additional_files"),
		Strategy:        table.GetString("additional_files_strategy", StrategyMerge),
	}
}

// Normalized returns a trimmed copy of the source.
func (s Source) Normalized() Source {
	clone := Source{
		Type:         strings.TrimSpace(strings.ToLower(s.Type)),
		TemplateFile: strings.TrimSpace(s.TemplateFile),
		DefaultPath:  strings.TrimSpace(s.DefaultPath),
		BaseDir:      strings.TrimSpace(s.BaseDir),
		Lang:         strings.TrimSpace(strings.ToLower(s.Lang)),
		IncludeBase:  s.IncludeBase,
		Strategy:     strings.TrimSpace(strings.ToLower(s.Strategy)),
	}
	clone.SupportedLanguages = append(clone.SupportedLanguages, s.SupportedLanguages...)
	for _, file := range s.AdditionalFiles {
		trimmed := strings.TrimSpace(file)
		if trimmed == "" {
			continue
		}
		clone.AdditionalFiles = append(clone.AdditionalFiles, trimmed)
	}
	if clone.Type == "" {
		clone.Type = TypeDefault
	}
	if clone.Strategy == "" {
		clone.Strategy = StrategyMerge
	}
	return clone
}

// Validate checks the source before any file IO happens.
func (s Source) Validate() error {
	normalized := s.Normalized()
	if normalized.Strategy != StrategyMerge && normalized.Strategy != StrategyReplace {
		return fmt.Errorf("templates: invalid additional_files_strategy %q (must be %q or %q)", normalized.Strategy, StrategyMerge, StrategyReplace)
	}
	if normalized.Lang != "" && len(normalized.SupportedLanguages) > 0 && !containsString(normalized.SupportedLanguages, normalized.Lang) {
		return fmt.Errorf("templates: unsupported language %q (supported: %s)", normalized.Lang, strings.Join(normalized.SupportedLanguages, ", "))
	}
	switch normalized.Type {
	case TypeDefault:
		if normalized.DefaultPath == "" && normalized.TemplateFile == "" && normalized.BaseDir == "" && !normalized.replacesMain() {
			return fmt.Errorf("templates: default template specified but template_file is empty")
		}
	case TypeCustom:
		if normalized.TemplateFile == "" {
			return fmt.Errorf("templates: custom template specified but template_file is empty")
		}
	default:
		return fmt.Errorf("templates: unknown template type %q", normalized.Type)
	}
	return nil
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func (s Source) replacesMain() bool {
	return s.Strategy == StrategyReplace && len(s.AdditionalFiles) > 0
}

// composesParts reports whether the main template is built from BaseDir
// parts instead of a single file.
func (s Source) composesParts() bool {
	return s.Type == TypeDefault && s.BaseDir != "" && s.TemplateFile == ""
}

// Resolve loads and combines the template content for the source, returning
// the content plus non-fatal warnings (missing optional parts). Relative
// paths resolve against the project root.
func (s Source) Resolve(cfg *config.Config) (string, []string, error) {
	normalized := s.Normalized()
	if err := normalized.Validate(); err != nil {
		return "", nil, err
	}

	var main string
	var warnings []string
	if !normalized.replacesMain() {
		if normalized.composesParts() {
			content, warns, err := normalized.resolveParts(cfg)
			if err != nil {
				return "", nil, err
			}
			main = content
			warnings = warns
		} else {
			content, err := readTemplateFile(cfg.ResolvePath(normalized.mainPath()))
			if err != nil {
				return "", nil, err
			}
			main = content
		}
	}

	additional, err := readAdditionalFiles(cfg, normalized.AdditionalFiles)
	if err != nil {
		return "", nil, err
	}

	if normalized.replacesMain() {
		return additional, warnings, nil
	}
	if additional != "" {
		return main + "\n\n# Additional Files\n\n" + additional, warnings, nil
	}
	return main, warnings, nil
}

// resolveParts composes the multi-part builtin template: the base part when
// IncludeBase is set, then the per-language part. Missing parts warn; when
// nothing was selected or found, the base file is the fallback and its
// absence is an error.
func (s Source) resolveParts(cfg *config.Config) (string, []string, error) {
	basePath := cfg.ResolvePath(filepath.Join(s.BaseDir, baseTemplateName))

	var parts, warnings []string
	if s.IncludeBase {
		content, found, err := readOptionalFile(basePath)
		if err != nil {
			return "", nil, err
		}
		if found {
			parts = append(parts, content)
		} else {
			warnings = append(warnings, fmt.Sprintf("base template not found: %s", basePath))
		}
	}
	if s.Lang != "" {
		langPath := cfg.ResolvePath(filepath.Join(s.BaseDir, s.Lang+".md"))
		content, found, err := readOptionalFile(langPath)
		if err != nil {
			return "", nil, err
		}
		if found {
			parts = append(parts, content)
		} else {
			warnings = append(warnings, fmt.Sprintf("language template not found: %s", langPath))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "\n\n"), warnings, nil
	}

	content, found, err := readOptionalFile(basePath)
	if err != nil {
		return "", nil, err
	}
	if !found {
		return "", nil, fmt.Errorf("templates: no template files found, base template missing: %s", basePath)
	}
	return content, warnings, nil
}

func (s Source) mainPath() string {
	if s.Type == TypeCustom {
		return s.TemplateFile
	}
	if s.DefaultPath != "" && s.TemplateFile == "" {
		return s.DefaultPath
	}
	return s.TemplateFile
}

func readTemplateFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("templates: template file not found: %s", path)
		}
		return "", fmt.Errorf("templates: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("templates: %s is a directory", path)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("templates: template file is empty: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("templates: read %s: %w", path, err)
	}
	return string(data), nil
}

func readOptionalFile(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("templates: read %s: %w", path, err)
	}
	return string(data), true, nil
}

func readAdditionalFiles(cfg *config.Config, files []string) (string, error) {
	if len(files) == 0 {
		return "", nil
	}
	var sections []string
	for _, file := range files {
		path := cfg.ResolvePath(file)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("templates: additional file not found: %s", path)
			}
			return "", fmt.Errorf("templates: read additional file %s: %w", path, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			continue
		}
		sections = append(sections, fmt.Sprintf("## %s\n\n%s", filepath.Base(path), string(data)))
	}
	return strings.Join(sections, "\n\n"), nil
}
