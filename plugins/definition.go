package plugins

import (
	"fmt"
	"strings"

	"github.com/ogcontrol/ogc/internal/generator"
	"github.com/ogcontrol/ogc/internal/templates"
)

// CustomDefinition describes a user-supplied generator loaded from YAML.
//
// The struct mirrors the on-disk schema under custom/*.yaml and is
// intentionally narrow so definitions can be validated before they are wired
// into the registry.
type CustomDefinition struct {
	ID              string         `json:"id" yaml:"id"`
	Kind            string         `json:"kind" yaml:"kind"`
	Name            string         `json:"name,omitempty" yaml:"name,omitempty"`
	Description     string         `json:"description,omitempty" yaml:"description,omitempty"`
	TemplateFile    string         `json:"template_file" yaml:"template_file"`
	AdditionalFiles []string       `json:"additional_files,omitempty" yaml:"additional_files,omitempty"`
	Strategy        string         `json:"additional_files_strategy,omitempty" yaml:"additional_files_strategy,omitempty"`
	Frontmatter     map[string]any `json:"frontmatter,omitempty" yaml:"frontmatter,omitempty"`
}

// Normalized returns a trimmed copy of the definition.
func (def CustomDefinition) Normalized() CustomDefinition {
	clone := CustomDefinition{
		ID:           strings.TrimSpace(def.ID),
		Kind:         strings.ToLower(strings.TrimSpace(def.Kind)),
		Name:         strings.TrimSpace(def.Name),
		Description:  strings.TrimSpace(def.Description),
		TemplateFile: strings.TrimSpace(def.TemplateFile),
		Strategy:     strings.ToLower(strings.TrimSpace(def.Strategy)),
	}
	for _, file := range def.AdditionalFiles {
		trimmed := strings.TrimSpace(file)
		if trimmed == "" {
			continue
		}
		clone.AdditionalFiles = append(clone.AdditionalFiles, trimmed)
	}
	if len(def.Frontmatter) > 0 {
		clone.Frontmatter = make(map[string]any, len(def.Frontmatter))
		for key, value := range def.Frontmatter {
			trimmed := strings.TrimSpace(key)
			if trimmed == "" {
				continue
			}
			clone.Frontmatter[trimmed] = value
		}
	}
	return clone
}

// Validate ensures the definition is well-formed.
func (def CustomDefinition) Validate() error {
	normalized := def.Normalized()
	if normalized.ID == "" {
		return fmt.Errorf("plugin: id is required")
	}
	if normalized.Kind != string(generator.KindAgent) && normalized.Kind != string(generator.KindCommand) {
		return fmt.Errorf("plugin %s: kind must be %q or %q", normalized.ID, generator.KindAgent, generator.KindCommand)
	}
	if normalized.TemplateFile == "" {
		return fmt.Errorf("plugin %s: template_file is required", normalized.ID)
	}
	if normalized.Strategy != "" && normalized.Strategy != templates.StrategyMerge && normalized.Strategy != templates.StrategyReplace {
		return fmt.Errorf("plugin %s: additional_files_strategy must be %q or %q", normalized.ID, templates.StrategyMerge, templates.StrategyReplace)
	}
	return nil
}

// GeneratorKind maps the definition's kind onto the registry kind.
func (def CustomDefinition) GeneratorKind() generator.Kind {
	return generator.Kind(def.Normalized().Kind)
}
