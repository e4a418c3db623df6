package plugins

import (
	"fmt"
	"path/filepath"

	"github.com/ogcontrol/ogc/internal/frontmatter"
	"github.com/ogcontrol/ogc/internal/generator"
	"github.com/ogcontrol/ogc/internal/output"
	"github.com/ogcontrol/ogc/internal/templates"
)

const customVersion = "1.0.0"

// customGenerator renders one user-defined agent or command file.
type customGenerator struct {
	generator.Base
	def CustomDefinition
}

func newCustomGenerator(def CustomDefinition) (*customGenerator, error) {
	normalized := def.Normalized()
	if err := normalized.Validate(); err != nil {
		return nil, err
	}
	name := normalized.Name
	if name == "" {
		name = normalized.ID
	}
	return &customGenerator{
		Base: generator.NewBase(generator.Info{
			ID:          normalized.ID,
			Name:        name,
			Description: normalized.Description,
			Kind:        normalized.GeneratorKind(),
			Version:     customVersion,
		}),
		def: normalized,
	}, nil
}

// Enabled always allows custom generators: their presence on disk is the
// opt-in.
func (g *customGenerator) Enabled(*generator.Context) (bool, string) {
	return true, ""
}

// Generate renders the definition's template with its frontmatter map.
func (g *customGenerator) Generate(ctx *generator.Context) (generator.Result, error) {
	src := templates.Source{
		Type:            templates.TypeCustom,
		TemplateFile:    g.def.TemplateFile,
		AdditionalFiles: g.def.AdditionalFiles,
		Strategy:        g.def.Strategy,
	}
	content, warnings, err := src.Resolve(ctx.Config)
	if err != nil {
		return generator.Result{Status: generator.StatusFailed}, fmt.Errorf("plugin %s: %w", g.def.ID, err)
	}

	body := frontmatter.Strip([]byte(content))
	rendered := body
	if len(g.def.Frontmatter) > 0 {
		rendered, err = frontmatter.Render(g.def.Frontmatter, body)
		if err != nil {
			return generator.Result{Status: generator.StatusFailed}, fmt.Errorf("plugin %s: %w", g.def.ID, err)
		}
	}

	dir := ctx.Config.AgentDir()
	if g.def.GeneratorKind() == generator.KindCommand {
		dir = ctx.Config.CommandDir()
	}
	path := filepath.Join(dir, g.def.ID+".md")
	if err := output.WriteFile(path, rendered); err != nil {
		return generator.Result{Status: generator.StatusFailed}, fmt.Errorf("plugin %s: %w", g.def.ID, err)
	}
	ctx.Logf("plugin/%s: wrote %s", g.def.ID, path)
	return generator.Result{
		Status:   generator.StatusGenerated,
		Message:  fmt.Sprintf("wrote %s", path),
		Path:     path,
		Warnings: warnings,
	}, nil
}
