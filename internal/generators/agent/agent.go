// Package agent renders agent persona files: markdown documents with YAML
// frontmatter under generated/.opencode/agent/.
package agent

import (
	"fmt"
	"path/filepath"

	"github.com/ogcontrol/ogc/internal/config"
	"github.com/ogcontrol/ogc/internal/frontmatter"
	"github.com/ogcontrol/ogc/internal/generator"
	"github.com/ogcontrol/ogc/internal/output"
	"github.com/ogcontrol/ogc/internal/templates"
)

const generatorVersion = "1.0.0"

// Spec identifies one built-in agent.
type Spec struct {
	ID          string
	Name        string
	Description string
	// TemplateDir is the agent's multi-part builtin template directory
	// (base.md plus per-language parts). Empty for agents whose default
	// template comes from template_file.
	TemplateDir string
	// Languages lists the lang values the agent's builtin templates cover.
	Languages []string
	// IncludeBaseByDefault makes the base part opt-out instead of opt-in.
	IncludeBaseByDefault bool
}

// Catalog lists the built-in agents. Each entry reads its settings from
// [opencode.agents.<id>] and writes generated/.opencode/agent/<id>.md.
var Catalog = []Spec{
	{
		ID:                   "blockchain",
		Name:                 "Blockchain Agent",
		Description:          "Smart-contract and chain-integration work.",
		TemplateDir:          "control/agents/subagents/blockchain-agent",
		Languages:            []string{"elixir", "typescript"},
		IncludeBaseByDefault: true,
	},
	{ID: "code-pattern-analyst", Name: "Code Pattern Analyst", Description: "Finds and documents recurring patterns in the codebase."},
	{ID: "codebase", Name: "Codebase Agent", Description: "Answers questions about repository structure and history."},
	{ID: "coder", Name: "Coder Agent", Description: "Implements features and fixes."},
	{ID: "debugger", Name: "Debugger Agent", Description: "Diagnoses failures and proposes fixes."},
	{ID: "documentation", Name: "Documentation Agent", Description: "Writes and maintains project documentation."},
	{ID: "reviewer", Name: "Reviewer Agent", Description: "Reviews changes before they land."},
	{ID: "task-manager", Name: "Task Manager Agent", Description: "Coordinates work across agents."},
	{ID: "tester", Name: "Tester Agent", Description: "Designs and runs test plans."},
}

// Reserved config keys that drive generation machinery and never appear in
// the rendered frontmatter.
var reservedKeys = map[string]struct{}{
	"enabled":                   {},
	"template":                  {},
	"template_file":             {},
	"additional_files":          {},
	"additional_files_strategy": {},
	"lang":                      {},
	"include_base_template":     {},
}

// Generator renders one agent file from its config table.
type Generator struct {
	generator.Base
	spec Spec
}

// Register installs a factory for every catalog entry.
func Register(reg *generator.Registry) {
	if reg == nil {
		return
	}
	for _, spec := range Catalog {
		spec := spec
		reg.MustRegister(spec.ID, func() (generator.Generator, error) {
			return New(spec), nil
		})
	}
}

// New configures a generator for the given agent spec.
func New(spec Spec) *Generator {
	return &Generator{
		Base: generator.NewBase(generator.Info{
			ID:          spec.ID,
			Name:        spec.Name,
			Description: spec.Description,
			Kind:        generator.KindAgent,
			Version:     generatorVersion,
		}),
		spec: spec,
	}
}

// Enabled reports whether the agent has a config table that allows it to run.
func (g *Generator) Enabled(ctx *generator.Context) (bool, string) {
	table, ok := ctx.Config.Agent(g.spec.ID)
	if !ok {
		return false, "no configuration found"
	}
	if !table.Enabled() {
		return false, "disabled (enabled = false)"
	}
	return true, ""
}

// Generate resolves the agent template, builds frontmatter from the config
// table, and writes the agent file.
func (g *Generator) Generate(ctx *generator.Context) (generator.Result, error) {
	if ok, reason := g.Enabled(ctx); !ok {
		return generator.Result{Status: generator.StatusSkipped, Message: reason}, nil
	}
	table, _ := ctx.Config.Agent(g.spec.ID)

	src := templates.FromTable(table, "")
	src.BaseDir = g.spec.TemplateDir
	src.SupportedLanguages = g.spec.Languages
	if g.spec.IncludeBaseByDefault && !table.Has("include_base_template") {
		src.IncludeBase = true
	}
	content, warnings, err := src.Resolve(ctx.Config)
	if err != nil {
		return generator.Result{Status: generator.StatusFailed}, fmt.Errorf("%s: %w", g.spec.ID, err)
	}

	body := frontmatter.Strip([]byte(content))
	fields := FrontmatterFields(table)

	var rendered []byte
	if len(fields) == 0 {
		rendered = body
	} else {
		rendered, err = frontmatter.Render(fields, body)
		if err != nil {
			return generator.Result{Status: generator.StatusFailed}, fmt.Errorf("%s: %w", g.spec.ID, err)
		}
	}

	path := filepath.Join(ctx.Config.AgentDir(), g.spec.ID+".md")
	if err := output.WriteFile(path, rendered); err != nil {
		return generator.Result{Status: generator.StatusFailed}, fmt.Errorf("%s: %w", g.spec.ID, err)
	}
	ctx.Logf("agent/%s: wrote %s", g.spec.ID, path)
	return generator.Result{
		Status:   generator.StatusGenerated,
		Message:  fmt.Sprintf("wrote %s", path),
		Path:     path,
		Warnings: warnings,
	}, nil
}

// FrontmatterFields extracts the agent frontmatter from a settings table:
// every key except the reserved template machinery, with the permissions
// block reshaped for the agent file format.
func FrontmatterFields(table config.Table) map[string]any {
	fields := map[string]any{}
	for key, value := range table {
		if _, reserved := reservedKeys[key]; reserved {
			continue
		}
		if key == "permissions" {
			if perms := formatPermissions(value); len(perms) > 0 {
				fields[key] = perms
			}
			continue
		}
		fields[key] = value
	}
	return fields
}

// formatPermissions maps the config permission tables onto the agent schema:
// tools stays tools, bash_rules becomes bash, edit_rules becomes edit.
// Empty groups are omitted rather than rendered as empty maps.
func formatPermissions(value any) map[string]any {
	raw, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	formatted := map[string]any{}
	if tools, ok := raw["tools"]; ok && !emptyGroup(tools) {
		formatted["tools"] = tools
	}
	if bash, ok := raw["bash_rules"]; ok && !emptyGroup(bash) {
		formatted["bash"] = bash
	}
	if edit, ok := raw["edit_rules"]; ok && !emptyGroup(edit) {
		formatted["edit"] = edit
	}
	return formatted
}

func emptyGroup(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case map[string]any:
		return len(v) == 0
	case config.Table:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}
