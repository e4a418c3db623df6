// Package command renders slash-command files: markdown documents with YAML
// frontmatter under generated/.opencode/command/.
package command

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

// Spec identifies one built-in command.
type Spec struct {
	ID          string
	Name        string
	Description string
	// DefaultTemplate is the builtin template path, relative to the project
	// root, used when the config selects the default template.
	DefaultTemplate string
	// TemplateDir is the builtin multi-part template directory (base.md
	// plus per-language parts) for commands with language variants.
	TemplateDir string
	// Languages lists the lang values the command's builtin templates cover.
	Languages []string
	// RequireGitVCS skips the command when the configured vcs is not git.
	RequireGitVCS bool
}

// languageVariants are the per-language builtin parts shipped for the
// multi-part commands.
var languageVariants = []string{"elixir", "kotlin", "typescript"}

// Catalog lists the built-in commands. Each entry reads its settings from
// [opencode.commands.<id>] and writes generated/.opencode/command/<id>.md.
var Catalog = []Spec{
	{ID: "clean", Name: "Clean Command", Description: "Clean command", TemplateDir: "control/commands/generic/clean", Languages: languageVariants},
	{ID: "commit", Name: "Commit Command", Description: "Commit command", DefaultTemplate: "control/commands/generic/git-commit.md", RequireGitVCS: true},
	{ID: "context", Name: "Context Command", Description: "Context command", DefaultTemplate: "control/commands/generic/context.md"},
	{ID: "optimizer", Name: "Optimizer Command", Description: "Optimizer command", DefaultTemplate: "control/commands/generic/optimizer.md"},
	{ID: "prompter", Name: "Prompter Command", Description: "Prompter command", DefaultTemplate: "control/commands/generic/prompter.md"},
	{ID: "test", Name: "Test Command", Description: "Test command", TemplateDir: "control/commands/generic/test", Languages: languageVariants},
	{ID: "worktrees", Name: "Worktrees Command", Description: "Worktrees command", DefaultTemplate: "control/commands/generic/worktrees.md"},
}

// Generator renders one command file from its config table.
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

// New configures a generator for the given command spec.
func New(spec Spec) *Generator {
	return &Generator{
		Base: generator.NewBase(generator.Info{
			ID:          spec.ID,
			Name:        spec.Name,
			Description: spec.Description,
			Kind:        generator.KindCommand,
			Version:     generatorVersion,
		}),
		spec: spec,
	}
}

// Enabled reports whether the command has a config table that allows it to
// run. Commands that require git are skipped for any other vcs value.
func (g *Generator) Enabled(ctx *generator.Context) (bool, string) {
	table, ok := ctx.Config.Command(g.spec.ID)
	if !ok {
		return false, "no configuration found"
	}
	if !table.Enabled() {
		return false, "disabled (enabled = false)"
	}
	if g.spec.RequireGitVCS {
		if vcs := table.GetString("vcs", "git"); vcs != "git" {
			return false, fmt.Sprintf("vcs %q is not supported (only git)", vcs)
		}
	}
	return true, ""
}

// Generate resolves the command template and writes the command file with
// description/agent/model frontmatter.
func (g *Generator) Generate(ctx *generator.Context) (generator.Result, error) {
	if ok, reason := g.Enabled(ctx); !ok {
		return generator.Result{Status: generator.StatusSkipped, Message: reason}, nil
	}
	table, _ := ctx.Config.Command(g.spec.ID)

	src := templates.FromTable(table, g.spec.DefaultTemplate)
	src.BaseDir = g.spec.TemplateDir
	src.SupportedLanguages = g.spec.Languages
	content, warnings, err := src.Resolve(ctx.Config)
	if err != nil {
		return generator.Result{Status: generator.StatusFailed}, fmt.Errorf("%s: %w", g.spec.ID, err)
	}

	body := frontmatter.Strip([]byte(content))
	fields := map[string]any{
		"description": table.GetString("description", g.spec.Description),
		"agent":       table.GetString("agent", config.DefaultCommandAgent),
		"model":       table.GetString("model", config.DefaultModel),
	}
	rendered, err := frontmatter.Render(fields, body)
	if err != nil {
		return generator.Result{Status: generator.StatusFailed}, fmt.Errorf("%s: %w", g.spec.ID, err)
	}

	path := filepath.Join(ctx.Config.CommandDir(), g.spec.ID+".md")
	if err := output.WriteFile(path, rendered); err != nil {
		return generator.Result{Status: generator.StatusFailed}, fmt.Errorf("%s: %w", g.spec.ID, err)
	}
	ctx.Logf("command/%s: wrote %s", g.spec.ID, path)
	return generator.Result{
		Status:   generator.StatusGenerated,
		Message:  fmt.Sprintf("wrote %s", path),
		Path:     path,
		Warnings: warnings,
	}, nil
}
