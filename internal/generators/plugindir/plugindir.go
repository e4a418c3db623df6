// Package plugindir scaffolds the generated/.opencode/plugin directory so
// plugin files dropped there survive version control.
package plugindir

import (
	"fmt"
	"path/filepath"

	"github.com/ogcontrol/ogc/internal/generator"
	"github.com/ogcontrol/ogc/internal/output"
)

const (
	// ID is the registry identifier for this generator.
	ID = "plugin-dir"

	generatorVersion = "1.0.0"
)

const gitkeepContent = "# This file ensures the plugin directory is tracked by git\n"

const readmeContent = `# Plugin Directory

This directory is intended for OpenCode agent plugins.

## Structure
- Place plugin files in this directory
- Subdirectories can be created for organized plugin categories
- The ` + "`.gitkeep`" + ` file ensures this directory is tracked by version control

## Usage
Plugins placed in this directory will be automatically discovered by the OpenCode agent system.
`

// Generator creates the plugin directory with its marker files.
type Generator struct {
	generator.Base
}

// Register installs the scaffold factory.
func Register(reg *generator.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(ID, func() (generator.Generator, error) {
		return New(), nil
	})
}

// New configures the scaffold generator.
func New() *Generator {
	return &Generator{
		Base: generator.NewBase(generator.Info{
			ID:          ID,
			Name:        "Plugin Directory",
			Description: "Scaffolds the .opencode/plugin directory.",
			Kind:        generator.KindScaffold,
			Version:     generatorVersion,
		}),
	}
}

// Enabled always allows the scaffold; it has no config table.
func (g *Generator) Enabled(*generator.Context) (bool, string) {
	return true, ""
}

// Generate creates the plugin directory, .gitkeep, and README.
func (g *Generator) Generate(ctx *generator.Context) (generator.Result, error) {
	dir := ctx.Config.PluginDir()
	if err := output.EnsureDir(dir); err != nil {
		return generator.Result{Status: generator.StatusFailed}, err
	}
	if err := output.WriteFile(filepath.Join(dir, ".gitkeep"), []byte(gitkeepContent)); err != nil {
		return generator.Result{Status: generator.StatusFailed}, err
	}
	if err := output.WriteFile(filepath.Join(dir, "README.md"), []byte(readmeContent)); err != nil {
		return generator.Result{Status: generator.StatusFailed}, err
	}
	ctx.Logf("%s: scaffolded %s", ID, dir)
	return generator.Result{
		Status:  generator.StatusGenerated,
		Message: fmt.Sprintf("scaffolded %s", dir),
		Path:    dir,
	}, nil
}
