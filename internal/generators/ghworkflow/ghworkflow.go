// Package ghworkflow renders the GitHub Actions workflow that lets
// repository owners trigger the coding agent from issue comments.
package ghworkflow

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/ogcontrol/ogc/internal/config"
	"github.com/ogcontrol/ogc/internal/generator"
	"github.com/ogcontrol/ogc/internal/output"
)

const (
	// ID is the registry identifier for this generator.
	ID = "gh-workflow"

	generatorVersion = "1.0.0"
)

// ErrInvalidModel reports a model string that is not provider/model shaped.
var ErrInvalidModel = errors.New("ghworkflow: invalid model format")

// workflowTemplate is the fixed workflow skeleton. The {env_key} and {model}
// tokens are the only substitution points; everything else, including the
// ${{ }} expressions, is emitted verbatim.
const workflowTemplate = `name: opencode

on:
  issue_comment:
    types: [created]

jobs:
  opencode:
    if: |
      (contains(github.event.comment.body, '/oc') ||
       contains(github.event.comment.body, '/opencode')) &&
      (github.event.comment.author_association == 'OWNER' ||
       github.event.comment.author_association == 'MEMBER')
    runs-on: ubuntu-latest
    permissions:
      id-token: write
      contents: write
      pull-requests: write
      issues: write
    steps:
      - name: Checkout repository
        uses: actions/checkout@v4
        with:
          fetch-depth: 1

      - name: Run opencode
        uses: sst/opencode/github@latest
        env:
          {env_key}: ${{ secrets.{env_key} }}
        with:
          model: {model}
`

// Settings holds the validated values substituted into the template.
type Settings struct {
	EnvKey string
	Model  string
	// Warnings collects non-fatal findings (defaults applied, suspicious
	// env key characters).
	Warnings []string
}

// LoadSettings extracts and validates the [gh.workflow] table, applying the
// documented defaults for missing keys.
func LoadSettings(cfg *config.Config) (Settings, error) {
	table := cfg.Workflow
	settings := Settings{
		EnvKey: config.DefaultEnvKey,
		Model:  config.DefaultModel,
	}

	if err := checkEmptyValues(table); err != nil {
		return Settings{}, err
	}

	if !table.Has("env_key") {
		settings.Warnings = append(settings.Warnings, fmt.Sprintf("missing gh.workflow.env_key - using default: %s", config.DefaultEnvKey))
	} else {
		settings.EnvKey = table.GetString("env_key", config.DefaultEnvKey)
		if !isEnvKeyClean(settings.EnvKey) {
			settings.Warnings = append(settings.Warnings, fmt.Sprintf("environment key %q contains special characters - ensure it is a valid environment variable name", settings.EnvKey))
		}
	}

	if !table.Has("model") {
		settings.Warnings = append(settings.Warnings, fmt.Sprintf("missing gh.workflow.model - using default: %s", config.DefaultModel))
	} else {
		settings.Model = table.GetString("model", config.DefaultModel)
		if !strings.Contains(settings.Model, "/") {
			return Settings{}, fmt.Errorf("%w: %q - expected provider/model (e.g. %q)", ErrInvalidModel, settings.Model, config.DefaultModel)
		}
	}

	return settings, nil
}

// Render produces the final workflow document for the configuration.
// Validation failures return before anything is rendered.
func Render(cfg *config.Config) (string, Settings, error) {
	settings, err := LoadSettings(cfg)
	if err != nil {
		return "", Settings{}, err
	}
	replacer := strings.NewReplacer(
		"{env_key}", settings.EnvKey,
		"{model}", settings.Model,
	)
	return replacer.Replace(workflowTemplate), settings, nil
}

func checkEmptyValues(table config.Table) error {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if s, ok := table[key].(string); ok && strings.TrimSpace(s) == "" {
			return fmt.Errorf("ghworkflow: gh.workflow.%s has an empty value", key)
		}
	}
	return nil
}

func isEnvKeyClean(key string) bool {
	for _, r := range key {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			continue
		}
		return false
	}
	return key != ""
}

// Generator writes the workflow file during an init run.
type Generator struct {
	generator.Base
	outputPath string
}

// Option customizes the workflow generator.
type Option func(*Generator)

// WithOutputPath overrides the default output location.
func WithOutputPath(path string) Option {
	return func(g *Generator) {
		if strings.TrimSpace(path) != "" {
			g.outputPath = path
		}
	}
}

// Register installs the workflow generator factory.
func Register(reg *generator.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(ID, func() (generator.Generator, error) {
		return New(), nil
	})
}

// New configures the workflow generator.
func New(opts ...Option) *Generator {
	gen := &Generator{
		Base: generator.NewBase(generator.Info{
			ID:          ID,
			Name:        "GitHub Workflow",
			Description: "Renders the opencode issue-comment workflow.",
			Kind:        generator.KindGitHub,
			Version:     generatorVersion,
		}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(gen)
		}
	}
	return gen
}

// Enabled always allows the workflow generator: missing keys fall back to
// the documented defaults.
func (g *Generator) Enabled(*generator.Context) (bool, string) {
	return true, ""
}

// Generate validates the workflow settings, renders the document, and writes
// it atomically. A validation failure writes nothing.
func (g *Generator) Generate(ctx *generator.Context) (generator.Result, error) {
	rendered, settings, err := Render(ctx.Config)
	if err != nil {
		return generator.Result{Status: generator.StatusFailed}, err
	}
	path := g.outputPath
	if path == "" {
		path = ctx.Config.WorkflowPath()
	}
	if err := output.WriteFile(path, []byte(rendered)); err != nil {
		return generator.Result{Status: generator.StatusFailed}, err
	}
	ctx.Logf("%s: wrote %s (model %s)", ID, path, settings.Model)
	return generator.Result{
		Status:   generator.StatusGenerated,
		Message:  fmt.Sprintf("wrote %s", path),
		Path:     path,
		Warnings: settings.Warnings,
	}, nil
}
