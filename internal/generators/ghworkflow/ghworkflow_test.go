package ghworkflow

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ogcontrol/ogc/internal/config"
	"github.com/ogcontrol/ogc/internal/generator"
)

func contextFor(t *testing.T, configTOML string) *generator.Context {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(path, []byte(configTOML), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return generator.NewContext(cfg, nil)
}

func TestRenderEmbedsModelUnchanged(t *testing.T) {
	ctx := contextFor(t, strings.TrimSpace(`
[gh.workflow]
env_key = "ANTHROPIC_API_KEY"
model = "anthropic/claude-sonnet-4-20250514"
`))
	rendered, settings, err := Render(ctx.Config)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(rendered, "model: anthropic/claude-sonnet-4-20250514\n") {
		t.Fatalf("model missing from output:\n%s", rendered)
	}
	if strings.Contains(rendered, "{model}") || strings.Contains(rendered, "{env_key}") {
		t.Fatal("placeholder left in output")
	}
	if !strings.Contains(rendered, "ANTHROPIC_API_KEY: ${{ secrets.ANTHROPIC_API_KEY }}") {
		t.Fatalf("env block missing:\n%s", rendered)
	}
	if len(settings.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", settings.Warnings)
	}
}

func TestRenderDefaultsWithWarnings(t *testing.T) {
	ctx := contextFor(t, "")
	rendered, settings, err := Render(ctx.Config)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if settings.EnvKey != config.DefaultEnvKey {
		t.Fatalf("env key = %q", settings.EnvKey)
	}
	if settings.Model != config.DefaultModel {
		t.Fatalf("model = %q", settings.Model)
	}
	if len(settings.Warnings) != 2 {
		t.Fatalf("warnings = %v", settings.Warnings)
	}
	if !strings.Contains(rendered, config.DefaultEnvKey) {
		t.Fatal("default env key missing from output")
	}
}

func TestRenderRejectsModelWithoutSlash(t *testing.T) {
	ctx := contextFor(t, strings.TrimSpace(`
[gh.workflow]
model = "claude-sonnet-4-20250514"
`))
	_, _, err := Render(ctx.Config)
	if !errors.Is(err, ErrInvalidModel) {
		t.Fatalf("expected ErrInvalidModel, got %v", err)
	}
}

func TestRenderRejectsEmptyValue(t *testing.T) {
	ctx := contextFor(t, strings.TrimSpace(`
[gh.workflow]
env_key = "  "
`))
	_, _, err := Render(ctx.Config)
	if err == nil || !strings.Contains(err.Error(), "empty value") {
		t.Fatalf("expected empty-value error, got %v", err)
	}
}

func TestRenderWarnsOnSuspiciousEnvKey(t *testing.T) {
	ctx := contextFor(t, strings.TrimSpace(`
[gh.workflow]
env_key = "MY KEY!"
model = "anthropic/claude-sonnet-4-20250514"
`))
	_, settings, err := Render(ctx.Config)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if len(settings.Warnings) != 1 || !strings.Contains(settings.Warnings[0], "special characters") {
		t.Fatalf("warnings = %v", settings.Warnings)
	}
}

func TestGenerateWritesWorkflowFile(t *testing.T) {
	ctx := contextFor(t, strings.TrimSpace(`
[gh.workflow]
env_key = "OPENCODE_KEY"
model = "openai/gpt-5"
`))
	gen := New()
	result, err := gen.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.Status != generator.StatusGenerated {
		t.Fatalf("status = %s", result.Status)
	}
	want := ctx.Config.WorkflowPath()
	if result.Path != want {
		t.Fatalf("path = %s, want %s", result.Path, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "OPENCODE_KEY: ${{ secrets.OPENCODE_KEY }}") {
		t.Fatalf("env key not substituted:\n%s", data)
	}
	if !strings.Contains(string(data), "model: openai/gpt-5\n") {
		t.Fatalf("model not substituted:\n%s", data)
	}
}

func TestGenerateFailureWritesNothing(t *testing.T) {
	ctx := contextFor(t, strings.TrimSpace(`
[gh.workflow]
model = "no-separator"
`))
	gen := New()
	result, err := gen.Generate(ctx)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if result.Status != generator.StatusFailed {
		t.Fatalf("status = %s", result.Status)
	}
	if _, statErr := os.Stat(ctx.Config.WorkflowPath()); !os.IsNotExist(statErr) {
		t.Fatal("workflow file must not exist after a validation failure")
	}
}

func TestGenerateIdempotent(t *testing.T) {
	ctx := contextFor(t, strings.TrimSpace(`
[gh.workflow]
env_key = "ANTHROPIC_API_KEY"
model = "anthropic/claude-sonnet-4-20250514"
`))
	gen := New()
	if _, err := gen.Generate(ctx); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(ctx.Config.WorkflowPath())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gen.Generate(ctx); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(ctx.Config.WorkflowPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("expected byte-identical output across runs")
	}
}

func TestGenerateWithOutputPathOverride(t *testing.T) {
	ctx := contextFor(t, strings.TrimSpace(`
[gh.workflow]
env_key = "ANTHROPIC_API_KEY"
model = "anthropic/claude-sonnet-4-20250514"
`))
	override := filepath.Join(ctx.Config.ProjectRoot, "custom-dir", "wf.yml")
	gen := New(WithOutputPath(override))
	result, err := gen.Generate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result.Path != override {
		t.Fatalf("path = %s, want %s", result.Path, override)
	}
	if _, err := os.Stat(override); err != nil {
		t.Fatalf("override file missing: %v", err)
	}
}
