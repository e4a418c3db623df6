package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfig = `[opencode.agents.coder]
template = "custom"
template_file = "templates/coder.md"
description = "Implements features and fixes"
model = "anthropic/claude-sonnet-4-20250514"

[opencode.commands.commit]
template = "custom"
template_file = "templates/commit.md"
description = "Create a well-formed commit"
vcs = "git"

[gh.workflow]
env_key = "ANTHROPIC_API_KEY"
model = "anthropic/claude-sonnet-4-20250514"
`

func writeTestProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"config.toml":         testConfig,
		"templates/coder.md":  "# Coder\n\nImplement the requested change.\n",
		"templates/commit.md": "# Commit\n\nWrite a conventional commit.\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestInitGeneratesConfiguredFiles(t *testing.T) {
	dir := writeTestProject(t)
	cfgPath := filepath.Join(dir, "config.toml")

	code, stdout, stderr := runCLI(t, "init", "--config", cfgPath)
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}

	for _, rel := range []string{
		"generated/.opencode/agent/coder.md",
		"generated/.opencode/command/commit.md",
		"generated/.opencode/plugin/.gitkeep",
		"generated/.github/workflows/opencode.yml",
	} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("expected %s to exist: %v", rel, err)
		}
	}
	for _, want := range []string{"coder", "commit", "gh-workflow", "generated"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("summary missing %q:\n%s", want, stdout)
		}
	}
	// Unconfigured catalog agents are skipped, not failed.
	if !strings.Contains(stdout, "failed 0") {
		t.Errorf("expected zero failures:\n%s", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, ".ogc", "ogc.log")); err != nil {
		t.Errorf("expected run log: %v", err)
	}
}

func TestInitReportsFailures(t *testing.T) {
	dir := writeTestProject(t)
	cfgPath := filepath.Join(dir, "config.toml")
	broken := testConfig + "\n[opencode.agents.tester]\ntemplate = \"custom\"\ntemplate_file = \"templates/missing.md\"\n"
	if err := os.WriteFile(cfgPath, []byte(broken), 0644); err != nil {
		t.Fatal(err)
	}

	code, stdout, _ := runCLI(t, "init", "--config", cfgPath)
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stdout, "tester") || !strings.Contains(stdout, "failed 1") {
		t.Fatalf("summary should report the failed agent:\n%s", stdout)
	}
}

func TestWorkflowToStdout(t *testing.T) {
	dir := writeTestProject(t)
	cfgPath := filepath.Join(dir, "config.toml")

	code, stdout, stderr := runCLI(t, "workflow", "--config", cfgPath, "--output", "-")
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{
		"name: opencode",
		"ANTHROPIC_API_KEY: ${{ secrets.ANTHROPIC_API_KEY }}",
		"model: anthropic/claude-sonnet-4-20250514",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("workflow missing %q:\n%s", want, stdout)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "generated")); !os.IsNotExist(err) {
		t.Error("stdout mode must not write files")
	}
}

func TestWorkflowRejectsInvalidModel(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[gh.workflow]\nmodel = \"claude\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "workflow", "--config", cfgPath, "--output", "-")
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stderr, "invalid model") {
		t.Fatalf("stderr = %s", stderr)
	}
}

func TestWorkflowCustomOutputPath(t *testing.T) {
	dir := writeTestProject(t)
	cfgPath := filepath.Join(dir, "config.toml")

	code, _, stderr := runCLI(t, "workflow", "--config", cfgPath, "--output", "ci/opencode.yml")
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "ci", "opencode.yml")); err != nil {
		t.Fatalf("expected workflow at custom path: %v", err)
	}
}

func TestValidate(t *testing.T) {
	dir := writeTestProject(t)
	cfgPath := filepath.Join(dir, "config.toml")

	code, stdout, stderr := runCLI(t, "validate", "--config", cfgPath)
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "is valid") {
		t.Fatalf("stdout = %s", stdout)
	}
}

func TestValidateRejectsBadCustomDefinition(t *testing.T) {
	dir := writeTestProject(t)
	cfgPath := filepath.Join(dir, "config.toml")
	customDir := filepath.Join(dir, "custom")
	if err := os.MkdirAll(customDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(customDir, "bad.yaml"), []byte("id: bad\nkind: widget\ntemplate_file: t.md\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "validate", "--config", cfgPath)
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stderr, "custom:") {
		t.Fatalf("stderr = %s", stderr)
	}
}

func TestListShowsRegistryState(t *testing.T) {
	dir := writeTestProject(t)
	cfgPath := filepath.Join(dir, "config.toml")

	code, stdout, stderr := runCLI(t, "list", "--config", cfgPath)
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"coder", "gh-workflow", "plugin-dir", "enabled", "skipped"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}
}

func TestUsageErrors(t *testing.T) {
	if code, _, _ := runCLI(t, "frobnicate"); code != 2 {
		t.Fatalf("unknown command exit = %d", code)
	}
	if code, _, _ := runCLI(t); code != 2 {
		t.Fatalf("no-args exit = %d", code)
	}
	if code, _, _ := runCLI(t, "init", "--interactive", "--watch"); code != 2 {
		t.Fatalf("conflicting flags exit = %d", code)
	}
}
