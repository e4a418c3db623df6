package plugindir

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ogcontrol/ogc/internal/config"
	"github.com/ogcontrol/ogc/internal/generator"
)

func TestGenerateScaffoldsPluginDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx := generator.NewContext(cfg, nil)

	gen := New()
	result, err := gen.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.Status != generator.StatusGenerated {
		t.Fatalf("status = %s", result.Status)
	}

	keep, err := os.ReadFile(filepath.Join(cfg.PluginDir(), ".gitkeep"))
	if err != nil {
		t.Fatalf(".gitkeep missing: %v", err)
	}
	if !strings.Contains(string(keep), "tracked by git") {
		t.Fatalf(".gitkeep content = %q", keep)
	}
	readme, err := os.ReadFile(filepath.Join(cfg.PluginDir(), "README.md"))
	if err != nil {
		t.Fatalf("README missing: %v", err)
	}
	if !strings.HasPrefix(string(readme), "# Plugin Directory") {
		t.Fatalf("README content = %q", readme)
	}
}
