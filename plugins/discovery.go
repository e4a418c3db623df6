package plugins

import (
	"fmt"

	"github.com/ogcontrol/ogc/internal/config"
	"github.com/ogcontrol/ogc/internal/generator"
)

// RegisterCustomGenerators discovers YAML definitions under the project's
// custom/ directory and registers them alongside the built-ins.
func RegisterCustomGenerators(reg *generator.Registry, cfg *config.Config) error {
	if reg == nil || cfg == nil {
		return nil
	}
	defs, err := LoadDefinitionDir(cfg.CustomDir())
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return nil
	}
	seen := make(map[string]string)
	for _, file := range defs {
		def := file.Definition
		if existing, ok := seen[def.ID]; ok {
			return fmt.Errorf("plugin: duplicate generator id %s (%s and %s)", def.ID, existing, file.Path)
		}
		seen[def.ID] = file.Path
		if reg.Has(def.ID) {
			return fmt.Errorf("plugin: %s from %s collides with a built-in generator", def.ID, file.Path)
		}
		defCopy := def
		if err := reg.Register(defCopy.ID, func() (generator.Generator, error) {
			return newCustomGenerator(defCopy)
		}); err != nil {
			return fmt.Errorf("plugin: register %s from %s: %w", def.ID, file.Path, err)
		}
	}
	return nil
}
