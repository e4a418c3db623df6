package generators

import (
	"github.com/ogcontrol/ogc/internal/generator"
	"github.com/ogcontrol/ogc/internal/generators/agent"
	"github.com/ogcontrol/ogc/internal/generators/command"
	"github.com/ogcontrol/ogc/internal/generators/ghworkflow"
	"github.com/ogcontrol/ogc/internal/generators/plugindir"
)

// RegisterBuiltins installs all of the built-in generator factories into the
// provided registry.
func RegisterBuiltins(reg *generator.Registry) {
	if reg == nil {
		return
	}
	agent.Register(reg)
	command.Register(reg)
	ghworkflow.Register(reg)
	plugindir.Register(reg)
}
