package generator

import (
	"time"

	"github.com/ogcontrol/ogc/internal/config"
	"github.com/ogcontrol/ogc/internal/logging"
)

// Context carries shared runtime dependencies into every generator.
type Context struct {
	Config *config.Config
	Log    *logging.Logger
	Now    func() time.Time
}

// NewContext builds a Context for one generation run.
func NewContext(cfg *config.Config, log *logging.Logger) *Context {
	return &Context{
		Config: cfg,
		Log:    log,
		Now:    time.Now,
	}
}

// Logf writes to the run log when one is attached.
func (ctx *Context) Logf(format string, args ...any) {
	if ctx == nil || ctx.Log == nil {
		return
	}
	ctx.Log.Printf(format, args...)
}
