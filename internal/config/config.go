// internal/config/config.go
//
// This package loads the config.toml file that drives generation.
// Every generator reads its settings from a table under [opencode.agents],
// [opencode.commands], or [gh.workflow].

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigFileName is the default name of the configuration file.
	ConfigFileName = "config.toml"

	// GeneratedDirName is the directory (relative to the project root) that
	// receives every generated file.
	GeneratedDirName = "generated"

	// CustomDirName holds user-supplied YAML generator definitions.
	CustomDirName = "custom"
)

// Documented defaults applied when keys are absent.
const (
	DefaultEnvKey       = "ANTHROPIC_API_KEY"
	DefaultModel        = "anthropic/claude-sonnet-4-20250514"
	DefaultCommandAgent = "build"
)

// ErrNotFound reports a missing configuration file.
var ErrNotFound = errors.New("config: file not found")

// Table is one generator's settings block, decoded as-is from TOML.
type Table map[string]any

// Config holds the parsed configuration plus the paths derived from it.
type Config struct {
	// Path is the absolute location of the config file.
	Path string

	// ProjectRoot is the directory containing the config file. Relative
	// paths inside the config resolve against it.
	ProjectRoot string

	// Agents maps agent name to its [opencode.agents.<name>] table.
	Agents map[string]Table

	// Commands maps command name to its [opencode.commands.<name>] table.
	Commands map[string]Table

	// Workflow is the [gh.workflow] table.
	Workflow Table
}

type fileSchema struct {
	OpenCode struct {
		Agents   map[string]Table `toml:"agents"`
		Commands map[string]Table `toml:"commands"`
	} `toml:"opencode"`
	GH struct {
		Workflow Table `toml:"workflow"`
	} `toml:"gh"`
}

// Load reads and decodes the configuration file at path.
func Load(path string) (*Config, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = ConfigFileName
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", trimmed, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, abs)
		}
		return nil, fmt.Errorf("config: read %s: %w", abs, err)
	}
	var parsed fileSchema
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	cfg := &Config{
		Path:        abs,
		ProjectRoot: filepath.Dir(abs),
		Agents:      parsed.OpenCode.Agents,
		Commands:    parsed.OpenCode.Commands,
		Workflow:    parsed.GH.Workflow,
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Agents == nil {
		c.Agents = map[string]Table{}
	}
	if c.Commands == nil {
		c.Commands = map[string]Table{}
	}
	if c.Workflow == nil {
		c.Workflow = Table{}
	}
}

// GeneratedDir returns the root for generated files.
func (c *Config) GeneratedDir() string {
	return filepath.Join(c.ProjectRoot, GeneratedDirName)
}

// AgentDir returns the directory that receives generated agent files.
func (c *Config) AgentDir() string {
	return filepath.Join(c.GeneratedDir(), ".opencode", "agent")
}

// CommandDir returns the directory that receives generated command files.
func (c *Config) CommandDir() string {
	return filepath.Join(c.GeneratedDir(), ".opencode", "command")
}

// PluginDir returns the scaffolded plugin directory.
func (c *Config) PluginDir() string {
	return filepath.Join(c.GeneratedDir(), ".opencode", "plugin")
}

// WorkflowPath returns the default output path for the GitHub workflow.
func (c *Config) WorkflowPath() string {
	return filepath.Join(c.GeneratedDir(), ".github", "workflows", "opencode.yml")
}

// CustomDir returns the directory scanned for custom generator definitions.
func (c *Config) CustomDir() string {
	return filepath.Join(c.ProjectRoot, CustomDirName)
}

// ResolvePath resolves a config-relative path against the project root.
// Absolute paths are cleaned and returned unchanged.
func (c *Config) ResolvePath(candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(c.ProjectRoot, trimmed))
}

// Agent returns the settings table for the named agent, if present.
func (c *Config) Agent(name string) (Table, bool) {
	t, ok := c.Agents[name]
	return t, ok
}

// Command returns the settings table for the named command, if present.
func (c *Config) Command(name string) (Table, bool) {
	t, ok := c.Commands[name]
	return t, ok
}

// Flatten returns every configured value keyed by its dotted path, with
// values rendered as strings. Used for --verbose summaries and validation
// messages.
func (c *Config) Flatten() map[string]string {
	flat := map[string]string{}
	for name, table := range c.Agents {
		flattenInto(flat, "opencode.agents."+name, table)
	}
	for name, table := range c.Commands {
		flattenInto(flat, "opencode.commands."+name, table)
	}
	flattenInto(flat, "gh.workflow", c.Workflow)
	return flat
}

// FlattenKeys returns the sorted dotted keys of Flatten.
func (c *Config) FlattenKeys() []string {
	flat := c.Flatten()
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func flattenInto(dst map[string]string, prefix string, value any) {
	switch v := value.(type) {
	case Table:
		flattenInto(dst, prefix, map[string]any(v))
	case map[string]any:
		for key, sub := range v {
			flattenInto(dst, prefix+"."+key, sub)
		}
	default:
		dst[prefix] = stringify(value)
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = stringify(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", value)
	}
}

// GetString reads a string key from the table, falling back to def when the
// key is absent or not a string.
func (t Table) GetString(key, def string) string {
	if t == nil {
		return def
	}
	if v, ok := t[key].(string); ok {
		return v
	}
	return def
}

// GetBool reads a bool key, falling back to def.
func (t Table) GetBool(key string, def bool) bool {
	if t == nil {
		return def
	}
	if v, ok := t[key].(bool); ok {
		return v
	}
	return def
}

// GetStringList reads a list of strings. Non-string entries are skipped.
func (t Table) GetStringList(key string) []string {
	if t == nil {
		return nil
	}
	raw, ok := t[key].([]any)
	if !ok {
		return nil
	}
	var values []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

// Has reports whether the key is present in the table.
func (t Table) Has(key string) bool {
	if t == nil {
		return false
	}
	_, ok := t[key]
	return ok
}

// Enabled reports whether the table's enabled flag allows generation.
// Missing flags default to true.
func (t Table) Enabled() bool {
	return t.GetBool("enabled", true)
}
