package generator

import "fmt"

// Kind groups generators by the artifact family they produce.
type Kind string

const (
	KindAgent    Kind = "agent"
	KindCommand  Kind = "command"
	KindGitHub   Kind = "github"
	KindScaffold Kind = "scaffold"
)

func (k Kind) valid() bool {
	switch k {
	case KindAgent, KindCommand, KindGitHub, KindScaffold:
		return true
	}
	return false
}

// Info describes a generator's identity and intent.
type Info struct {
	ID          string
	Name        string
	Description string
	Kind        Kind
	Version     string
}

// Validate ensures the info block is well-formed.
func (i Info) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("generator: id is required")
	}
	if i.Name == "" {
		return fmt.Errorf("generator: name is required for %s", i.ID)
	}
	if !i.Kind.valid() {
		return fmt.Errorf("generator: invalid kind %q for %s", i.Kind, i.ID)
	}
	if i.Version == "" {
		return fmt.Errorf("generator: version is required for %s", i.ID)
	}
	return nil
}

// Status enumerates generation outcomes.
type Status string

const (
	StatusGenerated Status = "generated"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result captures the outcome of a single generator run.
type Result struct {
	Status   Status
	Message  string
	Path     string
	Warnings []string
}

// Generator is implemented by every unit that can render output files.
type Generator interface {
	Info() Info
	// Enabled reports whether the generator should run for the current
	// config, with a human-readable reason when it should not.
	Enabled(ctx *Context) (bool, string)
	Generate(ctx *Context) (Result, error)
}
