// Package runner executes registered generators and reports outcomes.
package runner

import (
	"github.com/ogcontrol/ogc/internal/generator"
)

// Entry pairs a generator with the outcome of its run.
type Entry struct {
	ID     string
	Kind   generator.Kind
	Result generator.Result
}

// Tally aggregates run outcomes.
type Tally struct {
	Generated int
	Skipped   int
	Failed    int
}

// Total returns the number of generators the run touched.
func (t Tally) Total() int {
	return t.Generated + t.Skipped + t.Failed
}

// HasFailures reports whether any generator failed.
func (t Tally) HasFailures() bool {
	return t.Failed > 0
}

// Run resolves and executes every registered generator in ID order. A
// failing generator is recorded and does not abort the run; the caller
// decides what to do with failures.
func Run(reg *generator.Registry, ctx *generator.Context) []Entry {
	ids := reg.IDs()
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, runOne(reg, ctx, id))
	}
	return entries
}

func runOne(reg *generator.Registry, ctx *generator.Context, id string) Entry {
	gen, err := reg.Resolve(id)
	if err != nil {
		ctx.Logf("runner: %s: resolve failed: %v", id, err)
		return Entry{
			ID:     id,
			Result: generator.Result{Status: generator.StatusFailed, Message: err.Error()},
		}
	}

	entry := Entry{ID: id, Kind: gen.Info().Kind}

	if ok, reason := gen.Enabled(ctx); !ok {
		ctx.Logf("runner: %s: skipped: %s", id, reason)
		entry.Result = generator.Result{Status: generator.StatusSkipped, Message: reason}
		return entry
	}

	result, err := gen.Generate(ctx)
	if err != nil {
		ctx.Logf("runner: %s: failed: %v", id, err)
		entry.Result = generator.Result{Status: generator.StatusFailed, Message: err.Error()}
		return entry
	}
	ctx.Logf("runner: %s: %s %s", id, result.Status, result.Path)
	entry.Result = result
	return entry
}

// Count tallies entries by status.
func Count(entries []Entry) Tally {
	var t Tally
	for _, e := range entries {
		switch e.Result.Status {
		case generator.StatusGenerated:
			t.Generated++
		case generator.StatusSkipped:
			t.Skipped++
		default:
			t.Failed++
		}
	}
	return t
}
