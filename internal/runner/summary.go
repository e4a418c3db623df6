package runner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ogcontrol/ogc/internal/generator"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3DDC84"))
	skipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5534B"))
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E3B341"))
)

// Summary renders a human-readable report of one generation run.
func Summary(entries []Entry) string {
	var generated, skipped, failed []Entry
	for _, e := range entries {
		switch e.Result.Status {
		case generator.StatusGenerated:
			generated = append(generated, e)
		case generator.StatusSkipped:
			skipped = append(skipped, e)
		default:
			failed = append(failed, e)
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("generation results"))
	b.WriteString("\n")

	for _, e := range generated {
		fmt.Fprintf(&b, "  %s %s", okStyle.Render("✓"), e.ID)
		if e.Result.Path != "" {
			fmt.Fprintf(&b, " → %s", e.Result.Path)
		}
		b.WriteString("\n")
		for _, w := range e.Result.Warnings {
			fmt.Fprintf(&b, "    %s %s\n", warnStyle.Render("warning:"), w)
		}
	}
	for _, e := range skipped {
		fmt.Fprintf(&b, "  %s %s", skipStyle.Render("-"), e.ID)
		if e.Result.Message != "" {
			fmt.Fprintf(&b, " (%s)", e.Result.Message)
		}
		b.WriteString("\n")
	}
	for _, e := range failed {
		fmt.Fprintf(&b, "  %s %s: %s\n", failStyle.Render("✗"), e.ID, e.Result.Message)
	}

	t := Count(entries)
	b.WriteString("\n")
	fmt.Fprintf(&b, "total %d, generated %d, skipped %d, failed %d\n",
		t.Total(), t.Generated, t.Skipped, t.Failed)
	if t.Failed > 0 {
		b.WriteString(failStyle.Render(fmt.Sprintf("%d generator(s) failed; check config.toml and rerun", t.Failed)))
		b.WriteString("\n")
	}
	return b.String()
}
