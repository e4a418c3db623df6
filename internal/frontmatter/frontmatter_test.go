package frontmatter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	fields := map[string]any{
		"description": "Coordinates work across agents",
		"mode":        "primary",
		"model":       "anthropic/claude-sonnet-4-20250514",
	}
	body := []byte("# Task Manager\n\nYou coordinate work.\n")
	rendered, err := Render(fields, body)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	parsed, parsedBody, err := Parse(rendered)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if parsed["mode"] != "primary" {
		t.Fatalf("mode = %v", parsed["mode"])
	}
	if !bytes.Equal(parsedBody, body) {
		t.Fatalf("body mismatch: %q", parsedBody)
	}
}

func TestRenderDeterministic(t *testing.T) {
	fields := map[string]any{
		"model":       "anthropic/claude-sonnet-4-20250514",
		"agent":       "build",
		"description": "Commit command",
	}
	first, err := Render(fields, []byte("body\n"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := Render(fields, []byte("body\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected identical output across renders")
	}
	// Keys must appear in sorted order so repeated runs never reorder them.
	text := string(first)
	if strings.Index(text, "agent:") > strings.Index(text, "description:") {
		t.Fatalf("keys not sorted:\n%s", text)
	}
}

func TestParseMissing(t *testing.T) {
	if _, _, err := Parse([]byte("# No frontmatter here\n")); !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
	if _, _, err := Parse(nil); !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing for empty input, got %v", err)
	}
}

func TestParseMalformed(t *testing.T) {
	if _, _, err := Parse([]byte("---\nnever: closed\n")); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestStrip(t *testing.T) {
	doc := []byte("---\ndescription: old\n---\n\n\n# Body\n")
	stripped := Strip(doc)
	if string(stripped) != "# Body\n" {
		t.Fatalf("stripped = %q", stripped)
	}
	plain := []byte("# Body only\n")
	if string(Strip(plain)) != "# Body only\n" {
		t.Fatal("plain content should pass through")
	}
	unclosed := []byte("---\ndescription: x\nno close\n")
	if !bytes.Equal(Strip(unclosed), unclosed) {
		t.Fatal("unclosed fence should pass through")
	}
}

func TestStripNormalizesCRLF(t *testing.T) {
	doc := []byte("---\r\ndescription: old\r\n---\r\n\r\n# Body\r\n")
	if string(Strip(doc)) != "# Body\n" {
		t.Fatalf("stripped = %q", Strip(doc))
	}
}
