// Package frontmatter reads and writes the YAML metadata fences that wrap
// generated agent and command files.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissing indicates the document did not start with a YAML fence.
	ErrMissing = errors.New("frontmatter: missing frontmatter")
	// ErrMalformed indicates the fence was opened but never closed, or the
	// YAML block could not be parsed.
	ErrMalformed = errors.New("frontmatter: malformed frontmatter")
)

// Parse extracts the metadata block and body from a document that starts
// with `---` YAML fences.
func Parse(content []byte) (map[string]any, []byte, error) {
	if len(content) == 0 {
		return nil, nil, ErrMissing
	}
	normalized := normalizeNewlines(content)
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, nil, ErrMissing
	}
	rest := normalized[4:]
	parts := bytes.SplitN(rest, []byte("\n---\n"), 2)
	if len(parts) < 2 {
		return nil, nil, ErrMalformed
	}
	var fields map[string]any
	if err := yaml.Unmarshal(parts[0], &fields); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	body := bytes.TrimLeft(parts[1], "\n")
	return fields, body, nil
}

// Render encodes fields as a fenced YAML block followed by body. Map keys
// are emitted in sorted order by the YAML encoder, so rendering the same
// fields twice produces identical bytes.
func Render(fields map[string]any, body []byte) ([]byte, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("frontmatter: no fields to render")
	}
	data, err := yaml.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: encode fields: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.WriteString("\n---\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// Strip removes a leading frontmatter block from content, along with the
// blank lines that follow it. Content without a complete block is returned
// unchanged, matching how template files are cleaned before re-rendering.
func Strip(content []byte) []byte {
	normalized := normalizeNewlines(content)
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return normalized
	}
	rest := normalized[4:]
	parts := bytes.SplitN(rest, []byte("\n---\n"), 2)
	if len(parts) < 2 {
		// An unclosed fence is not treated as frontmatter.
		return normalized
	}
	return bytes.TrimLeft(parts[1], "\n")
}

func normalizeNewlines(content []byte) []byte {
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
}
