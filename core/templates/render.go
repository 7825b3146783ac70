package templates

import "strings"

// Render returns the template body with indent prefixed to every non-blank
// line. Blank and whitespace-only lines are left as they are, so an empty
// indent reproduces the stored body.
func (c *Catalog) Render(id, indent string) (string, error) {
	t, err := c.Get(id)
	if err != nil {
		return "", err
	}
	return Indent(t.Body, indent), nil
}

// Indent prefixes indent to each non-blank line of body.
func Indent(body, indent string) string {
	if indent == "" {
		return body
	}
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}

// IndentOf returns the leading whitespace of line, the indentation a host
// uses when inserting at that line.
func IndentOf(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	return line[:len(line)-len(trimmed)]
}
