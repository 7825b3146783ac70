package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_EmptyIndentIsIdentity(t *testing.T) {
	c := Default()

	for _, tmpl := range c.All() {
		got, err := c.Render(tmpl.ID, "")
		require.NoError(t, err)
		assert.Equal(t, tmpl.Body, got, tmpl.ID)
	}
}

func TestRender_PrefixesNonBlankLines(t *testing.T) {
	c := Default()
	indent := "\t  "

	for _, tmpl := range c.All() {
		got, err := c.Render(tmpl.ID, indent)
		require.NoError(t, err)

		src := strings.Split(tmpl.Body, "\n")
		out := strings.Split(got, "\n")
		require.Len(t, out, len(src), tmpl.ID)

		for i := range src {
			if strings.TrimSpace(src[i]) == "" {
				assert.Equal(t, src[i], out[i], "%s line %d: blank line changed", tmpl.ID, i)
				continue
			}
			assert.Equal(t, indent+src[i], out[i], "%s line %d", tmpl.ID, i)
		}
	}
}

func TestRender_NotFound(t *testing.T) {
	_, err := Default().Render("not-a-real-id", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		indent string
		want   string
	}{
		{"single line", "x := 1", "  ", "  x := 1"},
		{"blank lines untouched", "a\n\nb", "    ", "    a\n\n    b"},
		{"whitespace-only line untouched", "a\n  \nb", "\t", "\ta\n  \n\tb"},
		{"trailing newline", "a\n", ">", ">a\n"},
		{"empty body", "", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Indent(tt.body, tt.indent))
		})
	}
}

func TestIndentOf(t *testing.T) {
	assert.Equal(t, "    ", IndentOf("    int x = 0;"))
	assert.Equal(t, "\t ", IndentOf("\t return;"))
	assert.Equal(t, "", IndentOf("return;"))
	assert.Equal(t, "  ", IndentOf("  "))
}
