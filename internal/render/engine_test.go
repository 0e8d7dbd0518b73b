package render

import (
	"os"
	"path/filepath"
	"testing"
	"text/template"

	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, templates map[string]string) *Engine {
	t.Helper()
	dir := t.TempDir()
	for name, body := range templates {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}
	eng, err := NewEngine(dir)
	require.NoError(t, err)
	return eng
}

func TestNewEngine_MissingDirectoryFails(t *testing.T) {
	_, err := NewEngine(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestRender_ExecutesTemplateWithData(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"page.html": "<h1>{{.title}}</h1>",
	})

	out, err := eng.Render("page.html", map[string]any{"title": "Hello"})
	require.NoError(t, err)
	require.Equal(t, "<h1>Hello</h1>", string(out))
}

func TestRender_NestedTemplateName(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"posts/entry.html": "{{.slug}}",
	})

	out, err := eng.Render("posts/entry.html", map[string]any{"slug": "first"})
	require.NoError(t, err)
	require.Equal(t, "first", string(out))
}

func TestRender_MissingFieldFails(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"page.html": "<h1>{{.titel}}</h1>",
	})

	// A typo'd field must fail the render, not emit "<no value>" into the
	// output tree.
	_, err := eng.Render("page.html", map[string]any{"title": "Hello"})
	require.Error(t, err)
}

func TestRender_UnknownTemplate(t *testing.T) {
	eng := newTestEngine(t, nil)

	_, err := eng.Render("missing.html", nil)
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRender_RejectsEscapingTemplateName(t *testing.T) {
	eng := newTestEngine(t, nil)

	_, err := eng.Render("../secret.html", nil)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrTemplateNotFound)
}

func TestRender_CustomFuncs(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"up.html": "{{upper .name}}",
	})
	eng.WithFuncs(template.FuncMap{
		"upper": func(s string) string {
			out := make([]rune, 0, len(s))
			for _, r := range s {
				if r >= 'a' && r <= 'z' {
					r -= 'a' - 'A'
				}
				out = append(out, r)
			}
			return string(out)
		},
	})

	out, err := eng.Render("up.html", map[string]any{"name": "go"})
	require.NoError(t, err)
	require.Equal(t, "GO", string(out))
}

func TestFormatPath_RendersAgainstFields(t *testing.T) {
	out, err := FormatPath("posts/{{.slug}}.html", map[string]any{"slug": "hello"})
	require.NoError(t, err)
	require.Equal(t, "posts/hello.html", out)
}

func TestFormatPath_MissingFieldFails(t *testing.T) {
	_, err := FormatPath("posts/{{.slug}}.html", map[string]any{})
	require.Error(t, err)
}

func TestWriteFile_CreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "nested", "page.html")

	require.NoError(t, WriteFile(path, []byte("content")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "content", string(raw))

	// Overwriting is allowed: rendered targets regenerate.
	require.NoError(t, WriteFile(path, []byte("updated")))
	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "updated", string(raw))
}
