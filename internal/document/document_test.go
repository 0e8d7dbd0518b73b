package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/websmith/internal/render"
)

func newTestEngine(t *testing.T, templates map[string]string) *render.Engine {
	t.Helper()
	dir := t.TempDir()
	for name, body := range templates {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}
	eng, err := render.NewEngine(dir)
	require.NoError(t, err)
	return eng
}

func readTarget(t *testing.T, base, rel string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(base, rel))
	require.NoError(t, err)
	return string(raw)
}

func TestFields_IncludesWellKnownFields(t *testing.T) {
	d := New()
	d.SourcePath = "posts/one.md"
	d.Set("title", "One")

	fields := d.Fields()
	require.Equal(t, "One", fields["title"])
	require.Equal(t, "posts/one.md", fields["source_path"])
	require.NotContains(t, fields, "sequence")
}

func TestFields_ReturnsCopy(t *testing.T) {
	d := New()
	d.Set("title", "One")

	fields := d.Fields()
	fields["title"] = "mutated"

	v, _ := d.Get("title")
	require.Equal(t, "One", v)
}

func TestFormat_UsesDocumentFields(t *testing.T) {
	d := New()
	d.Set("slug", "hello")

	out, err := d.Format("posts/{{.slug}}.html")
	require.NoError(t, err)
	require.Equal(t, "posts/hello.html", out)
}

func TestFormat_MissingFieldFails(t *testing.T) {
	d := New()

	_, err := d.Format("posts/{{.slug}}.html")
	require.Error(t, err)
}

func TestRender_WritesTargetWithContext(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"page.html": "{{.title}}|{{.rel_base}}",
	})
	targetBase := t.TempDir()

	d := New()
	d.Set("title", "Hello")
	d.Set("slug", "hello")

	err := d.Render(eng, targetBase, RenderRequest{
		Template: "page.html",
		Target:   "posts/{{.slug}}.html",
	})
	require.NoError(t, err)

	require.Equal(t, "Hello|..", readTarget(t, targetBase, "posts/hello.html"))
}

func TestRender_RootLevelTargetHasDotRelBase(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"page.html": "{{.rel_base}}",
	})
	targetBase := t.TempDir()

	d := New()
	d.Set("slug", "index")

	err := d.Render(eng, targetBase, RenderRequest{
		Template: "page.html",
		Target:   "{{.slug}}.html",
	})
	require.NoError(t, err)
	require.Equal(t, ".", readTarget(t, targetBase, "index.html"))
}

func TestRender_ContextPrecedence(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"page.html": "{{.a}}{{.b}}{{.c}}",
	})
	targetBase := t.TempDir()

	d := New()
	d.Set("slug", "p")
	d.Set("a", "field")
	d.Set("b", "field")
	d.Set("c", "field")

	err := d.Render(eng, targetBase, RenderRequest{
		Template:  "page.html",
		Target:    "{{.slug}}.html",
		Extra:     map[string]any{"b": "extra", "c": "extra"},
		Overrides: map[string]any{"c": "override"},
	})
	require.NoError(t, err)
	require.Equal(t, "fieldextraoverride", readTarget(t, targetBase, "p.html"))
}

func TestRenderI18N_RendersPerLanguageAndRestoresLang(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"page.html": "{{.lang}}",
	})
	targetBase := t.TempDir()

	d := New()
	d.Set("slug", "about")

	err := d.RenderI18N(eng, targetBase, []string{"en", "de"}, RenderRequest{
		Template: "page.html",
		Target:   "{{.lang}}/{{.slug}}.html",
	})
	require.NoError(t, err)

	require.Equal(t, "en", readTarget(t, targetBase, "en/about.html"))
	require.Equal(t, "de", readTarget(t, targetBase, "de/about.html"))
	require.False(t, d.Has("lang"))
}

func TestRenderI18N_RestoresPriorLang(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"page.html": "{{.lang}}",
	})
	targetBase := t.TempDir()

	d := New()
	d.Set("slug", "about")
	d.Set("lang", "fr")

	err := d.RenderI18N(eng, targetBase, []string{"en"}, RenderRequest{
		Template: "page.html",
		Target:   "{{.lang}}/{{.slug}}.html",
	})
	require.NoError(t, err)

	v, ok := d.Get("lang")
	require.True(t, ok)
	require.Equal(t, "fr", v)
}
