package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "websmith.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validConfig = `source_base: ./src
target_base: ./out
rules:
  - name: posts
    pattern: 'posts/.*\.md$'
    template: post.html
    target: 'posts/{{.slug}}.html'
    sort_field: date
    sort_reverse: true
    paginate:
      per_page: 5
      orphans: 2
      template: listing.html
      target: 'posts/page-{{.number1}}.html'
  - name: assets
    pattern: 'static/'
    type: static
`

func TestLoad_ValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	require.Equal(t, "./src", cfg.SourceBase)
	require.Equal(t, filepath.Join("./src", "templates"), cfg.TemplateDir)
	require.Len(t, cfg.Rules, 2)

	posts := cfg.Rules[0]
	require.Equal(t, RuleTypeDocument, posts.Type)
	require.True(t, posts.SortReverse)
	require.NotNil(t, posts.Paginate)
	require.Equal(t, 5, posts.Paginate.PerPage)
	require.True(t, posts.Paginate.AllowEmpty())

	require.Equal(t, RuleTypeStatic, cfg.Rules[1].Type)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WEBSMITH_SOURCE_BASE", "/env/src")
	t.Setenv("WEBSMITH_TARGET_BASE", "/env/out")

	cfg, err := Load(writeConfig(t, "source_base: ./src\ntarget_base: ./out\n"))
	require.NoError(t, err)
	require.Equal(t, "/env/src", cfg.SourceBase)
	require.Equal(t, "/env/out", cfg.TargetBase)
}

func TestValidate_RequiredFields(t *testing.T) {
	_, err := Load(writeConfig(t, "target_base: ./out\n"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "source_base: ./src\n"))
	require.Error(t, err)
}

func TestValidate_RuleErrors(t *testing.T) {
	tests := []struct {
		name string
		rule string
	}{
		{"missing pattern", "  - name: r\n    type: static\n"},
		{"unknown type", "  - name: r\n    pattern: x\n    type: exotic\n"},
		{"template without target", "  - name: r\n    pattern: x\n    template: t.html\n"},
		{"paginate without per_page", "  - name: r\n    pattern: x\n    paginate:\n      template: l.html\n      target: p.html\n"},
		{"paginate negative orphans", "  - name: r\n    pattern: x\n    paginate:\n      per_page: 3\n      orphans: -1\n      template: l.html\n      target: p.html\n"},
		{"paginate on static rule", "  - name: r\n    pattern: x\n    type: static\n    paginate:\n      per_page: 3\n      template: l.html\n      target: p.html\n"},
		{"width without height", "  - name: r\n    pattern: x\n    type: image\n    width: 100\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "source_base: ./src\ntarget_base: ./out\nrules:\n" + tt.rule
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
		})
	}
}

func TestApplyDefaults_NamesUnnamedRules(t *testing.T) {
	cfg, err := Load(writeConfig(t, "source_base: ./src\ntarget_base: ./out\nrules:\n  - pattern: x\n    type: static\n"))
	require.NoError(t, err)
	require.Equal(t, "rule-1", cfg.Rules[0].Name)
}
