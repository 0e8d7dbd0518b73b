// Package config defines the explicit build configuration. There is no global
// configuration singleton; a Config is loaded once and passed to constructors.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	werrors "git.home.luguber.info/inful/websmith/internal/errors"
)

// Config is the root build configuration.
type Config struct {
	// SourceBase is the root of the source tree. Required.
	SourceBase string `yaml:"source_base"`
	// TargetBase is the root of the output tree. Required.
	TargetBase string `yaml:"target_base"`
	// TemplateDir holds the templates. Defaults to SourceBase/templates.
	TemplateDir string `yaml:"template_dir,omitempty"`
	// Languages enables i18n rendering: documents with i18n set render once
	// per language with a "lang" field.
	Languages []string `yaml:"languages,omitempty"`
	// Rules describe what to build, in order.
	Rules []Rule `yaml:"rules,omitempty"`
}

// RuleType selects how a rule's matched files are processed.
type RuleType string

const (
	// RuleTypeDocument parses matches into documents (by suffix) and renders
	// them through templates. The zero value.
	RuleTypeDocument RuleType = "document"
	// RuleTypeStatic copies matches verbatim, honoring freshness.
	RuleTypeStatic RuleType = "static"
	// RuleTypeImage converts (and optionally resizes) matches via the
	// external convert tool, honoring freshness.
	RuleTypeImage RuleType = "image"
)

// Rule is one build step: a discovery pattern plus instructions for what to do
// with the matched files.
type Rule struct {
	Name    string   `yaml:"name"`
	Pattern string   `yaml:"pattern"`
	Type    RuleType `yaml:"type,omitempty"`

	// Template and Target drive per-document rendering (document rules) or
	// the copy destination (static/image rules). Target is a path template
	// formatted against each document's fields; when empty for static and
	// image rules, the source-relative path is reused.
	Template string `yaml:"template,omitempty"`
	Target   string `yaml:"target,omitempty"`

	// I18N renders the rule once per configured language.
	I18N bool `yaml:"i18n,omitempty"`

	// SortField orders the document list by a field (source_path when empty).
	SortField   string `yaml:"sort_field,omitempty"`
	SortReverse bool   `yaml:"sort_reverse,omitempty"`

	// Width/Height trigger a resize for image rules.
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`

	// Paginate renders listing pages over the sorted document list.
	Paginate *PaginateRule `yaml:"paginate,omitempty"`
}

// PaginateRule configures listing-page generation for a document rule.
type PaginateRule struct {
	PerPage int `yaml:"per_page"`
	Orphans int `yaml:"orphans,omitempty"`
	// AllowEmptyFirstPage defaults to true: an empty collection still yields
	// one (empty) listing page.
	AllowEmptyFirstPage *bool `yaml:"allow_empty_first_page,omitempty"`
	// Template renders each page; Target is formatted against the page's
	// fields (number, number1, ...).
	Template string `yaml:"template"`
	Target   string `yaml:"target"`
}

// AllowEmpty resolves the AllowEmptyFirstPage default.
func (p *PaginateRule) AllowEmpty() bool {
	return p.AllowEmptyFirstPage == nil || *p.AllowEmptyFirstPage
}

// Load reads and validates a configuration file. Environment variables
// WEBSMITH_SOURCE_BASE and WEBSMITH_TARGET_BASE override the file values.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, werrors.ConfigNotFound(path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if env := os.Getenv("WEBSMITH_SOURCE_BASE"); env != "" {
		cfg.SourceBase = env
	}
	if env := os.Getenv("WEBSMITH_TARGET_BASE"); env != "" {
		cfg.TargetBase = env
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TemplateDir == "" && c.SourceBase != "" {
		c.TemplateDir = filepath.Join(c.SourceBase, "templates")
	}
	for i := range c.Rules {
		if c.Rules[i].Type == "" {
			c.Rules[i].Type = RuleTypeDocument
		}
		if c.Rules[i].Name == "" {
			c.Rules[i].Name = fmt.Sprintf("rule-%d", i+1)
		}
	}
}

// Validate checks required fields and per-rule consistency.
func (c *Config) Validate() error {
	if c.SourceBase == "" {
		return werrors.ConfigRequired("source_base")
	}
	if c.TargetBase == "" {
		return werrors.ConfigRequired("target_base")
	}

	for _, rule := range c.Rules {
		if rule.Pattern == "" {
			return werrors.ValidationFailed("pattern", fmt.Sprintf("rule %q has no pattern", rule.Name))
		}
		switch rule.Type {
		case RuleTypeDocument, RuleTypeStatic, RuleTypeImage:
		default:
			return werrors.ValidationFailed("type", fmt.Sprintf("rule %q has unknown type %q", rule.Name, rule.Type))
		}
		if rule.Type == RuleTypeDocument && rule.Template != "" && rule.Target == "" {
			return werrors.ValidationFailed("target", fmt.Sprintf("rule %q has a template but no target", rule.Name))
		}
		if rule.Type == RuleTypeImage && (rule.Width != 0) != (rule.Height != 0) {
			return werrors.ValidationFailed("width/height", fmt.Sprintf("rule %q must set both width and height or neither", rule.Name))
		}
		if p := rule.Paginate; p != nil {
			if rule.Type != RuleTypeDocument {
				return werrors.ValidationFailed("paginate", fmt.Sprintf("rule %q: only document rules paginate", rule.Name))
			}
			if p.PerPage <= 0 {
				return werrors.ValidationFailed("per_page", fmt.Sprintf("rule %q: per_page must be positive", rule.Name))
			}
			if p.Orphans < 0 {
				return werrors.ValidationFailed("orphans", fmt.Sprintf("rule %q: orphans must not be negative", rule.Name))
			}
			if p.Template == "" || p.Target == "" {
				return werrors.ValidationFailed("paginate", fmt.Sprintf("rule %q: paginate needs template and target", rule.Name))
			}
		}
	}
	return nil
}
