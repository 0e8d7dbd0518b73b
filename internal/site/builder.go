// Package site orchestrates a build run: it discovers source files per
// configured rule, parses and sorts document lists, and renders documents,
// listing pages and static assets into the target tree.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"git.home.luguber.info/inful/websmith/internal/config"
	"git.home.luguber.info/inful/websmith/internal/document"
	werrors "git.home.luguber.info/inful/websmith/internal/errors"
	"git.home.luguber.info/inful/websmith/internal/fileset"
	"git.home.luguber.info/inful/websmith/internal/images"
	"git.home.luguber.info/inful/websmith/internal/logfields"
	"git.home.luguber.info/inful/websmith/internal/render"
)

// Builder executes build runs for a configuration. Create a fresh Builder per
// run: the file listing is memoized for the Builder's lifetime.
type Builder struct {
	cfg      *config.Config
	logger   *slog.Logger
	engine   *render.Engine
	lister   *fileset.Lister
	registry *document.Registry
	force    bool
}

// NewBuilder creates a Builder for cfg.
func NewBuilder(cfg *config.Config) (*Builder, error) {
	engine, err := render.NewEngine(cfg.TemplateDir)
	if err != nil {
		return nil, err
	}
	return &Builder{
		cfg:      cfg,
		logger:   slog.Default(),
		engine:   engine,
		lister:   fileset.NewLister(cfg.SourceBase),
		registry: document.NewRegistry(),
	}, nil
}

// WithLogger sets a custom logger.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	b.lister.WithLogger(logger)
	return b
}

// WithForce makes static and image rules regenerate targets regardless of
// freshness.
func (b *Builder) WithForce(force bool) *Builder {
	b.force = force
	return b
}

// Registry returns the document type registry, so callers can register
// additional suffixes before building.
func (b *Builder) Registry() *document.Registry { return b.registry }

// Build runs every configured rule in order. A failing rule does not stop
// later rules; all rule errors are aggregated into the returned error.
func (b *Builder) Build(ctx context.Context) error {
	runID := uuid.NewString()
	start := time.Now()
	logger := b.logger.With(logfields.RunID(runID))
	logger.Info("Starting build",
		logfields.Source(b.cfg.SourceBase),
		logfields.Target(b.cfg.TargetBase))

	var errs error
	for _, rule := range b.cfg.Rules {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		if err := b.runRule(ctx, logger, rule); err != nil {
			logger.Error("Rule failed", logfields.Rule(rule.Name), logfields.Error(err))
			errs = multierr.Append(errs, werrors.RuleFailed(rule.Name, err))
		}
	}

	logger.Info("Build finished",
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000),
		slog.Bool("ok", errs == nil))
	return errs
}

func (b *Builder) runRule(ctx context.Context, logger *slog.Logger, rule config.Rule) error {
	pattern, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return fmt.Errorf("compile pattern: %w", err)
	}

	switch rule.Type {
	case config.RuleTypeStatic:
		return b.runStaticRule(logger, rule, pattern)
	case config.RuleTypeImage:
		return b.runImageRule(ctx, logger, rule, pattern)
	default:
		return b.runDocumentRule(logger, rule, pattern)
	}
}

func (b *Builder) runStaticRule(logger *slog.Logger, rule config.Rule, pattern *regexp.Regexp) error {
	matches, err := b.lister.FindByPattern(pattern)
	if err != nil {
		return err
	}
	logger.Info("Installing static files", logfields.Rule(rule.Name), logfields.Documents(len(matches)))

	var errs error
	for _, m := range matches {
		doc := document.NewStatic(b.cfg.SourceBase, b.cfg.TargetBase, m.Path)
		for key, value := range m.Groups {
			doc.Set(key, value)
		}
		target := rule.Target
		if target == "" {
			target = m.Path
		}
		if err := doc.Install(target, b.force); err != nil {
			errs = multierr.Append(errs, werrors.InstallFailed(m.Path, target, err))
		}
	}
	return errs
}

func (b *Builder) runImageRule(ctx context.Context, logger *slog.Logger, rule config.Rule, pattern *regexp.Regexp) error {
	matches, err := b.lister.FindByPattern(pattern)
	if err != nil {
		return err
	}
	logger.Info("Processing images", logfields.Rule(rule.Name), logfields.Documents(len(matches)))

	var errs error
	for _, m := range matches {
		img := images.New(b.cfg.SourceBase, b.cfg.TargetBase, m.Path).WithLogger(logger)
		for key, value := range m.Groups {
			img.Set(key, value)
		}
		target := rule.Target
		if target == "" {
			target = m.Path
		}

		var convErr error
		if rule.Width > 0 {
			convErr = img.Resize(ctx, target, rule.Width, rule.Height, b.force)
		} else {
			convErr = img.Convert(ctx, target, b.force)
		}
		if convErr != nil {
			errs = multierr.Append(errs, werrors.ConvertFailed(m.Path, target, convErr))
		}
	}
	return errs
}

func (b *Builder) runDocumentRule(logger *slog.Logger, rule config.Rule, pattern *regexp.Regexp) error {
	list := document.NewList()
	if err := list.AddByPattern(b.lister, pattern, b.registry, nil); err != nil {
		return err
	}

	var key document.KeyFunc
	if rule.SortField != "" {
		key = document.FieldKey(rule.SortField)
	}
	list.Sort(key, rule.SortReverse)
	logger.Info("Loaded documents", logfields.Rule(rule.Name), logfields.Documents(list.Len()))

	var errs error
	if rule.Template != "" {
		for _, doc := range list.Items() {
			if err := b.renderDocument(doc, rule); err != nil {
				errs = multierr.Append(errs, werrors.RenderFailed(doc.SourcePath, err))
			}
		}
	}

	if rule.Paginate != nil {
		if err := b.renderListingPages(logger, rule, list); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (b *Builder) renderDocument(doc *document.Document, rule config.Rule) error {
	req := document.RenderRequest{Template: rule.Template, Target: rule.Target}
	if rule.I18N && len(b.cfg.Languages) > 0 {
		return doc.RenderI18N(b.engine, b.cfg.TargetBase, b.cfg.Languages, req)
	}
	return doc.Render(b.engine, b.cfg.TargetBase, req)
}
