// Package images handles image documents whose outputs are produced by the
// external ImageMagick `convert` tool.
package images

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"git.home.luguber.info/inful/websmith/internal/document"
	"git.home.luguber.info/inful/websmith/internal/logfields"
)

// runFunc invokes an external command. Replaced in tests.
type runFunc func(ctx context.Context, name string, args ...string) error

// Document is a static image document converted or resized via `convert`.
type Document struct {
	*document.StaticDocument
	logger *slog.Logger
	run    runFunc
}

// New creates an image document for the source file at path, relative to
// sourceBase.
func New(sourceBase, targetBase, path string) *Document {
	return &Document{
		StaticDocument: document.NewStatic(sourceBase, targetBase, path),
		logger:         slog.Default(),
		run:            runCommand,
	}
}

// WithLogger sets a custom logger.
func (d *Document) WithLogger(logger *slog.Logger) *Document {
	d.logger = logger
	return d
}

// Convert converts the source image into the target format implied by the
// target path's suffix, when the target is stale or force is set.
func (d *Document) Convert(ctx context.Context, target string, force bool) error {
	dec, err := d.PrepareTarget(target)
	if err != nil {
		return err
	}
	if !dec.NeedsMake && !force {
		d.logger.Debug("Image target up to date", logfields.Target(dec.TargetPath))
		return nil
	}

	d.logger.Info("Converting image", logfields.Source(dec.SourcePath), logfields.Target(dec.TargetPath))
	if err := d.run(ctx, "convert", dec.SourcePath, dec.TargetPath); err != nil {
		return fmt.Errorf("convert %s: %w", dec.SourcePath, err)
	}
	return nil
}

// Resize converts the source image and resizes it to width x height, when the
// target is stale or force is set.
func (d *Document) Resize(ctx context.Context, target string, width, height int, force bool) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize dimensions must be positive, got %dx%d", width, height)
	}

	dec, err := d.PrepareTarget(target)
	if err != nil {
		return err
	}
	if !dec.NeedsMake && !force {
		d.logger.Debug("Image target up to date", logfields.Target(dec.TargetPath))
		return nil
	}

	geometry := fmt.Sprintf("%dx%d", width, height)
	d.logger.Info("Resizing image",
		logfields.Source(dec.SourcePath),
		logfields.Target(dec.TargetPath),
		slog.String("geometry", geometry))
	if err := d.run(ctx, "convert", dec.SourcePath, "-resize", geometry, dec.TargetPath); err != nil {
		return fmt.Errorf("resize %s: %w", dec.SourcePath, err)
	}
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, out)
	}
	return nil
}
