package document

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// TargetDecision is the outcome of a freshness check: the resolved source and
// target paths plus whether the target needs regenerating.
type TargetDecision struct {
	SourcePath string
	TargetPath string
	NeedsMake  bool
}

// StaticDocument is a file-backed document whose output is produced by copying
// (or converting) the source file rather than by rendering a template.
type StaticDocument struct {
	*Document
	sourceBase string
	targetBase string
}

// NewStatic creates a static document for the source file at path, relative to
// sourceBase. Outputs resolve under targetBase.
func NewStatic(sourceBase, targetBase, path string) *StaticDocument {
	doc := New()
	doc.SourcePath = path
	return &StaticDocument{
		Document:   doc,
		sourceBase: sourceBase,
		targetBase: targetBase,
	}
}

// FullSourcePath returns the absolute-ish path of the backing source file.
func (s *StaticDocument) FullSourcePath() string {
	return filepath.Join(s.sourceBase, filepath.FromSlash(s.SourcePath))
}

// PrepareTarget formats the target path template against the document's
// fields, resolves it under the target base and decides whether the target
// needs making: it does when the source is strictly newer than the target.
// A missing file counts as infinitely old, so a missing target always needs
// making and a missing source never forces one.
//
// As a side effect the target's parent directory is created (idempotently),
// even when no regeneration is needed.
func (s *StaticDocument) PrepareTarget(target string) (TargetDecision, error) {
	formatted, err := s.Format(target)
	if err != nil {
		return TargetDecision{}, fmt.Errorf("format target: %w", err)
	}
	targetPath := filepath.Join(s.targetBase, formatted)

	sourceTime, err := modTime(s.FullSourcePath())
	if err != nil {
		return TargetDecision{}, err
	}
	targetTime, err := modTime(targetPath)
	if err != nil {
		return TargetDecision{}, err
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0o750); err != nil {
		return TargetDecision{}, fmt.Errorf("create target directory: %w", err)
	}

	return TargetDecision{
		SourcePath: s.FullSourcePath(),
		TargetPath: targetPath,
		NeedsMake:  sourceTime.After(targetTime),
	}, nil
}

// Install copies the source file to the target when the freshness check says
// the target needs making, or unconditionally when force is set.
func (s *StaticDocument) Install(target string, force bool) error {
	dec, err := s.PrepareTarget(target)
	if err != nil {
		return err
	}
	if !dec.NeedsMake && !force {
		return nil
	}
	return copyFile(dec.SourcePath, dec.TargetPath)
}

// modTime returns the file's modification time. A missing file yields the zero
// time, which orders before every real timestamp. Any other stat failure
// propagates.
func modTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.ModTime(), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close target: %w", err)
	}
	return nil
}
