// Package fileset discovers source files under a base directory.
//
// A Lister walks the source tree once per build run and memoizes the listing;
// pattern matching for build rules runs against that in-memory list instead of
// hitting the filesystem repeatedly.
package fileset

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"sync"

	"git.home.luguber.info/inful/websmith/internal/logfields"
)

// Match is one file that matched a discovery pattern. Groups holds the values
// of the pattern's named capture groups.
type Match struct {
	Path   string
	Groups map[string]string
}

// Lister produces the file listing for a source tree.
type Lister struct {
	root   string
	logger *slog.Logger

	once  sync.Once
	files []string
	err   error
}

// NewLister creates a Lister rooted at root.
func NewLister(root string) *Lister {
	return &Lister{
		root:   root,
		logger: slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (l *Lister) WithLogger(logger *slog.Logger) *Lister {
	l.logger = logger
	return l
}

// Root returns the source base directory.
func (l *Lister) Root() string { return l.root }

// Files returns every file path under the root, relative to it and in walk
// order. The listing is computed once and memoized for the Lister's lifetime.
func (l *Lister) Files() ([]string, error) {
	l.once.Do(func() {
		l.err = filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(l.root, path)
			if err != nil {
				return err
			}
			l.files = append(l.files, filepath.ToSlash(rel))
			return nil
		})
		if l.err != nil {
			l.err = fmt.Errorf("walk source tree %s: %w", l.root, l.err)
			return
		}
		l.logger.Debug("Listed source files", logfields.Path(l.root), logfields.Documents(len(l.files)))
	})
	return l.files, l.err
}

// FindByPattern returns a Match for every listed file the pattern matches.
// The pattern is unanchored, searching anywhere in the relative path, and its
// named capture groups populate Match.Groups.
func (l *Lister) FindByPattern(pattern *regexp.Regexp) ([]Match, error) {
	files, err := l.Files()
	if err != nil {
		return nil, err
	}

	names := pattern.SubexpNames()
	var matches []Match
	for _, f := range files {
		sub := pattern.FindStringSubmatch(f)
		if sub == nil {
			continue
		}
		groups := make(map[string]string)
		for i, name := range names {
			if i == 0 || name == "" {
				continue
			}
			groups[name] = sub[i]
		}
		matches = append(matches, Match{Path: f, Groups: groups})
	}
	return matches, nil
}
