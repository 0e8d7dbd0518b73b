package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyRule       = "rule"
	KeyPattern    = "pattern"
	KeyPath       = "path"
	KeySource     = "source"
	KeyTarget     = "target"
	KeyTemplate   = "template"
	KeyDocuments  = "documents"
	KeyPage       = "page"
	KeyPages      = "pages"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Rule(name string) slog.Attr      { return slog.String(KeyRule, name) }
func Pattern(p string) slog.Attr      { return slog.String(KeyPattern, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func Target(p string) slog.Attr       { return slog.String(KeyTarget, p) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Documents(n int) slog.Attr       { return slog.Int(KeyDocuments, n) }
func Page(n int) slog.Attr            { return slog.Int(KeyPage, n) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
