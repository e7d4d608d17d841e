package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeyTarget     = "target"
	KeyRoot       = "root"
	KeyDepth      = "depth"
	KeyCount      = "count"
	KeyExpected   = "expected"
	KeyCopied     = "copied"
	KeyDurationMS = "duration_ms"
	KeyURL        = "url"
	KeySubject    = "subject"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Target(t string) slog.Attr        { return slog.String(KeyTarget, t) }
func Root(r string) slog.Attr          { return slog.String(KeyRoot, r) }
func Depth(d string) slog.Attr         { return slog.String(KeyDepth, d) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Expected(n int) slog.Attr         { return slog.Int(KeyExpected, n) }
func Copied(n int) slog.Attr           { return slog.Int(KeyCopied, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Subject(s string) slog.Attr       { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
