package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeySlug       = "slug"
	KeyLang       = "lang"
	KeyURL        = "url"
	KeyParent     = "parent"
	KeyPlugin     = "plugin"
	KeySignal     = "signal"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Lang(l string) slog.Attr         { return slog.String(KeyLang, l) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Parent(u string) slog.Attr       { return slog.String(KeyParent, u) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Signal(name string) slog.Attr    { return slog.String(KeySignal, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
