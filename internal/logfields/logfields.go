package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPage        = "page"
	KeyClass       = "class"
	KeyModule      = "module"
	KeyPath        = "path"
	KeyStage       = "stage"
	KeyCount       = "count"
	KeyDurationMS  = "duration_ms"
	KeyDeclaration = "declaration"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Page(name string) slog.Attr         { return slog.String(KeyPage, name) }
func Class(name string) slog.Attr        { return slog.String(KeyClass, name) }
func Module(name string) slog.Attr       { return slog.String(KeyModule, name) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func Declaration(d string) slog.Attr     { return slog.String(KeyDeclaration, d) }
func Duration(d time.Duration) slog.Attr { return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
