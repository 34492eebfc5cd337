package logfields

import "log/slog"

// Canonical log field names shared by every package.
const (
	KeyOpType   = "op_type"
	KeyOperator = "operator"
	KeyPath     = "path"
	KeyVersion  = "version"
	KeyBranch   = "branch"
	KeyRef      = "ref"
	KeyTemplate = "template"
	KeyCount    = "count"
	KeyDuration = "duration_ms"
	KeyError    = "error"
)

func OpType(t string) slog.Attr       { return slog.String(KeyOpType, t) }
func Operator(o string) slog.Attr     { return slog.String(KeyOperator, o) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Branch(b string) slog.Attr       { return slog.String(KeyBranch, b) }
func Ref(r string) slog.Attr          { return slog.String(KeyRef, r) }
func Template(n string) slog.Attr     { return slog.String(KeyTemplate, n) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDuration, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
