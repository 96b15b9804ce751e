package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyScanID     = "scan_id"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyGroup      = "group"
	KeyOp         = "op"
	KeyEventKind  = "event_kind"
	KeyEdge       = "edge"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyJobID      = "job_id"
	KeyAddr       = "addr"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func ScanID(id string) slog.Attr      { return slog.String(KeyScanID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Group(g string) slog.Attr        { return slog.String(KeyGroup, g) }
func Op(op string) slog.Attr          { return slog.String(KeyOp, op) }
func EventKind(k string) slog.Attr    { return slog.String(KeyEventKind, k) }
func Edge(e string) slog.Attr         { return slog.String(KeyEdge, e) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func JobID(id string) slog.Attr       { return slog.String(KeyJobID, id) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
