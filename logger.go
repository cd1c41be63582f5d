package genart

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/osuushi/genart/geom"
)

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger for genart and its geometry packages. By
// default nothing is logged. Generate installs a stderr logger when
// GENART_DEBUG is set.
//
// Pass nil to disable logging again.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
	geom.SetLogger(l)
}

func Logger() *slog.Logger {
	return loggerPtr.Load()
}
