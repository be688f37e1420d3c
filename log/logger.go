// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"math/big"
	"os"
	"sync/atomic"

	"github.com/holiman/uint256"
)

// Logger is the leveled key/value logger used across the ledger.
type Logger interface {
	With(ctx ...any) Logger
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
}

type logger struct {
	inner *slog.Logger
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{l.inner.With(normalize(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.inner.Debug(msg, normalize(ctx)...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.inner.Info(msg, normalize(ctx)...)
}

func (l *logger) Warn(msg string, ctx ...any) {
	l.inner.Warn(msg, normalize(ctx)...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.inner.Error(msg, normalize(ctx)...)
}

// normalize stringifies value types slog renders poorly.
func normalize(ctx []any) []any {
	out := make([]any, len(ctx))
	for i, v := range ctx {
		switch val := v.(type) {
		case *big.Int:
			out[i] = val.String()
		case *uint256.Int:
			out[i] = val.Dec()
		default:
			out[i] = v
		}
	}
	return out
}

var root atomic.Pointer[logger]

func init() {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	root.Store(&logger{slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))})
}

// SetDefault replaces the root logger.
func SetDefault(handler slog.Handler) {
	root.Store(&logger{slog.New(handler)})
}

// WithContext returns a logger carrying the given context pairs.
func WithContext(ctx ...any) Logger {
	return root.Load().With(ctx...)
}

// Debug logs at debug level via the root logger.
func Debug(msg string, ctx ...any) {
	root.Load().Debug(msg, ctx...)
}

// Info logs at info level via the root logger.
func Info(msg string, ctx ...any) {
	root.Load().Info(msg, ctx...)
}

// Warn logs at warn level via the root logger.
func Warn(msg string, ctx ...any) {
	root.Load().Warn(msg, ctx...)
}

// Error logs at error level via the root logger.
func Error(msg string, ctx ...any) {
	root.Load().Error(msg, ctx...)
}

// DiscardHandler returns a no-op handler, handy in tests.
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

type discardHandler struct{}

func (h *discardHandler) Handle(_ context.Context, _ slog.Record) error { return nil }

func (h *discardHandler) Enabled(_ context.Context, _ slog.Level) bool { return false }

func (h *discardHandler) WithGroup(_ string) slog.Handler { return h }

func (h *discardHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
