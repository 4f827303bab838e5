// Package logger provides the structured logging interface used across headcount.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Logger is the leveled, field-based logger every headcount component takes.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)

	// Named returns a logger tagging every record with component=name.
	Named(name string) Logger
}

// Field is one structured key/value attached to a record.
type Field struct {
	Key   string
	Value interface{}
}

func String(key, val string) Field                 { return Field{Key: key, Value: val} }
func Int(key string, val int) Field                { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field        { return Field{Key: key, Value: val} }
func Duration(key string, val time.Duration) Field { return Field{Key: key, Value: val} }
func Error(err error) Field                        { return Field{Key: "error", Value: err} }

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"":        slog.LevelInfo,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

var (
	mu       sync.RWMutex
	global   Logger
	levelVar slog.LevelVar
)

type handlerLogger struct {
	sl         *slog.Logger
	withSource bool
}

func (l *handlerLogger) Named(name string) Logger {
	return &handlerLogger{sl: l.sl.With(slog.String("component", name)), withSource: l.withSource}
}

func (l *handlerLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelDebug, msg, fields)
}

func (l *handlerLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelInfo, msg, fields)
}

func (l *handlerLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelWarn, msg, fields)
}

func (l *handlerLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelError, msg, fields)
}

func (l *handlerLogger) emit(ctx context.Context, level slog.Level, msg string, fields []Field) {
	if !l.sl.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, 0, len(fields)+1)
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	if l.withSource {
		attrs = append(attrs, slog.String("source", callSite()))
	}
	l.sl.LogAttrs(ctx, level, msg, attrs...)
}

// callSite reports the code that called a Logger method as pkgdir/file.go:line.
// Frames: callSite, emit, the Logger method, its caller.
func callSite() string {
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		return "unknown:0"
	}
	return fmt.Sprintf("%s:%d", filepath.Join(filepath.Base(filepath.Dir(file)), filepath.Base(file)), line)
}

// Init installs a text logger on stdout.
func Init() error {
	return InitWithWriter(os.Stdout, "text")
}

// InitWithWriter installs the global logger on w. Format is "text" or "json".
// The CLI logs to stderr so command output on stdout stays machine readable.
func InitWithWriter(w io.Writer, format string) error {
	opts := &slog.HandlerOptions{Level: &levelVar}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}

	mu.Lock()
	global = &handlerLogger{sl: slog.New(h), withSource: true}
	mu.Unlock()
	return nil
}

// Nop returns a logger that discards everything. Library constructors default to it.
func Nop() Logger {
	return &handlerLogger{sl: slog.New(slog.DiscardHandler)}
}

// Get returns the global logger and panics before Init.
func Get() Logger {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		panic("logger not initialized. Call logger.Init() first")
	}
	return global
}

func Named(name string) Logger {
	return Get().Named(name)
}

// SetLevelString sets the global level from debug, info, warn/warning or error,
// ignoring case.
func SetLevelString(level string) error {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return fmt.Errorf("unknown log level: %s", level)
	}
	levelVar.Set(lvl)
	return nil
}
