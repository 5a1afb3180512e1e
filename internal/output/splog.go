// Package output provides console and file logging for repo-uploader.
package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// kindKey is the record attribute selecting the console style of a message
const kindKey = "kind"

// Message kinds
const (
	kindCommand = "command"
	kindSuccess = "success"
)

// simpleHandler is a custom slog handler that writes messages without timestamps or level prefixes.
// Warnings and errors go to errWriter, everything else to writer.
type simpleHandler struct {
	writer    io.Writer
	errWriter io.Writer
	out       styles
	errOut    styles
	debugMode bool
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	// Debug messages only enabled in debug mode
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return true
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	var kind string
	record.Attrs(func(a slog.Attr) bool {
		if a.Key == kindKey {
			kind = a.Value.String()
			return false
		}
		return true
	})

	msg := record.Message
	w := h.writer
	switch {
	case record.Level >= slog.LevelError:
		w = h.errWriter
		msg = h.errOut.err.Render("❌ " + msg)
	case record.Level >= slog.LevelWarn:
		w = h.errWriter
		msg = h.errOut.warn.Render("⚠️  " + msg)
	case kind == kindCommand:
		msg = h.out.command.Render("+ " + msg)
	case kind == kindSuccess:
		msg = h.out.success.Render(msg)
	}
	_, err := fmt.Fprintln(w, msg)
	return err
}

func (h *simpleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// createLumberjackLogger creates a lumberjack logger with configuration from environment variables
func createLumberjackLogger(logFilePath string) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1,     // 1MB (in megabytes) - default
		MaxBackups: 2,     // Keep 2 old files - default
		MaxAge:     30,    // Keep for 30 days - default
		Compress:   false, // Never compress logs - default
	}

	if maxSizeStr := os.Getenv("REPO_UPLOADER_LOG_MAX_SIZE"); maxSizeStr != "" {
		if maxSize, err := strconv.Atoi(maxSizeStr); err == nil && maxSize > 0 {
			config.MaxSize = maxSize
		}
	}

	if maxBackupsStr := os.Getenv("REPO_UPLOADER_LOG_MAX_BACKUPS"); maxBackupsStr != "" {
		if maxBackups, err := strconv.Atoi(maxBackupsStr); err == nil && maxBackups >= 0 {
			config.MaxBackups = maxBackups
		}
	}

	if maxAgeStr := os.Getenv("REPO_UPLOADER_LOG_MAX_AGE"); maxAgeStr != "" {
		if maxAge, err := strconv.Atoi(maxAgeStr); err == nil && maxAge > 0 {
			config.MaxAge = maxAge
		}
	}

	return config
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// Options configures a Splog
type Options struct {
	// Stdout receives info and debug messages (default os.Stdout)
	Stdout io.Writer
	// Stderr receives warnings and errors (default os.Stderr)
	Stderr io.Writer
	// LogFile enables rotating file logging when set
	LogFile string
	// Debug enables debug messages on the console
	Debug bool
}

// Splog provides structured logging and output
type Splog struct {
	logger    *slog.Logger
	logWriter io.WriteCloser // Lumberjack logger for file logging
}

// NewSplog creates a new splog instance with console-only logging.
// Debug messages are enabled when the DEBUG environment variable is set.
func NewSplog() *Splog {
	splog, _ := NewSplogWithOptions(Options{Debug: os.Getenv("DEBUG") != ""})
	return splog
}

// NewSplogWithOptions creates a new splog instance with optional file logging
func NewSplogWithOptions(opts Options) (*Splog, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	splog := &Splog{}

	handlers := []slog.Handler{&simpleHandler{
		writer:    opts.Stdout,
		errWriter: opts.Stderr,
		out:       newStyles(opts.Stdout),
		errOut:    newStyles(opts.Stderr),
		debugMode: opts.Debug,
	}}

	if opts.LogFile != "" {
		logDir := filepath.Dir(opts.LogFile)
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		lumberjackLogger := createLumberjackLogger(opts.LogFile)
		splog.logWriter = lumberjackLogger

		// File logs carry timestamps and levels
		fileHandler := slog.NewTextHandler(lumberjackLogger, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		})
		handlers = append(handlers, fileHandler)
	}

	splog.logger = slog.New(&multiHandler{handlers: handlers})
	return splog, nil
}

func (s *Splog) logMessage(level slog.Level, msg string, attrs ...any) {
	s.logger.Log(context.Background(), level, msg, attrs...)
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Info writes an info message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Info(format string, args ...interface{}) {
	s.logMessage(slog.LevelInfo, sprintf(format, args...))
}

// Command echoes a command line before it runs
func (s *Splog) Command(line string) {
	s.logMessage(slog.LevelInfo, line, kindKey, kindCommand)
}

// Success writes a success message
func (s *Splog) Success(format string, args ...interface{}) {
	s.logMessage(slog.LevelInfo, sprintf(format, args...), kindKey, kindSuccess)
}

// Warn writes a warning message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Warn(format string, args ...interface{}) {
	s.logMessage(slog.LevelWarn, sprintf(format, args...))
}

// Error writes an error message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Error(format string, args ...interface{}) {
	s.logMessage(slog.LevelError, sprintf(format, args...))
}

// Debug writes a debug message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Debug(format string, args ...interface{}) {
	s.logMessage(slog.LevelDebug, sprintf(format, args...))
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
