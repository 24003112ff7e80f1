// Package logging provides categorized file-based logging for showcase.
// The terminal belongs to the gallery UI, so logs are written to
// .showcase/logs/ and only when debug mode is on; otherwise every logger is
// a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config resolution
	CategoryDataset Category = "dataset" // Dataset decoding and inspection
	CategoryGallery Category = "gallery" // Ingestion, filtering, paging
	CategoryUI      Category = "ui"      // Bubbletea model events
	CategoryWatcher Category = "watcher" // Dataset file watching
)

// Options controls Initialize. It mirrors config.LoggingConfig so this
// package does not depend on config.
type Options struct {
	DebugMode  bool
	Level      string
	JSONFormat bool
	Categories map[string]bool
}

// Logger is a category-scoped printf-style logger.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	mu        sync.RWMutex
	root      = zap.NewNop()
	opts      Options
	logPath   string
	sessionID string
	loggers   = make(map[Category]*Logger)
)

// Initialize sets up the log file under dir. With debug mode off it is a
// silent no-op and nothing is created on disk.
func Initialize(dir string, o Options) error {
	mu.Lock()
	defer mu.Unlock()

	resetLocked()
	opts = o
	if !o.DebugMode {
		return nil
	}
	if dir == "" {
		return fmt.Errorf("logs directory required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+"_showcase.log")

	cfg := zap.NewProductionConfig()
	if !o.JSONFormat {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Sampling = nil
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(o.Level))
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	sessionID = uuid.NewString()
	root = l.With(zap.String("session", sessionID))
	logPath = path

	root.Named(string(CategoryBoot)).Sugar().Infof("logging initialized at %s (level %s)", path, cfg.Level.String())
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsDebugMode returns whether logs are being written.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return opts.DebugMode
}

// LogPath returns the active log file, or "" when logging is off.
func LogPath() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

// SessionID identifies this run in the log file.
func SessionID() string {
	mu.RLock()
	defer mu.RUnlock()
	return sessionID
}

// IsCategoryEnabled returns whether a specific category is enabled.
// Categories absent from the filter are enabled.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return categoryEnabledLocked(category)
}

func categoryEnabledLocked(category Category) bool {
	if !opts.DebugMode {
		return false
	}
	enabled, exists := opts.Categories[string(category)]
	return !exists || enabled
}

// Get returns (or creates) a logger for the given category.
// Disabled categories get a no-op logger.
func Get(category Category) *Logger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	base := zap.NewNop()
	if categoryEnabledLocked(category) {
		base = root.Named(string(category))
	}
	l := &Logger{category: category, sugar: base.Sugar()}
	loggers[category] = l
	return l
}

// Debug logs at debug level.
func (l *Logger) Debug(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }

// Info logs at info level.
func (l *Logger) Info(format string, args ...interface{}) { l.sugar.Infof(format, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }

// Error logs at error level.
func (l *Logger) Error(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// With returns a child logger carrying structured key/value pairs.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

// CloseAll flushes the log file and returns every logger to no-op.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	resetLocked()
}

func resetLocked() {
	_ = root.Sync()
	root = zap.NewNop()
	opts = Options{}
	logPath = ""
	sessionID = ""
	loggers = make(map[Category]*Logger)
}

// Boot logs to the boot category
func Boot(format string, args ...interface{}) { Get(CategoryBoot).Info(format, args...) }

// BootWarn logs a warning to the boot category
func BootWarn(format string, args ...interface{}) { Get(CategoryBoot).Warn(format, args...) }

// Dataset logs to the dataset category
func Dataset(format string, args ...interface{}) { Get(CategoryDataset).Info(format, args...) }

// DatasetWarn logs a warning to the dataset category
func DatasetWarn(format string, args ...interface{}) { Get(CategoryDataset).Warn(format, args...) }

// Gallery logs to the gallery category
func Gallery(format string, args ...interface{}) { Get(CategoryGallery).Info(format, args...) }

// GalleryDebug logs debug to the gallery category
func GalleryDebug(format string, args ...interface{}) { Get(CategoryGallery).Debug(format, args...) }

// UI logs to the ui category
func UI(format string, args ...interface{}) { Get(CategoryUI).Info(format, args...) }

// UIDebug logs debug to the ui category
func UIDebug(format string, args ...interface{}) { Get(CategoryUI).Debug(format, args...) }

// Watcher logs to the watcher category
func Watcher(format string, args ...interface{}) { Get(CategoryWatcher).Info(format, args...) }

// WatcherError logs an error to the watcher category
func WatcherError(format string, args ...interface{}) { Get(CategoryWatcher).Error(format, args...) }

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration at debug level
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs a warning if the duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
