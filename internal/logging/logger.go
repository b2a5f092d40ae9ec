// Package logging sets up the slog-based logging system: per-module loggers
// with runtime-adjustable levels, a ring buffer of recent entries for the
// HTTP API, and journald output when running under systemd.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

const defaultBufferSize = 500

var (
	moduleLoggers   = make(map[string]*slog.Logger)
	moduleLevelVars = make(map[string]*slog.LevelVar)
	globalConfig    Config
	globalLevelVar  = &slog.LevelVar{}
	isInitialized   bool
	mutex           sync.RWMutex
	logBuffer       *RingBuffer
)

// Config represents logging configuration.
type Config struct {
	Level   string            `toml:"level"`
	Format  string            `toml:"format"`
	Modules map[string]string `toml:"modules"`
}

// Initialize sets up the logging system and recreates any module loggers
// created before configuration was available.
func Initialize(config Config) {
	mutex.Lock()
	defer mutex.Unlock()

	globalConfig = config
	isInitialized = true
	logBuffer = NewRingBuffer(defaultBufferSize)

	globalLevel := parseLevel(config.Level)
	globalLevelVar.Set(globalLevel)

	for module, levelVar := range moduleLevelVars {
		levelVar.Set(moduleLevel(config, module))
		handler := createHandler(config.Format, levelVar)
		moduleLoggers[module] = slog.New(handler).With("module", module)
	}

	slog.SetDefault(slog.New(createHandler(config.Format, globalLevelVar)))
}

// GetLogger returns a logger for the specified module, creating it if needed.
func GetLogger(module string) *slog.Logger {
	mutex.RLock()
	if logger, exists := moduleLoggers[module]; exists {
		mutex.RUnlock()
		return logger
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()
	if logger, exists := moduleLoggers[module]; exists {
		return logger
	}

	levelVar := &slog.LevelVar{}
	format := "text"
	if isInitialized {
		levelVar.Set(moduleLevel(globalConfig, module))
		format = globalConfig.Format
	}

	logger := slog.New(createHandler(format, levelVar)).With("module", module)
	moduleLoggers[module] = logger
	moduleLevelVars[module] = levelVar
	return logger
}

// GetBuffer returns the ring buffer of recent log entries, or nil before
// Initialize.
func GetBuffer() *RingBuffer {
	mutex.RLock()
	defer mutex.RUnlock()
	return logBuffer
}

func moduleLevel(config Config, module string) slog.Level {
	level := parseLevel(config.Level)
	if levelStr, exists := config.Modules[module]; exists {
		level = parseLevel(levelStr)
	}
	return level
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// createHandler builds the handler chain: stdout (text or json), the ring
// buffer, and journald when available.
func createHandler(format string, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	var stdout slog.Handler
	if format == "json" {
		stdout = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		stdout = slog.NewTextHandler(os.Stdout, opts)
	}

	handlers := []slog.Handler{stdout}
	if logBuffer != nil {
		handlers = append(handlers, newBufferHandler(logBuffer, level))
	}
	if IsJournalAvailable() {
		handlers = append(handlers, NewJournalHandler(slog.LevelInfo))
	}
	if len(handlers) == 1 {
		return stdout
	}
	return NewMultiHandler(handlers...)
}
