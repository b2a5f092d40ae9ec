package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
)

// JournalHandler is a slog.Handler that forwards records to the systemd
// journal.
type JournalHandler struct {
	level slog.Level
	attrs []slog.Attr
}

// NewJournalHandler creates a journal handler.
func NewJournalHandler(level slog.Level) *JournalHandler {
	return &JournalHandler{level: level}
}

// IsJournalAvailable reports whether the systemd journal socket is reachable.
func IsJournalAvailable() bool {
	return journal.Enabled()
}

// Enabled implements slog.Handler.
func (h *JournalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle sends the record to the journal.
func (h *JournalHandler) Handle(_ context.Context, r slog.Record) error {
	priority := mapLevelToPriority(r.Level)

	fields := map[string]string{
		"SYSLOG_IDENTIFIER": "depthai-bridge",
	}
	for _, attr := range h.attrs {
		addAttrToFields(fields, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		addAttrToFields(fields, attr)
		return true
	})

	return journal.Send(r.Message, priority, fields)
}

// WithAttrs implements slog.Handler.
func (h *JournalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &JournalHandler{level: h.level, attrs: merged}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (h *JournalHandler) WithGroup(string) slog.Handler { return h }

func mapLevelToPriority(level slog.Level) journal.Priority {
	switch {
	case level >= slog.LevelError:
		return journal.PriErr
	case level >= slog.LevelWarn:
		return journal.PriWarning
	case level >= slog.LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

func addAttrToFields(fields map[string]string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	key := strings.ToUpper(attr.Key)
	fields[key] = fmt.Sprint(attr.Value.Any())
}
