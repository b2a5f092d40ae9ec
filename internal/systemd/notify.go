// Package systemd reports daemon lifecycle state to systemd when running
// under it. All calls are no-ops otherwise.
package systemd

import (
	"context"
	"log/slog"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
)

// NotifyReady signals that startup finished and the bridge is serving.
func NotifyReady(logger *slog.Logger) {
	sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		logger.Warn("systemd ready notification failed", "error", err)
		return
	}
	if sent {
		logger.Debug("systemd notified ready")
	}
}

// NotifyStopping signals that shutdown has begun.
func NotifyStopping(logger *slog.Logger) {
	if _, err := daemon.SdNotify(false, daemon.SdNotifyStopping); err != nil {
		logger.Warn("systemd stopping notification failed", "error", err)
	}
}

// StartWatchdog pings the systemd watchdog at half the configured interval
// until the context is cancelled. Returns immediately when no watchdog is
// configured for the unit.
func StartWatchdog(ctx context.Context, logger *slog.Logger) {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil || interval == 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog); err != nil {
					logger.Warn("systemd watchdog ping failed", "error", err)
				}
			}
		}
	}()
	logger.Info("systemd watchdog active", "interval", interval)
}
