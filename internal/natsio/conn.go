package natsio

import (
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Conn is the slice of the NATS client the bridge needs. *nats.Conn
// satisfies it; tests substitute fakes.
type Conn interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// Connect dials a NATS server with reconnect handling wired into the logger.
func Connect(url, name string, logger *slog.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "nats")

	return nats.Connect(url,
		nats.Name(name),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	)
}
