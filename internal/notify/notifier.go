package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// PublishFunc is the callback signature for publishing to NATS. Injected into
// consumers so they stay testable without a broker.
type PublishFunc func(subject string, data []byte) error

// SubjectTurnCompleted carries one answered chat turn for downstream
// consumers (analytics, transcript archival).
const SubjectTurnCompleted = "datebook.chat.turn.completed"

// TurnCompletedEvent is the payload published after each answered turn.
type TurnCompletedEvent struct {
	UserKey    string    `json:"user_key"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Notifier owns the NATS connection for outbound turn events.
type Notifier struct {
	nc *nats.Conn
}

func New(natsURL string) (*Notifier, error) {
	nc, err := nats.Connect(natsURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			slog.Info("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Notifier{nc: nc}, nil
}

// Publish sends a message to NATS.
func (n *Notifier) Publish(subject string, data []byte) error {
	return n.nc.Publish(subject, data)
}

// Close drains and closes the NATS connection.
func (n *Notifier) Close() {
	n.nc.Drain()
}

// PublishTurnCompleted marshals and publishes a turn event through the given
// publish func. Failures are logged, never fatal: the user already has their
// answer.
func PublishTurnCompleted(publish PublishFunc, evt TurnCompletedEvent) {
	if publish == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		slog.Error("notify: failed to marshal turn event", "error", err)
		return
	}
	if err := publish(SubjectTurnCompleted, payload); err != nil {
		slog.Warn("notify: failed to publish turn event",
			"subject", SubjectTurnCompleted,
			"user_key", evt.UserKey,
			"error", err,
		)
	}
}
