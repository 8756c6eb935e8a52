// Package gateway delivers rendered webhook notifications to a downstream
// messaging system. The dispatch pipeline treats delivery as fire and
// forget: a gateway error is logged and counted by the caller, never
// surfaced to the webhook sender.
package gateway

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Message is one notification to deliver.
type Message struct {
	ID         string `json:"id"`
	Topic      string `json:"topic"`
	Body       string `json:"body"`
	EventLabel string `json:"event_label"`
	// Recipient is opaque routing context (the instance the webhook belongs
	// to); the gateway passes it through untouched.
	Recipient string `json:"recipient"`
}

// Gateway accepts rendered messages for delivery.
type Gateway interface {
	Send(ctx context.Context, msg Message) error
}

// NewMessage assigns a fresh delivery ID to a rendered notification.
func NewMessage(topic, body, label, recipient string) (Message, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Message{}, errors.Wrap(err, "cannot generate message ID")
	}
	return Message{
		ID:         id.String(),
		Topic:      topic,
		Body:       body,
		EventLabel: label,
		Recipient:  recipient,
	}, nil
}

// New builds a gateway from a URL: sqs:// and nats:// select the real
// backends, "log" selects the development gateway.
func New(url string) (Gateway, error) {
	switch {
	case url == "log":
		return &LogGateway{}, nil
	case strings.HasPrefix(url, "sqs://"):
		return NewSQS(url)
	case strings.HasPrefix(url, "nats://"):
		return NewNATS(url)
	}
	return nil, errors.Errorf("unsupported gateway URL %q", url)
}

// LogGateway writes messages to the service log instead of delivering them.
type LogGateway struct{}

// Send logs the message.
func (g *LogGateway) Send(_ context.Context, msg Message) error {
	log.WithFields(log.Fields{
		"id":    msg.ID,
		"topic": msg.Topic,
		"label": msg.EventLabel,
	}).Infof("would deliver: %s", msg.Body)
	return nil
}
