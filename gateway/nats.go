package gateway

import (
	"context"
	"encoding/json"
	"strings"

	nats "github.com/nats-io/go-nats"
	"github.com/pkg/errors"
)

const subjectPrefix = "webhooks"

// NATSGateway publishes messages on a NATS subject derived from the topic.
type NATSGateway struct {
	conn *nats.Conn
}

// NewNATS connects to the NATS server at the given URL.
func NewNATS(url string) (*NATSGateway, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot connect to NATS at %s", url)
	}
	return &NATSGateway{conn: conn}, nil
}

// Send publishes one message, JSON encoded, on webhooks.<topic>.
func (g *NATSGateway) Send(_ context.Context, msg Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrapf(err, "cannot marshal message %s", msg.ID)
	}
	if err := g.conn.Publish(subjectFor(msg.Topic), raw); err != nil {
		return errors.Wrapf(err, "cannot publish message %s", msg.ID)
	}
	return nil
}

// Close drains the connection.
func (g *NATSGateway) Close() {
	g.conn.Close()
}

// subjectFor turns a free-form topic into a valid NATS subject token:
// lowercased, with runs of anything outside [a-z0-9] collapsed to a dash.
func subjectFor(topic string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(topic) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		} else {
			dash = true
		}
	}
	if b.Len() == 0 {
		return subjectPrefix + ".default"
	}
	return subjectPrefix + "." + b.String()
}
