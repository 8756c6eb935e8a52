package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage("builds", "Build Passed", "push", "instance-1")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "builds", msg.Topic)
	assert.Equal(t, "push", msg.EventLabel)
	assert.Equal(t, "instance-1", msg.Recipient)

	other, err := NewMessage("builds", "Build Passed", "push", "instance-1")
	require.NoError(t, err)
	assert.NotEqual(t, msg.ID, other.ID)
}

func TestNewSelectsBackend(t *testing.T) {
	gw, err := New("log")
	require.NoError(t, err)
	assert.IsType(t, &LogGateway{}, gw)

	_, err = New("carrier-pigeon://loft")
	assert.Error(t, err)
}

func TestSubjectFor(t *testing.T) {
	for _, tc := range []struct {
		topic, subject string
	}{
		{"builds", "webhooks.builds"},
		{"GoSquared - example.com", "webhooks.gosquared-example-com"},
		{"Live chat session - Support", "webhooks.live-chat-session-support"},
		{"---", "webhooks.default"},
		{"", "webhooks.default"},
	} {
		assert.Equal(t, tc.subject, subjectFor(tc.topic), "topic %q", tc.topic)
	}
}
