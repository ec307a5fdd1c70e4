package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customlog "github.com/wildrobo/teleop/pkg/log"
)

func TestPublisherDeliversEnvelope(t *testing.T) {
	pub, err := NewPublisher("tcp://127.0.0.1:*", customlog.NewNopLogger())
	require.NoError(t, err)
	defer pub.Close()

	ctx, err := zmq4.NewContext()
	require.NoError(t, err)
	defer ctx.Term()

	sub, err := ctx.NewSocket(zmq4.SUB)
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, sub.Connect(pub.Endpoint()))
	require.NoError(t, sub.SetSubscribe(Topic))
	require.NoError(t, sub.SetRcvtimeo(2*time.Second))

	// PUB/SUB joins are asynchronous; keep publishing until the
	// subscriber sees a message or the deadline passes.
	deadline := time.Now().Add(2 * time.Second)
	var topic string
	for time.Now().Before(deadline) {
		require.NoError(t, pub.PublishJSON("MOTOR_SPEEDS", []float64{1, 0, -1, 0}))
		sub.SetRcvtimeo(100 * time.Millisecond)
		topic, err = sub.Recv(0)
		if err == nil {
			break
		}
	}
	require.NoError(t, err, "subscriber never received a message")
	assert.Equal(t, Topic, topic)

	payload, err := sub.RecvBytes(0)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(payload, &env))
	assert.Equal(t, "MOTOR_SPEEDS", env.Type)
	assert.NotZero(t, env.Timestamp)
}

func TestPublisherClosed(t *testing.T) {
	pub, err := NewPublisher("tcp://127.0.0.1:*", customlog.NewNopLogger())
	require.NoError(t, err)

	pub.Close()
	assert.ErrorIs(t, pub.Publish([]byte("x")), ErrPublisherClosed)

	// Closing twice is harmless.
	pub.Close()
}
