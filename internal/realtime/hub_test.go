package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s *Session) Envelope {
	t.Helper()
	select {
	case frame := <-s.Outbound():
		var env Envelope
		require.NoError(t, json.Unmarshal(frame, &env))
		return env
	default:
		t.Fatal("expected a frame on the session queue")
		return Envelope{}
	}
}

func TestPublishReachesEverySessionInRoom(t *testing.T) {
	hub := NewHub()
	a := NewSession(1)
	b := NewSession(1)
	hub.Register(a)
	hub.Register(b)

	hub.Publish(1, EventNewMessage, map[string]string{"hello": "world"})

	for _, s := range []*Session{a, b} {
		env := drain(t, s)
		assert.Equal(t, EventNewMessage, env.Type)
		data, ok := env.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "world", data["hello"])
	}
}

func TestPublishToEmptyRoomIsDropped(t *testing.T) {
	hub := NewHub()
	// No session for user 1; must not panic or leak anything
	hub.Publish(1, EventNewMessage, map[string]string{"hello": "world"})
	assert.Equal(t, 0, hub.SessionCount(1))
}

func TestPublishDoesNotCrossRooms(t *testing.T) {
	hub := NewHub()
	mine := NewSession(1)
	theirs := NewSession(2)
	hub.Register(mine)
	hub.Register(theirs)

	hub.Publish(1, EventNewMessage, "payload")

	drain(t, mine)
	select {
	case <-theirs.Outbound():
		t.Fatal("event leaked into another user's room")
	default:
	}
}

func TestUnregisterCleansRoom(t *testing.T) {
	hub := NewHub()
	s := NewSession(1)
	hub.Register(s)
	require.Equal(t, 1, hub.SessionCount(1))

	hub.Unregister(s)
	assert.Equal(t, 0, hub.SessionCount(1))

	_, open := <-s.Outbound()
	assert.False(t, open, "unregister closes the session queue")
}

func TestPublishDropsStalledSessions(t *testing.T) {
	hub := NewHub()
	stalled := NewSession(1)
	hub.Register(stalled)

	// Fill the queue; the next publish cannot enqueue and must evict the
	// session instead of blocking.
	for i := 0; i < cap(stalled.send); i++ {
		hub.Publish(1, EventNewMessage, i)
	}
	require.Equal(t, 1, hub.SessionCount(1))

	hub.Publish(1, EventNewMessage, "overflow")
	assert.Equal(t, 0, hub.SessionCount(1))
}
