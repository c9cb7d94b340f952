package trigger

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/nmm-portal/nmm-api/pkg/circuitbreaker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Call(t *testing.T) {
	var received Event
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	n := NewNotifier(server.URL, server.Client())
	require.True(t, n.Enabled())

	err := n.Call(context.Background(), Event{Type: "user.registered", Payload: map[string]string{"id": "u1"}})
	require.NoError(t, err)
	assert.Equal(t, "user.registered", received.Type)
}

func TestNotifier_Disabled(t *testing.T) {
	var n *Notifier
	assert.False(t, n.Enabled())
	assert.False(t, NewNotifier("", nil).Enabled())

	// no URL: must not panic or dial out
	NewNotifier("", nil).CallAsync("user.registered", nil)
}

func TestNotifier_BreakerOpensOnServerErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	n := NewNotifier(server.URL, server.Client())
	event := Event{Type: "ticket.created"}

	for i := 0; i < 3; i++ {
		err := n.Call(context.Background(), event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	}

	err := n.Call(context.Background(), event)
	assert.True(t, circuitbreaker.IsOpen(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}
