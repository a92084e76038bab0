package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voting-service/internal/events"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	hub := NewHub()
	go hub.Run()

	upgrader := Upgrader([]string{"http://localhost:3000"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(upgrader, w, r)
	}))
	t.Cleanup(func() {
		srv.Close()
		hub.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial(url, header)
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastsEvents(t *testing.T) {
	hub, srv := startHub(t)

	a, _, err := dial(t, srv, "http://localhost:3000")
	require.NoError(t, err)
	defer a.Close()
	b, _, err := dial(t, srv, "")
	require.NoError(t, err)
	defer b.Close()
	waitForClients(t, hub, 2)

	require.NoError(t, hub.Publish(context.Background(), events.Event{Type: events.TypeVoteCast, CandidateID: 3, Rows: 1}))

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var e events.Event
		require.NoError(t, json.Unmarshal(data, &e))
		assert.Equal(t, events.TypeVoteCast, e.Type)
		assert.Equal(t, uint(3), e.CandidateID)
	}
}

func TestHub_UnregistersClosedClients(t *testing.T) {
	hub, srv := startHub(t)

	conn, _, err := dial(t, srv, "")
	require.NoError(t, err)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	_, srv := startHub(t)

	_, resp, err := dial(t, srv, "https://evil.example.com")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHub_PublishAfterClose(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	require.NoError(t, hub.Close())

	err := hub.Publish(context.Background(), events.Event{Type: events.TypeVoteCast})
	assert.ErrorIs(t, err, ErrHubStopped)
}
