package handler

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"escp-service/internal/model"
	"escp-service/internal/utils"
)

func newBareWebSocketHandler() *WebSocketHandler {
	return &WebSocketHandler{
		connections: NewConnectionManager(),
		logger:      utils.NewServiceLogger(zap.NewNop(), "websocket-handler"),
	}
}

func TestSendMessage_ConcurrentUnregister(t *testing.T) {
	h := newBareWebSocketHandler()
	message := &WebSocketMessage{Type: "pong", Timestamp: time.Now()}

	for i := 0; i < 200; i++ {
		client := &Client{ID: "client", Send: make(chan []byte, 1)}
		h.connections.Register(client)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			h.sendMessage(client, message)
		}()
		go func() {
			defer wg.Done()
			h.connections.Unregister(client)
		}()
		wg.Wait()

		// drain until the closed channel reports done
		for range client.Send {
		}
		assert.True(t, client.isClosed())
	}
}

func TestSendMessage_AfterUnregister(t *testing.T) {
	h := newBareWebSocketHandler()
	client := &Client{ID: "gone", Send: make(chan []byte, 1)}
	h.connections.Register(client)
	h.connections.Unregister(client)

	require.NotPanics(t, func() {
		h.sendMessage(client, &WebSocketMessage{Type: "pong"})
	})
	_, ok := <-client.Send
	assert.False(t, ok)

	// a second unregister is a no-op
	h.connections.Unregister(client)
}

func TestClient_EnqueueFullBuffer(t *testing.T) {
	client := &Client{ID: "slow", Send: make(chan []byte, 1)}

	assert.True(t, client.enqueue([]byte("a")))
	assert.False(t, client.enqueue([]byte("b")))
	assert.Equal(t, []byte("a"), <-client.Send)

	client.close()
	client.close()
	assert.False(t, client.enqueue([]byte("c")))
}

func TestConnectionManager_ClientsBySubscription(t *testing.T) {
	cm := NewConnectionManager()
	all := &Client{ID: "all", Send: make(chan []byte, 1)}
	failures := &Client{ID: "failures", Send: make(chan []byte, 1)}
	failures.subscribe(model.EventJobFailed)
	cm.Register(all)
	cm.Register(failures)

	assert.Len(t, cm.Clients(model.EventJobFailed), 2)
	completed := cm.Clients(model.EventJobCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, "all", completed[0].ID)
	assert.Equal(t, 2, cm.GetStats().TotalConnections)
}

func TestOriginChecker(t *testing.T) {
	request := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws/jobs", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	open := originChecker(nil)
	assert.True(t, open(request("http://anywhere")))

	wildcard := originChecker([]string{"http://pos.local", "*"})
	assert.True(t, wildcard(request("http://anywhere")))

	listed := originChecker([]string{"http://pos.local"})
	assert.True(t, listed(request("http://pos.local")))
	assert.True(t, listed(request("")))
	assert.False(t, listed(request("http://anywhere")))
}
