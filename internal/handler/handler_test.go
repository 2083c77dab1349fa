package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"escp-service/internal/config"
	"escp-service/internal/model"
	"escp-service/internal/protocol"
	"escp-service/internal/repository"
	"escp-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTransport struct {
	name    string
	sendErr error

	mu   sync.Mutex
	sent [][]byte
}

func (s *stubTransport) Open(ctx context.Context) error { return nil }

func (s *stubTransport) Send(ctx context.Context, data []byte) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, append([]byte(nil), data...))
	return nil
}

func (s *stubTransport) Close() error { return nil }

func (s *stubTransport) Name() string { return s.name }

func (s *stubTransport) Stats() protocol.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return protocol.Stats{SendCount: int64(len(s.sent)), IsConnected: true}
}

type testServer struct {
	engine *gin.Engine
	bus    *EventBus
	ws     *WebSocketHandler
}

func newTestServer(t *testing.T, transports ...protocol.Transport) *testServer {
	t.Helper()

	logger := zap.NewNop()
	cfg := &config.Config{
		App:     config.AppConfig{Name: "escp-service", Version: "test"},
		Printer: config.PrinterConfig{Pins: 24, CodePage: "cp437"},
	}

	bus := NewEventBus(logger)
	go bus.Start()

	printService := service.NewPrintService(cfg.Printer, transports, repository.NewJobRepository(10, logger), bus, logger)
	ws := NewWebSocketHandler(bus, nil, logger)

	t.Cleanup(func() {
		ws.Close()
		bus.Stop()
	})

	engine := gin.New()
	NewHealthHandler(printService, cfg, logger).RegisterRoutes(engine.Group(""))
	api := engine.Group("/api/v1")
	NewJobHandler(printService, logger).RegisterRoutes(api)
	NewVariantHandler(printService, logger).RegisterRoutes(api)
	ws.RegisterRoutes(engine.Group("/ws"))

	return &testServer{engine: engine, bus: bus, ws: ws}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

const helloJob = `{"pins":24,"directives":[{"op":"init"},{"op":"text","text":"Hi"}]}`

func TestSubmitJob(t *testing.T) {
	t.Parallel()

	printer := &stubTransport{name: "printer"}
	s := newTestServer(t, printer)

	code, env := s.do(t, http.MethodPost, "/api/v1/jobs", helloJob)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)

	var job model.PrintJob
	require.NoError(t, json.Unmarshal(env.Data, &job))
	assert.Equal(t, model.JobStatusSuccess, job.Status)
	assert.Equal(t, "ESC/P2", job.Variant)
	assert.Equal(t, 4, job.Bytes)
	require.Len(t, printer.sent, 1)
	assert.Equal(t, []byte{0x1b, 0x40, 'H', 'i'}, printer.sent[0])

	code, env = s.do(t, http.MethodGet, "/api/v1/jobs/"+job.ID.String(), "")
	require.Equal(t, http.StatusOK, code)
	var stored model.PrintJob
	require.NoError(t, json.Unmarshal(env.Data, &stored))
	assert.Equal(t, job.ID, stored.ID)

	code, env = s.do(t, http.MethodGet, "/api/v1/jobs/stats", "")
	require.Equal(t, http.StatusOK, code)
	var stats repository.JobStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.SuccessfulJobs)
}

func TestSubmitJob_Rejected(t *testing.T) {
	t.Parallel()

	printer := &stubTransport{name: "printer"}
	s := newTestServer(t, printer)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"bad pins", `{"pins":12,"directives":[{"op":"init"}]}`, "VALIDATION_ERROR"},
		{"no directives", `{"pins":9,"directives":[]}`, "VALIDATION_ERROR"},
		{"malformed", `{"pins":`, "BAD_REQUEST"},
		{"unknown op", `{"pins":9,"directives":[{"op":"staple"}]}`, "UNSUPPORTED_DIRECTIVE"},
		{"missing value", `{"pins":9,"directives":[{"op":"character_width"}]}`, "INVALID_PARAMETER"},
		{"unknown code page", `{"pins":9,"code_page":"ebcdic","directives":[{"op":"init"}]}`, "UNKNOWN_CODE_PAGE"},
		{"unencodable text", `{"pins":9,"directives":[{"op":"text","text":"日本"}]}`, "ENCODING_RANGE"},
	}

	for _, tt := range tests {
		code, env := s.do(t, http.MethodPost, "/api/v1/jobs", tt.body)
		assert.Equal(t, http.StatusBadRequest, code, tt.name)
		require.NotNil(t, env.Error, tt.name)
		assert.Equal(t, tt.code, env.Error.Code, tt.name)
	}

	assert.Empty(t, printer.sent, "rejected jobs never reach a transport")
}

func TestSubmitJob_TransportFailure(t *testing.T) {
	t.Parallel()

	s := newTestServer(t,
		&stubTransport{name: "good"},
		&stubTransport{name: "bad", sendErr: errors.New("paper out")},
	)

	code, env := s.do(t, http.MethodPost, "/api/v1/jobs", helloJob)
	require.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "TRANSPORT_FAILURE", env.Error.Code)

	var job model.PrintJob
	require.NoError(t, json.Unmarshal(env.Data, &job))
	assert.Equal(t, model.JobStatusFailed, job.Status)
	assert.Len(t, job.Results, 2)
}

func TestSubmitJob_NoTransports(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/api/v1/jobs", helloJob)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "NO_TRANSPORTS", env.Error.Code)
}

func TestPreviewJob(t *testing.T) {
	t.Parallel()

	printer := &stubTransport{name: "printer"}
	s := newTestServer(t, printer)

	code, env := s.do(t, http.MethodPost, "/api/v1/jobs/preview", helloJob)
	require.Equal(t, http.StatusOK, code)

	var preview model.PreviewResponse
	require.NoError(t, json.Unmarshal(env.Data, &preview))
	assert.Equal(t, "1b404869", preview.Hex)
	assert.Equal(t, 4, preview.Bytes)
	assert.Empty(t, printer.sent)
}

func TestGetJob(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &stubTransport{name: "printer"})

	code, _ := s.do(t, http.MethodGet, "/api/v1/jobs/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := s.do(t, http.MethodGet, "/api/v1/jobs/00000000-0000-0000-0000-000000000001", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "JOB_NOT_FOUND", env.Error.Code)
}

func TestListJobs(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &stubTransport{name: "printer"})
	for i := 0; i < 3; i++ {
		code, _ := s.do(t, http.MethodPost, "/api/v1/jobs", helloJob)
		require.Equal(t, http.StatusCreated, code)
	}

	code, env := s.do(t, http.MethodGet, "/api/v1/jobs?limit=2&status=success", "")
	require.Equal(t, http.StatusOK, code)
	var jobs []model.PrintJob
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	assert.Len(t, jobs, 2)

	code, _ = s.do(t, http.MethodGet, "/api/v1/jobs?status=lost", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodGet, "/api/v1/jobs?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPrintTestPage(t *testing.T) {
	t.Parallel()

	printer := &stubTransport{name: "printer"}
	s := newTestServer(t, printer)

	code, env := s.do(t, http.MethodPost, "/api/v1/testpage/astronomer?pins=9", "")
	require.Equal(t, http.StatusCreated, code)
	var job model.PrintJob
	require.NoError(t, json.Unmarshal(env.Data, &job))
	assert.Equal(t, "ESC/P", job.Variant)
	require.Len(t, printer.sent, 1)
	assert.True(t, bytes.HasPrefix(printer.sent[0], []byte{0x1b, 0x40}))

	code, env = s.do(t, http.MethodPost, "/api/v1/testpage/poster", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_PARAMETER", env.Error.Code)

	code, _ = s.do(t, http.MethodPost, "/api/v1/testpage/page?pins=x", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestVariants(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &stubTransport{name: "printer"})

	code, env := s.do(t, http.MethodGet, "/api/v1/variants/9", "")
	require.Equal(t, http.StatusOK, code)
	var info model.VariantInfo
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "ESC/P", info.Variant)
	assert.Equal(t, []string{"roman", "sans-serif"}, info.Typefaces)

	code, env = s.do(t, http.MethodGet, "/api/v1/variants/12", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "UNSUPPORTED_VARIANT", env.Error.Code)

	code, env = s.do(t, http.MethodGet, "/api/v1/variants", "")
	require.Equal(t, http.StatusOK, code)
	var infos []model.VariantInfo
	require.NoError(t, json.Unmarshal(env.Data, &infos))
	assert.Len(t, infos, 3)

	code, env = s.do(t, http.MethodGet, "/api/v1/transports", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"printer"`)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &stubTransport{name: "printer"})

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Checks["command_table_ESC/P2"].Status)
	assert.Contains(t, health.Checks, "transport_printer")

	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	empty := newTestServer(t)
	w = httptest.NewRecorder()
	empty.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	empty.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func readMessage(t *testing.T, conn *websocket.Conn) WebSocketMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg WebSocketMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestJobEventStream(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &stubTransport{name: "printer"})
	server := httptest.NewServer(s.engine)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws/jobs", nil)
	require.NoError(t, err)
	defer conn.Close()

	// a pong means the client is registered
	require.NoError(t, conn.WriteJSON(WebSocketMessage{Type: "ping"}))
	assert.Equal(t, "pong", readMessage(t, conn).Type)

	require.NoError(t, conn.WriteJSON(WebSocketMessage{
		Type: "subscribe",
		Data: map[string]interface{}{"topic": string(model.EventJobCompleted)},
	}))
	assert.Equal(t, "subscribed", readMessage(t, conn).Type)

	code, _ := s.do(t, http.MethodPost, "/api/v1/jobs", helloJob)
	require.Equal(t, http.StatusCreated, code)

	msg := readMessage(t, conn)
	assert.Equal(t, "job_event", msg.Type)
	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, string(model.EventJobCompleted), data["event_type"])

	require.NoError(t, conn.WriteJSON(WebSocketMessage{Type: "shout"}))
	assert.Equal(t, "error", readMessage(t, conn).Type)
}

func TestEventBus(t *testing.T) {
	t.Parallel()

	bus := NewEventBus(zap.NewNop())
	done := make(chan struct{})
	go func() {
		bus.Start()
		close(done)
	}()

	failures, cancel := bus.Subscribe(model.EventJobFailed)
	defer cancel()
	all, _ := bus.Subscribe()

	jobID := uuid.New()
	bus.Publish(model.NewJobEvent(model.EventJobStarted, jobID, "", nil))
	bus.Publish(model.NewJobEvent(model.EventJobFailed, jobID, "", model.JSONObject{"error": "x"}))

	got := <-failures
	assert.Equal(t, model.EventJobFailed, got.EventType)
	assert.Equal(t, "ERROR", got.Severity)

	assert.Equal(t, model.EventJobStarted, (<-all).EventType)
	assert.Equal(t, model.EventJobFailed, (<-all).EventType)

	bus.Stop()
	bus.Stop()
	<-done

	_, open := <-all
	assert.False(t, open, "subscriber channels close on stop")
	bus.Publish(model.NewJobEvent(model.EventJobStarted, jobID, "", nil))
}
