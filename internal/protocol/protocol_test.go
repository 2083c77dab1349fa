package protocol

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/google/gousb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"escp-service/internal/config"
)

func TestParseHexID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want gousb.ID
		ok   bool
	}{
		{"0x04b8", 0x04b8, true},
		{"04B8", 0x04b8, true},
		{" 0X0005 ", 0x0005, true},
		{"", 0, false},
		{"0x12345", 0, false},
		{"zz", 0, false},
	}

	for _, tt := range tests {
		tt := tt // per-iteration copy (pre-Go 1.22 loop semantics)
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := parseHexID(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTransport_Types(t *testing.T) {
	t.Parallel()

	logger := zap.NewNop()
	tests := []struct {
		cfg  config.TransportConfig
		want interface{}
	}{
		{config.TransportConfig{Name: "u", Type: config.TransportUSB, VendorID: "0x04b8", ProductID: "0x0005"}, &USBConnection{}},
		{config.TransportConfig{Name: "s", Type: config.TransportSerial, Port: "/dev/ttyS0", BaudRate: 9600, DataBits: 8, StopBits: 1, Parity: "none"}, &SerialConnection{}},
		{config.TransportConfig{Name: "t", Type: config.TransportTCP, Host: "localhost", TCPPort: 9100}, &TCPConnection{}},
		{config.TransportConfig{Name: "d", Type: config.TransportDebug}, &DebugConnection{}},
	}

	for _, tt := range tests {
		tr, err := NewTransport(tt.cfg, nil, logger)
		require.NoError(t, err)
		assert.IsType(t, tt.want, tr)
		assert.Equal(t, tt.cfg.Name, tr.Name())
	}
}

func TestNewTransport_Invalid(t *testing.T) {
	t.Parallel()

	logger := zap.NewNop()
	bad := []config.TransportConfig{
		{Name: "u", Type: config.TransportUSB, VendorID: "epson", ProductID: "0x0005"},
		{Name: "s", Type: config.TransportSerial, Port: "/dev/ttyS0", BaudRate: 1234, StopBits: 1},
		{Name: "s", Type: config.TransportSerial, Port: "/dev/ttyS0", BaudRate: 9600, StopBits: 1, Parity: "weird"},
		{Name: "t", Type: config.TransportTCP, Host: "localhost", TCPPort: 0},
		{Name: "x", Type: "parallel"},
	}

	for _, cfg := range bad {
		_, err := NewTransport(cfg, nil, logger)
		assert.Error(t, err, cfg.Name)
	}

	_, err := NewTransports(append([]config.TransportConfig{{Name: "d", Type: config.TransportDebug}}, bad[0]), nil, logger)
	assert.Error(t, err)
}

func TestDebugConnection_Send(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	var out bytes.Buffer
	dc := NewDebugConnection("debug", &out, zap.New(core))

	ctx := context.Background()
	assert.Error(t, dc.Send(ctx, []byte{0x1b, 0x40}), "send before open")

	require.NoError(t, dc.Open(ctx))
	require.NoError(t, dc.Send(ctx, []byte{0x1b, 0x40}))

	assert.True(t, strings.HasPrefix(out.String(), "00000000  1b 40"))
	require.Equal(t, 1, logs.FilterMessage("Debug transport received job").Len())

	stats := dc.Stats()
	assert.Equal(t, int64(2), stats.BytesWritten)
	assert.Equal(t, int64(1), stats.SendCount)
	assert.True(t, stats.IsConnected)

	require.NoError(t, dc.Close())
	assert.False(t, dc.Stats().IsConnected)
}

func TestDebugConnection_CancelledContext(t *testing.T) {
	t.Parallel()

	dc := NewDebugConnection("debug", nil, zap.NewNop())
	require.NoError(t, dc.Open(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, dc.Send(ctx, []byte{0x0c}), context.Canceled)
}

func TestTCPConnection_Send(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	addr := ln.Addr().(*net.TCPAddr)
	tc := NewTCPConnection(&TCPConfig{
		Name:    "lan",
		Host:    "127.0.0.1",
		Port:    addr.Port,
		Timeout: time.Second,
	}, zap.NewNop())

	ctx := context.Background()
	assert.Error(t, tc.Send(ctx, []byte{0x0c}), "send before open")

	require.NoError(t, tc.Open(ctx))
	require.NoError(t, tc.Send(ctx, []byte{0x1b, 0x40, 0x0c}))
	require.NoError(t, tc.Close())

	select {
	case data := <-received:
		assert.Equal(t, []byte{0x1b, 0x40, 0x0c}, data)
	case <-time.After(5 * time.Second):
		t.Fatal("print server received nothing")
	}

	assert.Equal(t, int64(3), tc.Stats().BytesWritten)
}

func TestTCPConnection_OpenFails(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	tc := NewTCPConnection(&TCPConfig{Name: "gone", Host: "127.0.0.1", Port: port, Timeout: time.Second}, zap.NewNop())
	assert.Error(t, tc.Open(context.Background()))
	assert.False(t, tc.Stats().IsConnected)
}

func TestSerialMode(t *testing.T) {
	t.Parallel()

	mode, err := serialMode(&SerialConfig{BaudRate: 19200, DataBits: 7, StopBits: 2, Parity: "even"})
	require.NoError(t, err)
	assert.Equal(t, 19200, mode.BaudRate)
	assert.Equal(t, 7, mode.DataBits)

	_, err = serialMode(&SerialConfig{BaudRate: 9600, DataBits: 8, StopBits: 3})
	assert.Error(t, err)
}

func TestSerialConnection_SendClosed(t *testing.T) {
	t.Parallel()

	sc := NewSerialConnection(&SerialConfig{Name: "s", Port: "/dev/does-not-exist"}, zap.NewNop())
	assert.Error(t, sc.Send(context.Background(), []byte{0x0c}))
	assert.NoError(t, sc.Close())
}
