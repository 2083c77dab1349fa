package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"escp-service/internal/config"
)

type fakeScanner struct {
	kind  string
	found []*Candidate
	err   error
	calls int
}

func (f *fakeScanner) Scan(ctx context.Context) ([]*Candidate, error) {
	f.calls++
	return f.found, f.err
}

func (f *fakeScanner) Type() string { return f.kind }

func TestManager_ScanAll(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	usb := &fakeScanner{kind: "usb", found: []*Candidate{{Transport: "usb", Confidence: 0.4}}}
	tcp := &fakeScanner{kind: "tcp", found: []*Candidate{{Transport: "tcp", Confidence: 0.5}}}
	broken := &fakeScanner{kind: "serial", err: errors.New("no ports")}

	m := NewManager(zap.New(core), usb, tcp, broken)

	found := m.ScanAll(context.Background())
	require.Len(t, found, 2)
	assert.Equal(t, "tcp", found[0].Transport)
	assert.Equal(t, "usb", found[1].Transport)

	assert.Equal(t, 1, logs.FilterMessage("Scanner failed").Len())
	assert.Equal(t, []string{"serial", "tcp", "usb"}, m.Types())
}

func TestManager_ScanByType(t *testing.T) {
	usb := &fakeScanner{kind: "usb", found: []*Candidate{
		{Model: "a", Confidence: 0.4},
		{Model: "b", Confidence: 0.95},
	}}
	m := NewManager(zap.NewNop(), usb)

	found, err := m.ScanByType(context.Background(), "usb")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "b", found[0].Model)

	_, err = m.ScanByType(context.Background(), "bluetooth")
	assert.ErrorIs(t, err, ErrUnknownScanner)

	usb.err = errors.New("bus busy")
	_, err = m.ScanByType(context.Background(), "usb")
	assert.EqualError(t, err, "bus busy")
}

func TestManager_RegisterReplaces(t *testing.T) {
	first := &fakeScanner{kind: "usb"}
	second := &fakeScanner{kind: "usb"}
	m := NewManager(zap.NewNop(), first)
	m.Register(second)

	m.ScanAll(context.Background())
	assert.Equal(t, 0, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestCandidate_TransportConfig(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		want      config.TransportConfig
	}{
		{
			name:      "usb",
			candidate: Candidate{Transport: config.TransportUSB, VendorID: "0x04b8", ProductID: "0x0005"},
			want: config.TransportConfig{
				Name: "usb-0x04b8-0x0005", Type: config.TransportUSB,
				VendorID: "0x04b8", ProductID: "0x0005",
			},
		},
		{
			name:      "serial",
			candidate: Candidate{Transport: config.TransportSerial, Port: "/dev/ttyUSB0"},
			want: config.TransportConfig{
				Name: "serial-/dev/ttyUSB0", Type: config.TransportSerial, Port: "/dev/ttyUSB0",
			},
		},
		{
			name:      "tcp",
			candidate: Candidate{Transport: config.TransportTCP, Host: "10.0.0.7", TCPPort: 9100},
			want: config.TransportConfig{
				Name: "tcp-10.0.0.7", Type: config.TransportTCP, Host: "10.0.0.7", TCPPort: 9100,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.candidate.TransportConfig())
		})
	}
}
