package serial

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"escp-service/internal/config"
)

func newTestScanner(ports []*enumerator.PortDetails, err error) *Scanner {
	s := NewScanner(zap.NewNop())
	s.listPorts = func() ([]*enumerator.PortDetails, error) { return ports, err }
	return s
}

func TestScanner_Scan(t *testing.T) {
	s := newTestScanner([]*enumerator.PortDetails{
		{Name: "/dev/ttyS0"},
		{Name: "/dev/ttyUSB0", IsUSB: true, VID: "067B", PID: "2303", Product: "USB-Serial Controller"},
	}, nil)

	found, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, found, 2)

	assert.Equal(t, config.TransportSerial, found[0].Transport)
	assert.Equal(t, "/dev/ttyS0", found[0].Port)
	assert.InDelta(t, 0.2, found[0].Confidence, 1e-9)
	assert.Empty(t, found[0].VendorID)

	assert.Equal(t, "0x067b", found[1].VendorID)
	assert.Equal(t, "0x2303", found[1].ProductID)
	assert.Equal(t, "USB-Serial Controller", found[1].Model)
	assert.InDelta(t, 0.3, found[1].Confidence, 1e-9)
}

func TestScanner_ScanError(t *testing.T) {
	s := newTestScanner(nil, errors.New("permission denied"))

	_, err := s.Scan(context.Background())
	assert.ErrorContains(t, err, "permission denied")
}

func TestScanner_ScanCancelled(t *testing.T) {
	s := newTestScanner(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
