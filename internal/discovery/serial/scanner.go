// internal/discovery/serial/scanner.go
package serial

import (
	"context"
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"escp-service/internal/config"
	"escp-service/internal/discovery"
)

// Scanner lists serial ports a printer may be attached to
type Scanner struct {
	logger    *zap.Logger
	listPorts func() ([]*enumerator.PortDetails, error)
}

// NewScanner creates a new serial scanner
func NewScanner(logger *zap.Logger) *Scanner {
	return &Scanner{
		logger:    logger.With(zap.String("scanner", "serial")),
		listPorts: enumerator.GetDetailedPortsList,
	}
}

// Type returns scanner type
func (s *Scanner) Type() string {
	return config.TransportSerial
}

// Scan lists serial ports. Ports are not opened; a probe could feed a
// printer garbage.
func (s *Scanner) Scan(ctx context.Context) ([]*discovery.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ports, err := s.listPorts()
	if err != nil {
		return nil, fmt.Errorf("failed to get serial ports: %w", err)
	}

	found := make([]*discovery.Candidate, 0, len(ports))
	for _, port := range ports {
		found = append(found, portCandidate(port))
	}

	s.logger.Info("Serial scan completed", zap.Int("ports_found", len(found)))
	return found, nil
}

func portCandidate(port *enumerator.PortDetails) *discovery.Candidate {
	candidate := &discovery.Candidate{
		Transport:   config.TransportSerial,
		Port:        port.Name,
		Location:    port.Name,
		Confidence:  0.2,
		Description: "Serial port",
	}

	if port.IsUSB {
		candidate.VendorID = "0x" + strings.ToLower(port.VID)
		candidate.ProductID = "0x" + strings.ToLower(port.PID)
		candidate.Model = port.Product
		candidate.Description = "USB serial adapter"
		candidate.Confidence = 0.3
	}

	return candidate
}
