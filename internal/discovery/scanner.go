// internal/discovery/scanner.go
package discovery

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"escp-service/internal/config"
)

// Scanner finds printers reachable over one transport type
type Scanner interface {
	Scan(ctx context.Context) ([]*Candidate, error)
	Type() string
}

// Candidate is a device that may be an ESC/P printer
type Candidate struct {
	Transport   string  `json:"transport"`
	Vendor      string  `json:"vendor,omitempty"`
	Model       string  `json:"model,omitempty"`
	VendorID    string  `json:"vendor_id,omitempty"`
	ProductID   string  `json:"product_id,omitempty"`
	Port        string  `json:"port,omitempty"`
	Host        string  `json:"host,omitempty"`
	TCPPort     int     `json:"tcp_port,omitempty"`
	Pins        int     `json:"pins,omitempty"` // 0 when the print head is unknown
	Location    string  `json:"location,omitempty"`
	Confidence  float64 `json:"confidence"` // 0.0-1.0
	Description string  `json:"description,omitempty"`
}

// TransportConfig returns a transport entry that would reach the candidate
func (c *Candidate) TransportConfig() config.TransportConfig {
	t := config.TransportConfig{Type: c.Transport}
	switch c.Transport {
	case config.TransportUSB:
		t.Name = fmt.Sprintf("usb-%s-%s", c.VendorID, c.ProductID)
		t.VendorID = c.VendorID
		t.ProductID = c.ProductID
	case config.TransportSerial:
		t.Name = "serial-" + c.Port
		t.Port = c.Port
	case config.TransportTCP:
		t.Name = fmt.Sprintf("tcp-%s", c.Host)
		t.Host = c.Host
		t.TCPPort = c.TCPPort
	}
	return t
}

// Manager runs a set of scanners
type Manager struct {
	scanners map[string]Scanner
	logger   *zap.Logger
}

// NewManager creates a new scanner manager
func NewManager(logger *zap.Logger, scanners ...Scanner) *Manager {
	m := &Manager{
		scanners: make(map[string]Scanner),
		logger:   logger,
	}
	for _, s := range scanners {
		m.Register(s)
	}
	return m
}

// Register adds a scanner, replacing any of the same type
func (m *Manager) Register(scanner Scanner) {
	m.scanners[scanner.Type()] = scanner
	m.logger.Debug("Scanner registered", zap.String("type", scanner.Type()))
}

// Types returns the registered scanner types
func (m *Manager) Types() []string {
	types := make([]string, 0, len(m.scanners))
	for t := range m.scanners {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ScanAll runs every scanner. A failing scanner is logged and skipped.
func (m *Manager) ScanAll(ctx context.Context) []*Candidate {
	var all []*Candidate

	for _, scannerType := range m.Types() {
		found, err := m.scanners[scannerType].Scan(ctx)
		if err != nil {
			m.logger.Warn("Scanner failed", zap.String("type", scannerType), zap.Error(err))
			continue
		}

		all = append(all, found...)
		m.logger.Info("Scanner completed",
			zap.String("type", scannerType),
			zap.Int("devices_found", len(found)),
		)
	}

	SortByConfidence(all)
	return all
}

// ScanByType runs one scanner
func (m *Manager) ScanByType(ctx context.Context, scannerType string) ([]*Candidate, error) {
	scanner, exists := m.scanners[scannerType]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScanner, scannerType)
	}

	found, err := scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}
	SortByConfidence(found)
	return found, nil
}

// SortByConfidence orders candidates best first
func SortByConfidence(candidates []*Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
}
