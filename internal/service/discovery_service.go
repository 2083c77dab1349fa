// internal/service/discovery_service.go
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"escp-service/internal/config"
	"escp-service/internal/discovery"
	"escp-service/internal/discovery/serial"
	"escp-service/internal/discovery/tcp"
	"escp-service/internal/discovery/usb"
	"escp-service/internal/utils"
)

// DiscoveryService finds printers and suggests transport entries for them
type DiscoveryService struct {
	scannerManager *discovery.Manager
	config         config.DiscoveryConfig
	logger         *utils.ServiceLogger
}

// NewDiscoveryService creates a discovery service with the USB, serial and
// TCP scanners
func NewDiscoveryService(cfg config.DiscoveryConfig, logger *zap.Logger) *DiscoveryService {
	manager := discovery.NewManager(logger,
		usb.NewScanner(logger),
		serial.NewScanner(logger),
		tcp.NewScanner(logger, &tcp.Config{Hosts: cfg.TCPHosts}),
	)
	return newDiscoveryService(manager, cfg, logger)
}

func newDiscoveryService(manager *discovery.Manager, cfg config.DiscoveryConfig, logger *zap.Logger) *DiscoveryService {
	ds := &DiscoveryService{
		scannerManager: manager,
		config:         cfg,
		logger:         utils.NewServiceLogger(logger, "discovery-service"),
	}

	ds.logger.Info("Discovery scanners initialized", zap.Strings("scanners", manager.Types()))
	return ds
}

// ScanRequest selects what to scan
type ScanRequest struct {
	Type  string   // empty scans everything
	Hosts []string // probed instead of the configured TCP hosts
}

// ScanResult lists candidates best first with a transport entry for each
type ScanResult struct {
	Candidates []*discovery.Candidate   `json:"candidates"`
	Suggested  []config.TransportConfig `json:"suggested_transports"`
	ScannedAt  time.Time                `json:"scanned_at"`
	DurationMs int64                    `json:"duration_ms"`
}

// Scan runs the requested scanners within the configured timeout
func (ds *DiscoveryService) Scan(ctx context.Context, req *ScanRequest) (*ScanResult, error) {
	if ds.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ds.config.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	manager := ds.scannerManager
	if len(req.Hosts) > 0 {
		manager = discovery.NewManager(ds.logger.Logger, tcp.NewScanner(ds.logger.Logger, &tcp.Config{Hosts: req.Hosts}))
		if req.Type == "" {
			req.Type = config.TransportTCP
		}
	}

	var (
		candidates []*discovery.Candidate
		err        error
	)
	if req.Type == "" {
		candidates = manager.ScanAll(ctx)
	} else {
		candidates, err = manager.ScanByType(ctx, req.Type)
		if err != nil {
			ds.logger.Warn("Discovery scan failed", zap.String("type", req.Type), zap.Error(err))
			return nil, err
		}
	}

	result := &ScanResult{
		Candidates: candidates,
		Suggested:  make([]config.TransportConfig, 0, len(candidates)),
		ScannedAt:  startTime,
		DurationMs: time.Since(startTime).Milliseconds(),
	}
	if result.Candidates == nil {
		result.Candidates = []*discovery.Candidate{}
	}
	for _, c := range candidates {
		result.Suggested = append(result.Suggested, c.TransportConfig())
	}

	ds.logger.Info("Discovery scan completed",
		zap.String("type", req.Type),
		zap.Int("candidates", len(candidates)),
		zap.Int64("duration_ms", result.DurationMs),
	)
	return result, nil
}

// Scanners returns the registered scanner types
func (ds *DiscoveryService) Scanners() []string {
	return ds.scannerManager.Types()
}
