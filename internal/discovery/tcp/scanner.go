// internal/discovery/tcp/scanner.go
package tcp

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"escp-service/internal/config"
	"escp-service/internal/discovery"
)

// DefaultPort is the raw printing port
const DefaultPort = 9100

// Config for TCP scanner
type Config struct {
	Hosts         []string      `json:"hosts"` // host or host:port
	ConnTimeout   time.Duration `json:"connection_timeout"`
	MaxConcurrent int           `json:"max_concurrent"`
}

// Scanner probes hosts for an open raw printing port
type Scanner struct {
	logger *zap.Logger
	config *Config
}

// NewScanner creates a new TCP scanner
func NewScanner(logger *zap.Logger, config *Config) *Scanner {
	if config == nil {
		config = &Config{}
	}
	if config.ConnTimeout <= 0 {
		config.ConnTimeout = 2 * time.Second
	}
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 8
	}

	return &Scanner{
		logger: logger.With(zap.String("scanner", "tcp")),
		config: config,
	}
}

// Type returns scanner type
func (s *Scanner) Type() string {
	return config.TransportTCP
}

// Scan connects to each configured host and reports those that accept.
// Nothing is written to the connection.
func (s *Scanner) Scan(ctx context.Context) ([]*discovery.Candidate, error) {
	var (
		mu    sync.Mutex
		found []*discovery.Candidate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.MaxConcurrent)

	for _, entry := range s.config.Hosts {
		host, port := splitHostPort(entry)
		g.Go(func() error {
			if !s.probe(gctx, host, port) {
				return nil
			}
			mu.Lock()
			found = append(found, &discovery.Candidate{
				Transport:   config.TransportTCP,
				Host:        host,
				TCPPort:     port,
				Location:    net.JoinHostPort(host, strconv.Itoa(port)),
				Confidence:  0.5,
				Description: "Open raw printing port",
			})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return found, err
	}

	s.logger.Info("TCP scan completed",
		zap.Int("hosts_probed", len(s.config.Hosts)),
		zap.Int("devices_found", len(found)),
	)
	return found, nil
}

func (s *Scanner) probe(ctx context.Context, host string, port int) bool {
	dialer := net.Dialer{Timeout: s.config.ConnTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		s.logger.Debug("Host did not accept", zap.String("host", host), zap.Int("port", port), zap.Error(err))
		return false
	}
	conn.Close()
	return true
}

// splitHostPort accepts "host" or "host:port"
func splitHostPort(entry string) (string, int) {
	host, portStr, err := net.SplitHostPort(entry)
	if err != nil {
		return entry, DefaultPort
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return host, DefaultPort
	}
	return host, port
}
