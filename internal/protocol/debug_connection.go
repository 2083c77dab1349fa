// internal/protocol/debug_connection.go
package protocol

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DebugConnection prints nothing. It logs each job as a hex dump and
// optionally mirrors the dump to a writer.
type DebugConnection struct {
	name   string
	out    io.Writer
	logger *zap.Logger
	mutex  sync.Mutex
	open   bool
	stats  statsRecorder
}

// NewDebugConnection creates a debug transport; out may be nil
func NewDebugConnection(name string, out io.Writer, logger *zap.Logger) *DebugConnection {
	return &DebugConnection{
		name: name,
		out:  out,
		logger: logger.With(
			zap.String("protocol", "debug"),
			zap.String("transport", name),
		),
	}
}

// Name returns the configured transport name
func (dc *DebugConnection) Name() string {
	return dc.name
}

// Stats returns a snapshot of the connection statistics
func (dc *DebugConnection) Stats() Stats {
	return dc.stats.snapshot()
}

// Open marks the transport ready
func (dc *DebugConnection) Open(ctx context.Context) error {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	dc.open = true
	dc.stats.connected(true)
	return nil
}

// Close marks the transport closed
func (dc *DebugConnection) Close() error {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()

	dc.open = false
	dc.stats.connected(false)
	return nil
}

// Send logs data as a hex dump
func (dc *DebugConnection) Send(ctx context.Context, data []byte) error {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()

	if !dc.open {
		return fmt.Errorf("debug transport not open")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	startTime := time.Now()
	dump := hex.Dump(data)

	dc.logger.Info("Debug transport received job",
		zap.Int("bytes", len(data)),
		zap.String("hex", dump),
	)

	if dc.out != nil {
		if _, err := io.WriteString(dc.out, dump); err != nil {
			dc.stats.failed()
			return fmt.Errorf("failed to write hex dump: %w", err)
		}
	}

	dc.stats.sent(len(data), time.Since(startTime))
	return nil
}
