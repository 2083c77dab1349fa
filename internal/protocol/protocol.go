// internal/protocol/protocol.go
package protocol

import (
	"context"
	"sync"
	"time"
)

// Transport delivers a finished ESC/P byte stream to a printer
type Transport interface {
	// Connection lifecycle
	Open(ctx context.Context) error
	Close() error

	// Send writes the whole buffer or returns an error
	Send(ctx context.Context, data []byte) error

	// Name identifies the transport in logs and job results
	Name() string

	Stats() Stats
}

// Stats provides transport-level statistics
type Stats struct {
	BytesWritten   int64         `json:"bytes_written"`
	SendCount      int64         `json:"send_count"`
	ErrorCount     int64         `json:"error_count"`
	LastActivity   time.Time     `json:"last_activity"`
	AverageLatency time.Duration `json:"average_latency"`
	IsConnected    bool          `json:"is_connected"`
}

// statsRecorder guards a Stats value shared by Send and Stats callers
type statsRecorder struct {
	mu    sync.Mutex
	stats Stats
}

func (r *statsRecorder) connected(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.IsConnected = ok
	if ok {
		r.stats.LastActivity = time.Now()
	}
}

func (r *statsRecorder) sent(n int, latency time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.BytesWritten += int64(n)
	r.stats.SendCount++
	r.stats.LastActivity = time.Now()

	// running average latency
	if r.stats.AverageLatency == 0 {
		r.stats.AverageLatency = latency
	} else {
		r.stats.AverageLatency = (r.stats.AverageLatency + latency) / 2
	}
}

func (r *statsRecorder) failed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.ErrorCount++
}

func (r *statsRecorder) snapshot() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
