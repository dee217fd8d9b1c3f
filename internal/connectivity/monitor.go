// Package connectivity tracks whether the assistant backend is reachable.
package connectivity

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Mode selects how the online flag is driven
type Mode string

const (
	ModeAuto    Mode = "auto"
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// Checker reports the current connectivity
type Checker interface {
	Online() bool
}

// Monitor holds the online flag and notifies subscribers on transitions
type Monitor struct {
	online   atomic.Bool
	mu       sync.Mutex
	subs     []func(online bool)
	logger   *zap.Logger
	probeURL string
	interval time.Duration
	client   *http.Client
}

// Options configures a Monitor
type Options struct {
	Mode          Mode
	ProbeURL      string
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
}

// NewMonitor creates a monitor; auto mode starts online until the first probe
func NewMonitor(opts Options, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.ProbeTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	m := &Monitor{
		logger:   logger,
		probeURL: opts.ProbeURL,
		interval: opts.ProbeInterval,
		client:   &http.Client{Timeout: timeout},
	}
	m.online.Store(opts.Mode != ModeOffline)
	return m
}

// Online reports the flag at call time
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Set updates the flag and notifies subscribers if it changed
func (m *Monitor) Set(online bool) {
	if m.online.Swap(online) == online {
		return
	}
	m.logger.Info("Connectivity changed", zap.Bool("online", online))

	m.mu.Lock()
	subs := make([]func(bool), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(online)
	}
}

// Subscribe registers fn to be called on every transition
func (m *Monitor) Subscribe(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Probe issues one HEAD request against the probe URL
func (m *Monitor) Probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, m.probeURL, nil)
	if err != nil {
		return false
	}
	resp, err := m.client.Do(req)
	if err != nil {
		m.logger.Debug("Connectivity probe failed", zap.Error(err))
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}

// Run probes periodically until ctx is done
func (m *Monitor) Run(ctx context.Context) {
	if m.probeURL == "" || m.interval <= 0 {
		return
	}
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Set(m.Probe(ctx))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Set(m.Probe(ctx))
		}
	}
}
