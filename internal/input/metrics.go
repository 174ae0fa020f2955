package input

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/keytrie/internal/input/resolver"
)

// Metrics tracks input processing outcomes and latency.
type Metrics struct {
	// Event counters
	keyEventsTotal   atomic.Uint64
	matchedTotal     atomic.Uint64
	pendingTotal     atomic.Uint64
	cancelledTotal   atomic.Uint64
	notFoundTotal    atomic.Uint64
	actionsTotal     atomic.Uint64
	droppedActions   atomic.Uint64
	hookConsumptions atomic.Uint64

	// Latency ring buffer
	mu                sync.RWMutex
	keyLatencies      []time.Duration
	maxLatencySamples int
	latencyIdx        int

	// Peak latency (all time)
	peakKeyLatency atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		keyLatencies:      make([]time.Duration, 1000),
		maxLatencySamples: 1000,
		startTime:         time.Now(),
	}
}

// RecordKeyEvent records a resolved key event with its processing time.
func (m *Metrics) RecordKeyEvent(kind resolver.Kind, latency time.Duration) {
	m.keyEventsTotal.Add(1)
	switch kind {
	case resolver.Matched:
		m.matchedTotal.Add(1)
	case resolver.Pending:
		m.pendingTotal.Add(1)
	case resolver.Cancelled:
		m.cancelledTotal.Add(1)
	case resolver.NotFound:
		m.notFoundTotal.Add(1)
	}

	m.mu.Lock()
	m.keyLatencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()

	for {
		peak := m.peakKeyLatency.Load()
		if int64(latency) <= peak || m.peakKeyLatency.CompareAndSwap(peak, int64(latency)) {
			break
		}
	}
}

// RecordAction records a dispatched action.
func (m *Metrics) RecordAction() {
	m.actionsTotal.Add(1)
}

// RecordDroppedAction records an action lost to a full channel.
func (m *Metrics) RecordDroppedAction() {
	m.droppedActions.Add(1)
}

// RecordHookConsumption records an event or action consumed by a hook.
func (m *Metrics) RecordHookConsumption() {
	m.hookConsumptions.Add(1)
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	KeyEventsTotal   uint64
	MatchedTotal     uint64
	PendingTotal     uint64
	CancelledTotal   uint64
	NotFoundTotal    uint64
	ActionsTotal     uint64
	DroppedActions   uint64
	HookConsumptions uint64

	AvgKeyLatency  time.Duration
	MaxKeyLatency  time.Duration
	P99KeyLatency  time.Duration
	PeakKeyLatency time.Duration

	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	latencies := make([]time.Duration, len(m.keyLatencies))
	copy(latencies, m.keyLatencies)
	uptime := time.Since(m.startTime)
	m.mu.RUnlock()

	snap := MetricsSnapshot{
		KeyEventsTotal:   m.keyEventsTotal.Load(),
		MatchedTotal:     m.matchedTotal.Load(),
		PendingTotal:     m.pendingTotal.Load(),
		CancelledTotal:   m.cancelledTotal.Load(),
		NotFoundTotal:    m.notFoundTotal.Load(),
		ActionsTotal:     m.actionsTotal.Load(),
		DroppedActions:   m.droppedActions.Load(),
		HookConsumptions: m.hookConsumptions.Load(),
		PeakKeyLatency:   time.Duration(m.peakKeyLatency.Load()),
		Uptime:           uptime,
	}
	snap.AvgKeyLatency, snap.MaxKeyLatency, snap.P99KeyLatency = calculateLatencyStats(latencies)
	return snap
}

// calculateLatencyStats computes average, max, and p99 of the recorded
// (non-zero) latencies.
func calculateLatencyStats(latencies []time.Duration) (avg, maxLat, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return 0, 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
	}
	avg = sum / time.Duration(len(valid))

	sort.Slice(valid, func(i, j int) bool { return valid[i] < valid[j] })
	maxLat = valid[len(valid)-1]

	idx := int(float64(len(valid)) * 0.99)
	if idx >= len(valid) {
		idx = len(valid) - 1
	}
	p99 = valid[idx]

	return avg, maxLat, p99
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.keyEventsTotal.Store(0)
	m.matchedTotal.Store(0)
	m.pendingTotal.Store(0)
	m.cancelledTotal.Store(0)
	m.notFoundTotal.Store(0)
	m.actionsTotal.Store(0)
	m.droppedActions.Store(0)
	m.hookConsumptions.Store(0)
	m.peakKeyLatency.Store(0)

	m.mu.Lock()
	m.keyLatencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}
