package input

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks shortcut engine activity.
type Metrics struct {
	// Event counters
	keyEventsTotal   atomic.Uint64
	ignoredEvents    atomic.Uint64
	suppressedEvents atomic.Uint64
	bufferedEvents   atomic.Uint64
	noMatchEvents    atomic.Uint64
	dispatchesTotal  atomic.Uint64
	lookupMisses     atomic.Uint64
	sequenceTimeouts atomic.Uint64

	// Latency tracking
	mu                sync.RWMutex
	keyLatencies      []time.Duration
	maxLatencySamples int
	latencyIdx        int

	// Peak latency (all time)
	peakKeyLatency atomic.Int64

	// Start time for uptime calculation
	startTime time.Time

	enabled atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		keyLatencies:      make([]time.Duration, 1000),
		maxLatencySamples: 1000,
		startTime:         time.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordKeyEvent records a matched key event with its processing time.
func (m *Metrics) RecordKeyEvent(latency time.Duration) {
	if !m.enabled.Load() {
		return
	}

	m.keyEventsTotal.Add(1)

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakKeyLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakKeyLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	// Store in circular buffer
	m.mu.Lock()
	m.keyLatencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

// RecordIgnored records an event with no token.
func (m *Metrics) RecordIgnored() {
	if m.enabled.Load() {
		m.ignoredEvents.Add(1)
	}
}

// RecordSuppressed records an event dropped by the guard.
func (m *Metrics) RecordSuppressed() {
	if m.enabled.Load() {
		m.suppressedEvents.Add(1)
	}
}

// RecordBuffered records an event that extended a partial sequence.
func (m *Metrics) RecordBuffered() {
	if m.enabled.Load() {
		m.bufferedEvents.Add(1)
	}
}

// RecordNoMatch records an event that matched nothing.
func (m *Metrics) RecordNoMatch() {
	if m.enabled.Load() {
		m.noMatchEvents.Add(1)
	}
}

// RecordDispatch records a resolved binding. performed is false when the
// action's target was missing.
func (m *Metrics) RecordDispatch(performed bool) {
	if !m.enabled.Load() {
		return
	}
	m.dispatchesTotal.Add(1)
	if !performed {
		m.lookupMisses.Add(1)
	}
}

// RecordSequenceTimeout records a buffer cleared by the timer.
func (m *Metrics) RecordSequenceTimeout() {
	if m.enabled.Load() {
		m.sequenceTimeouts.Add(1)
	}
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	// Counters
	KeyEventsTotal   uint64
	IgnoredEvents    uint64
	SuppressedEvents uint64
	BufferedEvents   uint64
	NoMatchEvents    uint64
	DispatchesTotal  uint64
	LookupMisses     uint64
	SequenceTimeouts uint64

	// Latency stats
	AvgKeyLatency  time.Duration
	MaxKeyLatency  time.Duration
	P99KeyLatency  time.Duration
	PeakKeyLatency time.Duration

	// Uptime
	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	keyLatencies := make([]time.Duration, len(m.keyLatencies))
	copy(keyLatencies, m.keyLatencies)
	start := m.startTime
	m.mu.RUnlock()

	snap := MetricsSnapshot{
		KeyEventsTotal:   m.keyEventsTotal.Load(),
		IgnoredEvents:    m.ignoredEvents.Load(),
		SuppressedEvents: m.suppressedEvents.Load(),
		BufferedEvents:   m.bufferedEvents.Load(),
		NoMatchEvents:    m.noMatchEvents.Load(),
		DispatchesTotal:  m.dispatchesTotal.Load(),
		LookupMisses:     m.lookupMisses.Load(),
		SequenceTimeouts: m.sequenceTimeouts.Load(),
		PeakKeyLatency:   time.Duration(m.peakKeyLatency.Load()),
		Uptime:           time.Since(start),
	}
	snap.AvgKeyLatency, snap.MaxKeyLatency, snap.P99KeyLatency = calculateLatencyStats(keyLatencies)

	return snap
}

// calculateLatencyStats computes average, max, and p99 from a slice of latencies.
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
		if l > maxLat {
			maxLat = l
		}
	}
	avg = sum / time.Duration(len(valid))

	sort.Slice(valid, func(i, j int) bool { return valid[i] < valid[j] })
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
	m.ignoredEvents.Store(0)
	m.suppressedEvents.Store(0)
	m.bufferedEvents.Store(0)
	m.noMatchEvents.Store(0)
	m.dispatchesTotal.Store(0)
	m.lookupMisses.Store(0)
	m.sequenceTimeouts.Store(0)
	m.peakKeyLatency.Store(0)

	m.mu.Lock()
	m.keyLatencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}
