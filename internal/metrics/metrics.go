// Package metrics is a process-wide request accumulator. It is constructed
// explicitly and injected into handlers rather than accessed as a global.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// windowSize bounds the response-time sample window; the oldest sample is
// evicted once the window is full.
const windowSize = 1000

type Metrics struct {
	mu        sync.Mutex
	requests  int64
	errors    int64
	endpoints map[string]int64

	samples []float64 // response times in ms, ring buffer
	head    int
	count   int

	start time.Time
}

func New() *Metrics {
	return &Metrics{
		endpoints: make(map[string]int64),
		samples:   make([]float64, windowSize),
		start:     time.Now(),
	}
}

func (m *Metrics) IncRequest(endpoint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	if endpoint != "" {
		m.endpoints[endpoint]++
	}
}

func (m *Metrics) IncError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors++
}

func (m *Metrics) RecordDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.samples[m.head] = float64(d.Microseconds()) / 1000
	m.head = (m.head + 1) % windowSize
	if m.count < windowSize {
		m.count++
	}
}

// AvgResponseTime is the mean over the sample window, in milliseconds.
func (m *Metrics) AvgResponseTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.avgLocked()
}

func (m *Metrics) avgLocked() float64 {
	if m.count == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < m.count; i++ {
		sum += m.samples[i]
	}
	return sum / float64(m.count)
}

func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.start)
}

// Snapshot is the JSON shape served by the /metrics endpoint.
type Snapshot struct {
	RequestCount      int64            `json:"request_count"`
	ErrorCount        int64            `json:"error_count"`
	AvgResponseTimeMS float64          `json:"avg_response_time_ms"`
	UptimeSeconds     float64          `json:"uptime_seconds"`
	Endpoints         map[string]int64 `json:"endpoints"`
}

func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	endpoints := make(map[string]int64, len(m.endpoints))
	for k, v := range m.endpoints {
		endpoints[k] = v
	}

	return Snapshot{
		RequestCount:      m.requests,
		ErrorCount:        m.errors,
		AvgResponseTimeMS: round2(m.avgLocked()),
		UptimeSeconds:     round2(time.Since(m.start).Seconds()),
		Endpoints:         endpoints,
	}
}

// Prometheus renders the accumulator in the Prometheus text exposition
// format under the blackjack_ namespace.
func (m *Metrics) Prometheus() string {
	snap := m.Snapshot()

	var b strings.Builder
	writeMetric(&b, "blackjack_requests_total", "Total number of requests", "counter",
		fmt.Sprintf("%d", snap.RequestCount))
	b.WriteString("\n")
	writeMetric(&b, "blackjack_errors_total", "Total number of errors", "counter",
		fmt.Sprintf("%d", snap.ErrorCount))
	b.WriteString("\n")
	writeMetric(&b, "blackjack_response_time_ms", "Average response time in milliseconds", "gauge",
		fmt.Sprintf("%g", snap.AvgResponseTimeMS))
	b.WriteString("\n")
	writeMetric(&b, "blackjack_uptime_seconds", "Application uptime in seconds", "counter",
		fmt.Sprintf("%g", snap.UptimeSeconds))

	names := make([]string, 0, len(snap.Endpoints))
	for endpoint := range snap.Endpoints {
		names = append(names, endpoint)
	}
	sort.Strings(names)

	for _, endpoint := range names {
		safe := sanitizeEndpoint(endpoint)
		b.WriteString("\n")
		writeMetric(&b,
			fmt.Sprintf("blackjack_endpoint_%s_total", safe),
			fmt.Sprintf("Requests to %s", endpoint),
			"counter",
			fmt.Sprintf("%d", snap.Endpoints[endpoint]))
	}

	return b.String()
}

func writeMetric(b *strings.Builder, name, help, kind, value string) {
	fmt.Fprintf(b, "# HELP %s %s\n", name, help)
	fmt.Fprintf(b, "# TYPE %s %s\n", name, kind)
	fmt.Fprintf(b, "%s %s\n", name, value)
}

func sanitizeEndpoint(endpoint string) string {
	safe := strings.NewReplacer("/", "_", "-", "_").Replace(endpoint)
	return strings.Trim(safe, "_")
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}
