package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	t.Parallel()

	m := New()
	m.IncRequest("/api/hit")
	m.IncRequest("/api/hit")
	m.IncRequest("/api/stand")
	m.IncError()

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.RequestCount)
	assert.Equal(t, int64(1), snap.ErrorCount)
	assert.Equal(t, int64(2), snap.Endpoints["/api/hit"])
	assert.Equal(t, int64(1), snap.Endpoints["/api/stand"])
}

func TestAvgResponseTime(t *testing.T) {
	t.Parallel()

	m := New()
	assert.Zero(t, m.AvgResponseTime())

	m.RecordDuration(10 * time.Millisecond)
	m.RecordDuration(30 * time.Millisecond)

	assert.InDelta(t, 20.0, m.AvgResponseTime(), 0.01)
}

func TestWindowEvictsOldestSamples(t *testing.T) {
	t.Parallel()

	m := New()
	for i := 0; i < windowSize; i++ {
		m.RecordDuration(10 * time.Millisecond)
	}
	assert.InDelta(t, 10.0, m.AvgResponseTime(), 0.01)

	// Another full window pushes every old sample out.
	for i := 0; i < windowSize; i++ {
		m.RecordDuration(50 * time.Millisecond)
	}
	assert.InDelta(t, 50.0, m.AvgResponseTime(), 0.01)
}

func TestPrometheusOutput(t *testing.T) {
	t.Parallel()

	m := New()
	m.IncRequest("/api/start-game")
	m.IncError()
	m.RecordDuration(5 * time.Millisecond)

	out := m.Prometheus()
	assert.Contains(t, out, "# TYPE blackjack_requests_total counter")
	assert.Contains(t, out, "blackjack_requests_total 1")
	assert.Contains(t, out, "blackjack_errors_total 1")
	assert.Contains(t, out, "blackjack_response_time_ms 5")
	assert.Contains(t, out, "blackjack_endpoint_api_start_game_total 1")
}

func TestConcurrentIncrements(t *testing.T) {
	t.Parallel()

	m := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.IncRequest("/api/hit")
				m.RecordDuration(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	snap := m.Snapshot()
	assert.Equal(t, int64(5000), snap.RequestCount)
	assert.Equal(t, int64(5000), snap.Endpoints["/api/hit"])
}
