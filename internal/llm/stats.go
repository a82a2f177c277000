package llm

import (
	"sync"
	"time"
)

// ProviderStats summarizes the calls made to one provider.
type ProviderStats struct {
	Calls        int64         `json:"calls"`
	Failures     int64         `json:"failures"`
	TotalLatency time.Duration `json:"-"`
	AvgLatencyMS int64         `json:"avg_latency_ms"`
}

// Stats records per-provider call counts and latency. Safe for concurrent use.
type Stats struct {
	mu        sync.Mutex
	providers map[ProviderName]*ProviderStats
}

// NewStats returns empty Stats.
func NewStats() *Stats {
	return &Stats{providers: make(map[ProviderName]*ProviderStats)}
}

// Record adds one call outcome.
func (s *Stats) Record(name ProviderName, latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ps, ok := s.providers[name]
	if !ok {
		ps = &ProviderStats{}
		s.providers[name] = ps
	}
	ps.Calls++
	ps.TotalLatency += latency
	if err != nil {
		ps.Failures++
	}
}

// Snapshot returns a copy of the current stats.
func (s *Stats) Snapshot() map[ProviderName]ProviderStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[ProviderName]ProviderStats, len(s.providers))
	for name, ps := range s.providers {
		cp := *ps
		if cp.Calls > 0 {
			cp.AvgLatencyMS = (cp.TotalLatency / time.Duration(cp.Calls)).Milliseconds()
		}
		out[name] = cp
	}
	return out
}
