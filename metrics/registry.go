package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Registry holds counters and histograms keyed by name. Metrics are created
// on first access, so callers never need to check for nil.
type Registry struct {
	mu         sync.RWMutex
	counters   map[string]*Counter
	histograms map[string]*Histogram
}

// DefaultRegistry is the process-wide registry behind DefaultCodecMetrics.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		counters:   make(map[string]*Counter),
		histograms: make(map[string]*Histogram),
	}
}

// Counter returns the Counter registered under name, creating it if needed.
func (r *Registry) Counter(name string) *Counter {
	r.mu.RLock()
	c, ok := r.counters[name]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok = r.counters[name]; ok {
		return c
	}
	c = NewCounter(name)
	r.counters[name] = c
	return c
}

// Histogram returns the Histogram registered under name, creating it if
// needed.
func (r *Registry) Histogram(name string) *Histogram {
	r.mu.RLock()
	h, ok := r.histograms[name]
	r.mu.RUnlock()
	if ok {
		return h
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok = r.histograms[name]; ok {
		return h
	}
	h = NewHistogram(name)
	r.histograms[name] = h
	return h
}

// Snapshot returns a point-in-time copy of every metric. Counters map to
// int64; histograms map to a map with count, sum, min, max and mean.
func (r *Registry) Snapshot() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[string]interface{}, len(r.counters)+len(r.histograms))
	for name, c := range r.counters {
		snap[name] = c.Value()
	}
	for name, h := range r.histograms {
		snap[name] = map[string]interface{}{
			"count": h.Count(),
			"sum":   h.Sum(),
			"min":   h.Min(),
			"max":   h.Max(),
			"mean":  h.Mean(),
		}
	}
	return snap
}

// WriteTo writes one line per metric, sorted by name:
//
//	rs255.decode 42
//	rs255.decode.corrections count=40 mean=1.50 min=0 max=4 tally=0:10,1:12,2:18
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	r.mu.RLock()
	lines := make([]string, 0, len(r.counters)+len(r.histograms))
	for name, c := range r.counters {
		lines = append(lines, fmt.Sprintf("%s %d", name, c.Value()))
	}
	for name, h := range r.histograms {
		lines = append(lines, fmt.Sprintf("%s count=%d mean=%.2f min=%g max=%g%s",
			name, h.Count(), h.Mean(), h.Min(), h.Max(), formatTally(h.Tally())))
	}
	r.mu.RUnlock()

	sort.Strings(lines)
	var total int64
	for _, l := range lines {
		n, err := io.WriteString(w, l+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func formatTally(t map[int64]int64) string {
	if len(t) == 0 {
		return ""
	}
	keys := make([]int64, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d:%d", k, t[k])
	}
	return " tally=" + strings.Join(parts, ",")
}
