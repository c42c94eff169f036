package metrics

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// WritePrometheus writes every metric in r in the Prometheus text
// exposition format. Dotted names become underscored and, when namespace
// is set, are prefixed with it. Histograms are written as summaries with
// _count and _sum, plus _min, _max and _mean once observed.
func (r *Registry) WritePrometheus(w io.Writer, namespace string) error {
	var b strings.Builder

	r.mu.RLock()
	for _, name := range sortedKeys(r.counters) {
		c := r.counters[name]
		pn := promName(namespace, name)
		writeHeader(&b, pn, "counter", name)
		fmt.Fprintf(&b, "%s %d\n", pn, c.Value())
	}
	for _, name := range sortedKeys(r.histograms) {
		h := r.histograms[name]
		pn := promName(namespace, name)
		writeHeader(&b, pn, "summary", name)
		fmt.Fprintf(&b, "%s_count %d\n", pn, h.Count())
		fmt.Fprintf(&b, "%s_sum %s\n", pn, formatFloat(h.Sum()))
		if h.Count() > 0 {
			fmt.Fprintf(&b, "%s_min %s\n", pn, formatFloat(h.Min()))
			fmt.Fprintf(&b, "%s_max %s\n", pn, formatFloat(h.Max()))
			fmt.Fprintf(&b, "%s_mean %s\n", pn, formatFloat(h.Mean()))
		}
	}
	r.mu.RUnlock()

	_, err := io.WriteString(w, b.String())
	return err
}

// promName converts a dot-separated metric name to Prometheus format.
func promName(namespace, name string) string {
	s := strings.NewReplacer(".", "_", "-", "_").Replace(name)
	if namespace != "" {
		return namespace + "_" + s
	}
	return s
}

func writeHeader(b *strings.Builder, name, metricType, help string) {
	fmt.Fprintf(b, "# HELP %s %s\n", name, help)
	fmt.Fprintf(b, "# TYPE %s %s\n", name, metricType)
}

// formatFloat formats v for Prometheus, spelling out the special values.
func formatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case math.IsNaN(v):
		return "NaN"
	}
	return fmt.Sprintf("%g", v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
