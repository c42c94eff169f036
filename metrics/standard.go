package metrics

// Metric names recorded by the codec.
const (
	EncodeTotal         = "rs255.encode"
	DecodeTotal         = "rs255.decode"
	DecodeClean         = "rs255.decode.clean"
	DecodeCorrected     = "rs255.decode.corrected"
	DecodeUncorrectable = "rs255.decode.uncorrectable"
	DecodeCorrections   = "rs255.decode.corrections"
	DecodeErasures      = "rs255.decode.erasures"
	DecodeLatencyMicros = "rs255.decode.latency_us"
	SimTrials           = "sim.trials"
	SimMiscorrections   = "sim.miscorrections"
	SimLevelsCompleted  = "sim.levels"
)

// CodecMetrics bundles the metric handles a codec updates. All handles are
// safe for concurrent use.
type CodecMetrics struct {
	Encodes       *Counter
	Decodes       *Counter
	Clean         *Counter
	Corrected     *Counter
	Uncorrectable *Counter
	Corrections   *Histogram
	Erasures      *Histogram
	Latency       *Histogram
}

// NewCodecMetrics registers the codec metrics in r.
func NewCodecMetrics(r *Registry) *CodecMetrics {
	return &CodecMetrics{
		Encodes:       r.Counter(EncodeTotal),
		Decodes:       r.Counter(DecodeTotal),
		Clean:         r.Counter(DecodeClean),
		Corrected:     r.Counter(DecodeCorrected),
		Uncorrectable: r.Counter(DecodeUncorrectable),
		Corrections:   r.Histogram(DecodeCorrections),
		Erasures:      r.Histogram(DecodeErasures),
		Latency:       r.Histogram(DecodeLatencyMicros),
	}
}

// DefaultCodecMetrics lives in DefaultRegistry and is used by codecs built
// without an explicit metrics option.
var DefaultCodecMetrics = NewCodecMetrics(DefaultRegistry)
