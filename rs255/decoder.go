package rs255

import (
	"fmt"
	"log/slog"

	"github.com/rs255/rs255/metrics"
)

// Result describes a decode.
type Result struct {
	// Codeword is the corrected codeword. After ErrUncorrectable it is an
	// unmodified copy of the received word.
	Codeword []byte

	// Positions lists the corrected positions in ascending order, and
	// Values the value XORed into each. Erased positions are always listed,
	// even when the received symbol turned out to be right.
	Positions []int
	Values    []byte

	// Erasures is the number of positions flagged in the mask.
	Erasures int
}

// Corrected returns the number of corrected positions.
func (r *Result) Corrected() int { return len(r.Positions) }

// Errors returns the number of corrected positions that were not flagged
// as erasures.
func (r *Result) Errors() int {
	if n := len(r.Positions) - r.Erasures; n > 0 {
		return n
	}
	return 0
}

// Decode corrects received using the optional erasure mask (nil or 255
// bytes, non-zero entries mark erasures). It returns the corrected codeword
// and the number of corrected positions.
//
// When the pattern cannot be corrected the error wraps ErrUncorrectable and
// the returned codeword is an unmodified copy of received.
func (c *Codec) Decode(received, erasures []byte) ([]byte, int, error) {
	res, err := c.DecodeResult(received, erasures)
	if res == nil {
		return nil, 0, err
	}
	if err != nil {
		return res.Codeword, 0, err
	}
	return res.Codeword, res.Corrected(), nil
}

// DecodeResult is Decode with the individual corrections reported. It
// returns a nil Result only for malformed input; after ErrUncorrectable the
// Result holds a copy of received and no corrections.
func (c *Codec) DecodeResult(received, erasures []byte) (*Result, error) {
	if len(received) != CodewordLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			ErrCodewordLength, len(received), CodewordLen)
	}
	if erasures != nil && len(erasures) != CodewordLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			ErrMaskLength, len(erasures), CodewordLen)
	}
	timer := metrics.NewTimer(c.metrics.Latency)
	defer timer.Stop()
	c.metrics.Decodes.Inc()

	res := &Result{Codeword: make([]byte, CodewordLen)}
	copy(res.Codeword, received)

	corrections, erasureCount, err := c.locate(received, erasures)
	res.Erasures = erasureCount
	c.metrics.Erasures.ObserveInt(erasureCount)
	if err != nil {
		c.metrics.Uncorrectable.Inc()
		if c.log.Enabled(slog.LevelDebug) {
			c.log.Debug("decode failed", "parity", c.parity, "erasures", erasureCount, "err", err)
		}
		return res, err
	}

	if len(corrections) == 0 {
		c.metrics.Clean.Inc()
	} else {
		c.metrics.Corrected.Inc()
	}
	c.metrics.Corrections.ObserveInt(len(corrections))

	res.Positions = make([]int, len(corrections))
	res.Values = make([]byte, len(corrections))
	for i, cr := range corrections {
		res.Codeword[cr.pos] ^= cr.value
		res.Positions[i] = cr.pos
		res.Values[i] = cr.value
	}
	return res, nil
}

// locate runs the algebraic decoder and returns the corrections to apply.
func (c *Codec) locate(received, erasures []byte) ([]correction, int, error) {
	f, n := c.field, c.parity

	erasureSigma, erased := erasureLocator(f, erasures)
	k := len(erased)
	if k > n {
		return nil, k, fmt.Errorf("%w: %d erasures exceed %d parity symbols",
			ErrUncorrectable, k, n)
	}

	syndromes := c.syndromes(received)
	product := MulPoly(f, erasureSigma, NewPoly(syndromes...))
	omega, errorSigma := euclid(f, product, n, k)
	sigma := MulPoly(f, erasureSigma, errorSigma)

	corrections, err := findErrors(f, sigma, omega, errorSigma.Degree()+k)
	if err != nil {
		return nil, k, err
	}
	if !c.correctsTo(received, corrections) {
		return nil, k, fmt.Errorf("%w: corrected word fails syndrome check", ErrUncorrectable)
	}
	return corrections, k, nil
}

// correctsTo reports whether applying corrections to received yields a
// codeword.
func (c *Codec) correctsTo(received []byte, corrections []correction) bool {
	var word [CodewordLen]byte
	copy(word[:], received)
	for _, cr := range corrections {
		word[cr.pos] ^= cr.value
	}
	return allZero(c.syndromes(word[:]))
}
