// Package rs255 implements a systematic Reed-Solomon RS(255, 255-n) codec
// over GF(2^8) with combined error and erasure decoding.
//
// A codeword is always 255 bytes. For n parity symbols, indices [0, n) hold
// the parity and indices [n, 255) hold the message unchanged. The generator
// polynomial has the n roots a^112 ... a^(111+n), where a = 0xAC.
//
// The decoder corrects any pattern of e errors and s erasures with
// 2e + s <= n. Heavier patterns are reported as ErrUncorrectable with high
// probability; callers must check the error, not compare buffers.
package rs255

import (
	"fmt"

	"github.com/rs255/rs255/gf256"
	"github.com/rs255/rs255/log"
	"github.com/rs255/rs255/metrics"
)

// Code dimensions.
const (
	// CodewordLen is the fixed length of every codeword.
	CodewordLen = gf256.Order

	// MinParity and MaxParity bound the number of parity symbols.
	MinParity = 1
	MaxParity = CodewordLen - 1

	// firstRootLog is the exponent of the first generator root.
	firstRootLog = 112
)

// Codec encodes and decodes codewords for a fixed parity count. A Codec
// holds only immutable state after New returns and is safe for concurrent
// use.
type Codec struct {
	field   *gf256.Field
	parity  int
	gen     *Poly
	roots   []byte
	log     *log.Logger
	metrics *metrics.CodecMetrics
}

// Option configures a Codec.
type Option func(*Codec)

// WithField makes the codec use f instead of gf256.Default().
func WithField(f *gf256.Field) Option {
	return func(c *Codec) {
		if f != nil {
			c.field = f
		}
	}
}

// WithLogger sets the logger for decode diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics directs the codec's accounting to m instead of
// metrics.DefaultCodecMetrics.
func WithMetrics(m *metrics.CodecMetrics) Option {
	return func(c *Codec) {
		if m != nil {
			c.metrics = m
		}
	}
}

// New creates a Codec with parity symbols per codeword. parity must be in
// [MinParity, MaxParity].
func New(parity int, opts ...Option) (*Codec, error) {
	if parity < MinParity || parity > MaxParity {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]",
			ErrInvalidParity, parity, MinParity, MaxParity)
	}
	c := &Codec{
		parity:  parity,
		metrics: metrics.DefaultCodecMetrics,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.field == nil {
		c.field = gf256.Default()
	}
	if c.log == nil {
		c.log = log.Default().Module("rs255")
	}
	c.roots = generatorRoots(c.field, parity)
	c.gen = generator(c.field, c.roots)
	return c, nil
}

// Parity returns the number of parity symbols per codeword.
func (c *Codec) Parity() int { return c.parity }

// MessageLen returns the number of message symbols per codeword.
func (c *Codec) MessageLen() int { return CodewordLen - c.parity }

// Generator returns a copy of the generator polynomial.
func (c *Codec) Generator() *Poly { return c.gen.Clone() }

// Encode is a convenience wrapper that builds a Codec for parity and
// encodes message with it.
func Encode(message []byte, parity int) ([]byte, error) {
	c, err := New(parity)
	if err != nil {
		return nil, err
	}
	return c.Encode(message)
}

// Decode is a convenience wrapper that builds a Codec for parity and
// decodes received with it. See (*Codec).Decode.
func Decode(received, erasures []byte, parity int) ([]byte, int, error) {
	c, err := New(parity)
	if err != nil {
		return nil, 0, err
	}
	return c.Decode(received, erasures)
}
