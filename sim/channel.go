// Package sim drives Monte-Carlo measurements of the rs255 codec over a
// symbol channel with independent errors and erasures.
package sim

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidProbability is returned for channel probabilities outside
// [0, 1] or whose sum exceeds 1.
var ErrInvalidProbability = errors.New("sim: invalid channel probability")

// Channel corrupts each symbol independently: with probability ErrorProb it
// XORs a random non-zero byte into the symbol, and with probability
// ErasureProb it overwrites the symbol with a random byte and flags it in
// the mask.
type Channel struct {
	errorProb   float64
	erasureProb float64
}

// NewChannel returns a channel with the given per-symbol probabilities.
func NewChannel(errorProb, erasureProb float64) (*Channel, error) {
	// The negated comparisons also reject NaN.
	if !(errorProb >= 0 && errorProb <= 1) || !(erasureProb >= 0 && erasureProb <= 1) {
		return nil, fmt.Errorf("%w: error %v, erasure %v",
			ErrInvalidProbability, errorProb, erasureProb)
	}
	if errorProb+erasureProb > 1 {
		return nil, fmt.Errorf("%w: error %v + erasure %v exceeds 1",
			ErrInvalidProbability, errorProb, erasureProb)
	}
	return &Channel{errorProb: errorProb, erasureProb: erasureProb}, nil
}

// ErrorProb returns the per-symbol error probability.
func (ch *Channel) ErrorProb() float64 { return ch.errorProb }

// ErasureProb returns the per-symbol erasure probability.
func (ch *Channel) ErasureProb() float64 { return ch.erasureProb }

// Transmission is one codeword after the channel.
type Transmission struct {
	Received []byte
	Mask     []byte
	Errors   int
	Erasures int
}

// WithinRadius reports whether the pattern is guaranteed correctable with
// parity symbols, i.e. 2*Errors + Erasures <= parity.
func (t *Transmission) WithinRadius(parity int) bool {
	return 2*t.Errors+t.Erasures <= parity
}

// Transmit sends codeword through the channel using r as the randomness
// source. codeword is not modified.
func (ch *Channel) Transmit(r *rand.Rand, codeword []byte) *Transmission {
	t := &Transmission{
		Received: make([]byte, len(codeword)),
		Mask:     make([]byte, len(codeword)),
	}
	copy(t.Received, codeword)
	for i := range t.Received {
		u := r.Float64()
		switch {
		case u < ch.errorProb:
			t.Received[i] ^= byte(1 + r.IntN(255))
			t.Errors++
		case u < ch.errorProb+ch.erasureProb:
			t.Received[i] = byte(r.IntN(256))
			t.Mask[i] = 1
			t.Erasures++
		}
	}
	return t
}
