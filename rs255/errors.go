package rs255

import "errors"

// Codec errors. Boundary violations are reported before any arithmetic
// runs; ErrUncorrectable is the only decoding outcome error.
var (
	ErrUncorrectable  = errors.New("rs255: uncorrectable error pattern")
	ErrInvalidParity  = errors.New("rs255: parity count out of range")
	ErrMessageLength  = errors.New("rs255: message length mismatch")
	ErrCodewordLength = errors.New("rs255: codeword length mismatch")
	ErrMaskLength     = errors.New("rs255: erasure mask length mismatch")
)
