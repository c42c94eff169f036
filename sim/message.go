package sim

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// MessageSource derives reproducible trial messages from a SHAKE256 stream
// keyed by (seed, parity, trial).
type MessageSource struct {
	seed uint64
}

// NewMessageSource returns a source for seed.
func NewMessageSource(seed uint64) *MessageSource {
	return &MessageSource{seed: seed}
}

// Message returns length bytes for the given parity level and trial.
func (s *MessageSource) Message(parity, trial, length int) []byte {
	var key [24]byte
	binary.LittleEndian.PutUint64(key[0:], s.seed)
	binary.LittleEndian.PutUint64(key[8:], uint64(parity))
	binary.LittleEndian.PutUint64(key[16:], uint64(trial))

	h := sha3.NewShake256()
	h.Write(key[:])
	out := make([]byte, length)
	h.Read(out)
	return out
}
