package rs255

import "fmt"

// Encode returns a new codeword holding message at [n, 255) and its parity
// at [0, n). len(message) must be MessageLen().
func (c *Codec) Encode(message []byte) ([]byte, error) {
	if len(message) != c.MessageLen() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			ErrMessageLength, len(message), c.MessageLen())
	}
	codeword := make([]byte, CodewordLen)
	copy(codeword[c.parity:], message)
	c.writeParity(codeword)
	return codeword, nil
}

// EncodeInPlace computes the parity of a codeword whose message is already
// at [n, 255) and writes it to [0, n). Whatever [0, n) held before is
// ignored.
func (c *Codec) EncodeInPlace(codeword []byte) error {
	if len(codeword) != CodewordLen {
		return fmt.Errorf("%w: got %d bytes, want %d",
			ErrCodewordLength, len(codeword), CodewordLen)
	}
	c.writeParity(codeword)
	return nil
}

// writeParity divides message(x)*x^n by the generator and stores the
// degree n-1 remainder in the parity positions. Division runs from the top
// coefficient down, cancelling one leading term per step.
func (c *Codec) writeParity(codeword []byte) {
	n := c.parity
	g := c.gen.coef

	var rem [CodewordLen]byte
	copy(rem[n:], codeword[n:])
	for i := CodewordLen - 1; i >= n; i-- {
		q := rem[i]
		if q == 0 {
			continue
		}
		// g is monic, so g[n]*q cancels rem[i] exactly.
		for j := 0; j <= n; j++ {
			rem[i-j] ^= c.field.Mul(q, g[n-j])
		}
	}
	copy(codeword[:n], rem[:n])
	c.metrics.Encodes.Inc()
}
