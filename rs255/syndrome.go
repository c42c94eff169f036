package rs255

import (
	"fmt"

	"github.com/rs255/rs255/gf256"
)

// Syndromes evaluates word at the n generator roots, in root order. All
// syndromes are zero iff word is a codeword.
func (c *Codec) Syndromes(word []byte) ([]byte, error) {
	if len(word) != CodewordLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			ErrCodewordLength, len(word), CodewordLen)
	}
	return c.syndromes(word), nil
}

// Verify reports whether word is a valid codeword.
func (c *Codec) Verify(word []byte) (bool, error) {
	s, err := c.Syndromes(word)
	if err != nil {
		return false, err
	}
	return allZero(s), nil
}

func (c *Codec) syndromes(word []byte) []byte {
	s := make([]byte, c.parity)
	for i, r := range c.roots {
		s[i] = evalWord(c.field, word, r)
	}
	return s
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// erasureLocator returns the product of (x - a^(255-i)) over every position
// i flagged in mask, and the flagged positions in ascending order. A nil
// mask has no erasures.
func erasureLocator(f *gf256.Field, mask []byte) (*Poly, []int) {
	var positions []int
	for i, m := range mask {
		if m != 0 {
			positions = append(positions, i)
		}
	}
	loc := newZeroPoly(len(positions) + 1)
	loc.coef[0] = 1
	loc.trim()
	for _, i := range positions {
		loc.mulRoot(f, f.Exp(gf256.Order-i))
	}
	return loc, positions
}
