// Package gf256 implements GF(2^8) arithmetic for the RS(255) codec. The
// field is generated by the irreducible polynomial x^8 + x^7 + x^2 + x + 1
// and 0xAC is used as the primitive element for logarithms, powers and the
// code's generator roots.
//
// Multiplication and inversion are O(1) lookups into tables that are built
// once and never modified afterwards, so a *Field is safe for concurrent use.
package gf256

import "sync"

// GF(2^8) constants.
const (
	// Polynomial is the generating polynomial x^8 + x^7 + x^2 + x + 1.
	Polynomial = 0x187

	// reduce is the low byte of Polynomial, XORed in whenever a doubling
	// overflows bit 7.
	reduce = 0x87

	// Order is the number of non-zero field elements.
	Order = 255

	// Primitive is the element a whose powers enumerate all non-zero
	// elements.
	Primitive byte = 0xAC

	// Primitive111 is a^111.
	Primitive111 byte = 0x0F

	// LogZero is returned by Log for 0, which is no power of a.
	LogZero byte = 255
)

// Field holds the multiplication and inverse tables of GF(2^8).
type Field struct {
	mulTbl [256][256]byte
	invTbl [256]byte
}

var (
	defaultField *Field
	defaultOnce  sync.Once
)

// Default returns the process-wide field, building its tables on first use.
// Every caller observes the fully initialized tables.
func Default() *Field {
	defaultOnce.Do(func() {
		defaultField = New()
	})
	return defaultField
}

// New builds a field with freshly computed tables. Most callers want
// Default, which shares one set of tables per process.
func New() *Field {
	f := &Field{}
	f.initTables()
	return f
}

// initTables fills the multiplication table by carryless multiplication and
// then the inverse table through the table itself.
func (f *Field) initTables() {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			f.mulTbl[a][b] = mulSlow(byte(a), byte(b))
		}
	}

	// 1/a = a^254 and 254 = 1111 1110b: six rounds of square-and-multiply
	// reach a^127, one final squaring gives a^254.
	for i := 1; i < 256; i++ {
		a := byte(i)
		x := a
		for round := 0; round < 6; round++ {
			x = f.Mul(x, x)
			x = f.Mul(x, a)
		}
		f.invTbl[a] = f.Mul(x, x)
	}
	f.invTbl[0] = 0
}

// mulSlow multiplies a and b by double-and-reduce over the bits of b, most
// significant first.
func mulSlow(a, b byte) byte {
	var x byte
	for i := 7; i >= 0; i-- {
		carry := x&0x80 != 0
		x <<= 1
		if carry {
			x ^= reduce
		}
		if b&(1<<uint(i)) != 0 {
			x ^= a
		}
	}
	return x
}

// Add returns a + b. Addition and subtraction are both XOR.
func (f *Field) Add(a, b byte) byte {
	return a ^ b
}

// Mul returns a * b.
func (f *Field) Mul(a, b byte) byte {
	return f.mulTbl[a][b]
}

// Inv returns the multiplicative inverse of a. Inv(0) is 0 so that the
// operation is total.
func (f *Field) Inv(a byte) byte {
	return f.invTbl[a]
}

// Log returns the discrete logarithm of x base Primitive, in [0, 254].
// It returns LogZero for 0. The search is linear; Log is called once per
// located root, not in inner loops.
func (f *Field) Log(x byte) byte {
	p := byte(1)
	for i := 0; i < Order; i++ {
		if p == x {
			return byte(i)
		}
		p = f.Mul(p, Primitive)
	}
	return LogZero
}

// Exp returns Primitive^n. Negative exponents are reduced modulo Order.
func (f *Field) Exp(n int) byte {
	n %= Order
	if n < 0 {
		n += Order
	}
	p := byte(1)
	for i := 0; i < n; i++ {
		p = f.Mul(p, Primitive)
	}
	return p
}

// Pow111 returns x^111 by square-and-multiply over the bits of 111
// (0110 1111b).
func (f *Field) Pow111(x byte) byte {
	const e = 111
	y := byte(1)
	for i := 7; i >= 0; i-- {
		y = f.Mul(y, y)
		if e&(1<<uint(i)) != 0 {
			y = f.Mul(y, x)
		}
	}
	return y
}
