package rs255

import "github.com/rs255/rs255/gf256"

// Poly is a polynomial over GF(2^8) with coefficients in ascending powers.
// deg always indexes the highest non-zero coefficient; the zero polynomial
// has degree 0. Coefficients above deg are zero.
type Poly struct {
	coef []byte
	deg  int
}

// NewPoly returns a polynomial with a copy of the given coefficients,
// constant term first.
func NewPoly(coef ...byte) *Poly {
	p := &Poly{coef: make([]byte, len(coef))}
	copy(p.coef, coef)
	if len(p.coef) == 0 {
		p.coef = make([]byte, 1)
	}
	p.trim()
	return p
}

// newZeroPoly returns the zero polynomial with room for size coefficients.
func newZeroPoly(size int) *Poly {
	if size < 1 {
		size = 1
	}
	return &Poly{coef: make([]byte, size)}
}

// monomial returns c*x^n.
func monomial(c byte, n int) *Poly {
	p := newZeroPoly(n + 1)
	p.coef[n] = c
	p.trim()
	return p
}

// trim moves deg down to the highest non-zero coefficient, stopping at 0.
func (p *Poly) trim() {
	d := len(p.coef) - 1
	for d > 0 && p.coef[d] == 0 {
		d--
	}
	p.deg = d
}

// grow makes sure coefficient index n is addressable.
func (p *Poly) grow(n int) {
	if n < len(p.coef) {
		return
	}
	coef := make([]byte, n+1)
	copy(coef, p.coef)
	p.coef = coef
}

// Degree returns the index of the highest non-zero coefficient.
func (p *Poly) Degree() int { return p.deg }

// IsZero reports whether every coefficient is zero.
func (p *Poly) IsZero() bool { return p.deg == 0 && p.coef[0] == 0 }

// Coeff returns the coefficient of x^i, zero beyond the stored range.
func (p *Poly) Coeff(i int) byte {
	if i < 0 || i >= len(p.coef) {
		return 0
	}
	return p.coef[i]
}

// Lead returns the coefficient of x^Degree().
func (p *Poly) Lead() byte { return p.coef[p.deg] }

// Coeffs returns a copy of the coefficients up to and including the degree.
func (p *Poly) Coeffs() []byte {
	out := make([]byte, p.deg+1)
	copy(out, p.coef)
	return out
}

// Clone returns an independent copy of p.
func (p *Poly) Clone() *Poly {
	return NewPoly(p.coef[:p.deg+1]...)
}

// Eval evaluates p at x with Horner's rule.
func (p *Poly) Eval(f *gf256.Field, x byte) byte {
	var y byte
	for i := p.deg; i >= 0; i-- {
		y = f.Mul(y, x) ^ p.coef[i]
	}
	return y
}

// evalWord evaluates a raw coefficient slice (constant term first) at x.
func evalWord(f *gf256.Field, word []byte, x byte) byte {
	var y byte
	for i := len(word) - 1; i >= 0; i-- {
		y = f.Mul(y, x) ^ word[i]
	}
	return y
}

// MulPoly returns the product p*q.
func MulPoly(f *gf256.Field, p, q *Poly) *Poly {
	out := newZeroPoly(p.deg + q.deg + 1)
	for i := 0; i <= p.deg; i++ {
		a := p.coef[i]
		if a == 0 {
			continue
		}
		for j := 0; j <= q.deg; j++ {
			out.coef[i+j] ^= f.Mul(a, q.coef[j])
		}
	}
	out.trim()
	return out
}

// mulRoot multiplies p in place by (x - root). Subtraction is XOR, so the
// factor is (x + root).
func (p *Poly) mulRoot(f *gf256.Field, root byte) {
	n := p.deg
	if p.IsZero() {
		return
	}
	p.grow(n + 1)
	for j := n; j >= 0; j-- {
		p.coef[j+1] = f.Mul(root, p.coef[j+1]) ^ p.coef[j]
	}
	p.coef[0] = f.Mul(root, p.coef[0])
	p.trim()
}

// subShifted subtracts q*x^shift*o from p in place.
func (p *Poly) subShifted(f *gf256.Field, q byte, o *Poly, shift int) {
	if q == 0 || o.IsZero() {
		return
	}
	p.grow(o.deg + shift)
	for j := 0; j <= o.deg; j++ {
		p.coef[j+shift] ^= f.Mul(q, o.coef[j])
	}
	p.trim()
}

// truncate reduces p modulo x^n.
func (p *Poly) truncate(n int) {
	for i := n; i < len(p.coef); i++ {
		p.coef[i] = 0
	}
	p.trim()
}

// oddPart returns the polynomial whose i-th coefficient is p's (2i+1)-th.
// In characteristic 2 the formal derivative p'(x) equals oddPart(p)(x^2),
// since the even-power terms vanish and squaring is additive.
func (p *Poly) oddPart() *Poly {
	out := newZeroPoly(p.deg/2 + 1)
	for i := 0; 2*i+1 <= p.deg; i++ {
		out.coef[i] = p.coef[2*i+1]
	}
	out.trim()
	return out
}
