package rs255

import "github.com/rs255/rs255/gf256"

// euclidPair is one (remainder, cofactor) row of the extended Euclidean
// algorithm. Each pair owns its buffers.
type euclidPair struct {
	r *Poly
	t *Poly
}

// euclidState drives the bounded extended Euclidean algorithm on
// (x^n, S(x)) where S is the erasure-adjusted syndrome polynomial. Every
// step keeps t(x)*S(x) == r(x) mod x^n for both pairs.
type euclidState struct {
	f        *gf256.Field
	pairs    [2]euclidPair
	reducing int // index of the pair whose remainder is being reduced
	bound    int
}

// maxRemainderDegree is the stopping bound on the remainder degree for n
// parity symbols and k erasures. Integer division truncates.
func maxRemainderDegree(n, k int) int {
	return k + (n+1-k)/2 - 1
}

func newEuclidState(f *gf256.Field, product *Poly, n, k int) *euclidState {
	syn := newZeroPoly(n + 1)
	copy(syn.coef, product.coef[:min(len(product.coef), n)])
	syn.trim()

	one := newZeroPoly(n + 1)
	one.coef[0] = 1
	one.trim()

	return &euclidState{
		f: f,
		pairs: [2]euclidPair{
			{r: syn, t: one},
			{r: monomial(1, n), t: newZeroPoly(n + 1)},
		},
		reducing: 0,
		bound:    maxRemainderDegree(n, k),
	}
}

// step cancels the leading term of the reduced pair's remainder with one
// scaled, shifted copy of the other pair, applying the same operation to
// the cofactors. It reports false once the reduced remainder has fallen
// below the other's degree.
func (s *euclidState) step() bool {
	a, b := &s.pairs[s.reducing], &s.pairs[1-s.reducing]
	if a.r.Degree() < b.r.Degree() {
		return false
	}
	q := s.f.Mul(a.r.Lead(), s.f.Inv(b.r.Lead()))
	shift := a.r.Degree() - b.r.Degree()
	a.r.subShifted(s.f, q, b.r, shift)
	a.t.subShifted(s.f, q, b.t, shift)
	return true
}

// run reduces until the last reduced remainder has degree <= bound and
// returns that pair's remainder (omega) and cofactor (sigma).
//
// The pair not being reduced always has a remainder of degree > bound >= 0,
// so its leading coefficient is non-zero and each step strictly lowers the
// reduced remainder's degree or zeroes it.
func (s *euclidState) run() (omega, sigma *Poly) {
	for {
		for s.step() {
		}
		cur := &s.pairs[s.reducing]
		if cur.r.Degree() <= s.bound {
			return cur.r, cur.t
		}
		s.reducing = 1 - s.reducing
	}
}

// euclid returns the error evaluator omega and the error locator sigma for
// the erasure/syndrome product, n parity symbols and k erasures. Callers
// must ensure k <= n.
func euclid(f *gf256.Field, product *Poly, n, k int) (omega, sigma *Poly) {
	return newEuclidState(f, product, n, k).run()
}
