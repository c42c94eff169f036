package rs255

import "github.com/rs255/rs255/gf256"

// generatorRoots returns a^112, a^113, ..., a^(111+n).
func generatorRoots(f *gf256.Field, n int) []byte {
	roots := make([]byte, n)
	x := gf256.Primitive111
	for i := range roots {
		x = f.Mul(x, gf256.Primitive)
		roots[i] = x
	}
	return roots
}

// generator builds the monic polynomial (x - r0)(x - r1)...(x - r{n-1}),
// one linear factor at a time starting from the constant 1.
func generator(f *gf256.Field, roots []byte) *Poly {
	g := newZeroPoly(len(roots) + 1)
	g.coef[0] = 1
	g.trim()
	for _, r := range roots {
		g.mulRoot(f, r)
	}
	return g
}
