package rs255

import (
	"fmt"

	"github.com/rs255/rs255/gf256"
)

// correction is one located symbol and the value XORed into it.
type correction struct {
	pos   int
	value byte
}

// findErrors searches all 256 field elements for roots of sigma and
// computes each root's error value with Forney's formula:
//
//	value = x^111 * omega(x) / sigma'(x)
//
// where sigma'(x) = oddPart(sigma)(x^2). The x^111 factor accounts for the
// first generator root being a^112. Corrections are returned in ascending
// position order.
//
// The pattern is uncorrectable when the number of roots differs from
// sigma's degree or from declared, or when 0 is a root (0 names no
// position).
func findErrors(f *gf256.Field, sigma, omega *Poly, declared int) ([]correction, error) {
	deg := sigma.Degree()
	if deg != declared {
		return nil, fmt.Errorf("%w: locator degree %d, expected %d",
			ErrUncorrectable, deg, declared)
	}
	delta := sigma.oddPart()

	var found [CodewordLen]bool
	var values [CodewordLen]byte
	roots := 0
	for i := 0; i < 256; i++ {
		x := byte(i)
		if sigma.Eval(f, x) != 0 {
			continue
		}
		if x == 0 {
			return nil, fmt.Errorf("%w: zero is a locator root", ErrUncorrectable)
		}
		roots++
		pos := (gf256.Order - int(f.Log(x))) % gf256.Order
		d := delta.Eval(f, f.Mul(x, x))
		found[pos] = true
		values[pos] = f.Mul(f.Pow111(x), f.Mul(omega.Eval(f, x), f.Inv(d)))
	}
	if roots != deg {
		return nil, fmt.Errorf("%w: %d roots for locator degree %d",
			ErrUncorrectable, roots, deg)
	}

	out := make([]correction, 0, roots)
	for pos, ok := range found {
		if ok {
			out = append(out, correction{pos: pos, value: values[pos]})
		}
	}
	return out, nil
}
