package rs255

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/rs255/rs255/gf256"
	"github.com/rs255/rs255/log"
	"github.com/rs255/rs255/metrics"
)

// newTestCodec returns a codec with private metrics and a silent logger.
func newTestCodec(t testing.TB, parity int) *Codec {
	t.Helper()
	c, err := New(parity,
		WithLogger(log.Discard()),
		WithMetrics(metrics.NewCodecMetrics(metrics.NewRegistry())))
	if err != nil {
		t.Fatalf("New(%d): %v", parity, err)
	}
	return c
}

// encodeRandom encodes a random message and returns the codeword.
func encodeRandom(t testing.TB, c *Codec, r *rand.Rand) []byte {
	t.Helper()
	cw, err := c.Encode(randomBytes(r, c.MessageLen()))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return cw
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNewParityRange(t *testing.T) {
	for _, n := range []int{-1, 0, 255, 256} {
		if _, err := New(n); !errors.Is(err, ErrInvalidParity) {
			t.Fatalf("New(%d): err = %v, want ErrInvalidParity", n, err)
		}
	}
	for _, n := range []int{MinParity, 2, 32, MaxParity} {
		c, err := New(n)
		if err != nil {
			t.Fatalf("New(%d): %v", n, err)
		}
		if c.Parity() != n || c.MessageLen() != CodewordLen-n {
			t.Fatalf("New(%d): parity %d, message len %d", n, c.Parity(), c.MessageLen())
		}
	}
}

func TestNewWithField(t *testing.T) {
	f := gf256.New()
	c, err := New(8, WithField(f), WithField(nil), WithLogger(nil), WithMetrics(nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.field != f {
		t.Fatal("WithField was not applied")
	}
	if c.log == nil || c.metrics == nil {
		t.Fatal("nil options must keep the defaults")
	}
}

// ---------------------------------------------------------------------------
// Generator
// ---------------------------------------------------------------------------

func TestGeneratorRoots(t *testing.T) {
	f := gf256.Default()
	roots := generatorRoots(f, MaxParity)
	seen := make(map[byte]bool)
	for i, r := range roots {
		if want := f.Exp(firstRootLog + i); r != want {
			t.Fatalf("root %d = %#x, want a^%d = %#x", i, r, firstRootLog+i, want)
		}
		if seen[r] {
			t.Fatalf("root %d (%#x) repeats", i, r)
		}
		seen[r] = true
	}
}

func TestGeneratorPolynomial(t *testing.T) {
	f := gf256.Default()
	for _, n := range []int{1, 2, 4, 16, 100, 254} {
		c := newTestCodec(t, n)
		g := c.Generator()
		if g.Degree() != n {
			t.Fatalf("n=%d: degree %d", n, g.Degree())
		}
		if g.Lead() != 1 {
			t.Fatalf("n=%d: generator is not monic", n)
		}
		for i, r := range c.roots {
			if g.Eval(f, r) != 0 {
				t.Fatalf("n=%d: g(root %d) != 0", n, i)
			}
		}
		if g.Eval(f, f.Exp(firstRootLog-1)) == 0 {
			t.Fatalf("n=%d: a^111 must not be a root", n)
		}
	}
}

func TestGeneratorIsCopy(t *testing.T) {
	c := newTestCodec(t, 4)
	g := c.Generator()
	g.coef[0] ^= 0xFF
	if c.gen.coef[0] == g.coef[0] {
		t.Fatal("Generator exposes internal state")
	}
}

// ---------------------------------------------------------------------------
// Encode
// ---------------------------------------------------------------------------

func TestEncodeLayout(t *testing.T) {
	r := rand.New(rand.NewPCG(10, 11))
	c := newTestCodec(t, 16)
	msg := randomBytes(r, c.MessageLen())
	cw, err := c.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(cw) != CodewordLen {
		t.Fatalf("codeword length %d", len(cw))
	}
	if !bytes.Equal(cw[16:], msg) {
		t.Fatal("message region differs from the message")
	}
	again, _ := c.Encode(msg)
	if !bytes.Equal(cw, again) {
		t.Fatal("Encode is not deterministic")
	}
}

func TestEncodeAllParities(t *testing.T) {
	r := rand.New(rand.NewPCG(12, 13))
	for n := MinParity; n <= MaxParity; n++ {
		c := newTestCodec(t, n)
		cw := encodeRandom(t, c, r)
		ok, err := c.Verify(cw)
		if err != nil {
			t.Fatalf("n=%d: Verify: %v", n, err)
		}
		if !ok {
			t.Fatalf("n=%d: encoded word has non-zero syndromes", n)
		}
	}
}

func TestEncodeZeroMessage(t *testing.T) {
	c := newTestCodec(t, 10)
	cw, err := c.Encode(make([]byte, c.MessageLen()))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(cw, make([]byte, CodewordLen)) {
		t.Fatal("zero message must encode to the zero codeword")
	}
}

func TestEncodeIsLinear(t *testing.T) {
	r := rand.New(rand.NewPCG(14, 15))
	c := newTestCodec(t, 32)
	a := randomBytes(r, c.MessageLen())
	b := randomBytes(r, c.MessageLen())
	sum := make([]byte, len(a))
	for i := range a {
		sum[i] = a[i] ^ b[i]
	}
	ca, _ := c.Encode(a)
	cb, _ := c.Encode(b)
	cs, _ := c.Encode(sum)
	for i := range cs {
		if cs[i] != ca[i]^cb[i] {
			t.Fatalf("Encode(a^b)[%d] != Encode(a)^Encode(b)", i)
		}
	}
}

func TestEncodeInPlace(t *testing.T) {
	r := rand.New(rand.NewPCG(16, 17))
	c := newTestCodec(t, 20)
	cw := encodeRandom(t, c, r)

	word := make([]byte, CodewordLen)
	copy(word, cw)
	for i := 0; i < 20; i++ {
		word[i] = 0xEE
	}
	if err := c.EncodeInPlace(word); err != nil {
		t.Fatalf("EncodeInPlace: %v", err)
	}
	if !bytes.Equal(word, cw) {
		t.Fatal("EncodeInPlace differs from Encode")
	}
	if err := c.EncodeInPlace(word[:100]); !errors.Is(err, ErrCodewordLength) {
		t.Fatalf("short buffer: err = %v", err)
	}
}

func TestEncodeMessageLength(t *testing.T) {
	c := newTestCodec(t, 4)
	for _, l := range []int{0, 250, 252, 255} {
		if _, err := c.Encode(make([]byte, l)); !errors.Is(err, ErrMessageLength) {
			t.Fatalf("len %d: err = %v, want ErrMessageLength", l, err)
		}
	}
}

func TestPackageEncodeDecode(t *testing.T) {
	msg := bytes.Repeat([]byte{0x42}, 247)
	cw, err := Encode(msg, 8)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	recv := append([]byte(nil), cw...)
	recv[77] ^= 0x01
	got, count, err := Decode(recv, nil, 8)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if count != 1 || !bytes.Equal(got, cw) {
		t.Fatalf("count = %d, codeword restored = %v", count, bytes.Equal(got, cw))
	}
	if _, err := Encode(msg, 0); !errors.Is(err, ErrInvalidParity) {
		t.Fatalf("Encode parity 0: err = %v", err)
	}
	if _, _, err := Decode(recv, nil, 255); !errors.Is(err, ErrInvalidParity) {
		t.Fatalf("Decode parity 255: err = %v", err)
	}
}

// ---------------------------------------------------------------------------
// Syndromes
// ---------------------------------------------------------------------------

func TestSyndromesDetectChange(t *testing.T) {
	r := rand.New(rand.NewPCG(18, 19))
	c := newTestCodec(t, 6)
	cw := encodeRandom(t, c, r)
	for _, pos := range []int{0, 5, 6, 254} {
		word := append([]byte(nil), cw...)
		word[pos] ^= 0x80
		ok, err := c.Verify(word)
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if ok {
			t.Fatalf("flip at %d not detected", pos)
		}
	}
	if _, err := c.Syndromes(cw[:10]); !errors.Is(err, ErrCodewordLength) {
		t.Fatalf("short word: err = %v", err)
	}
	if _, err := c.Verify(nil); !errors.Is(err, ErrCodewordLength) {
		t.Fatalf("nil word: err = %v", err)
	}
}

func TestSyndromeOfSingleError(t *testing.T) {
	f := gf256.Default()
	c := newTestCodec(t, 4)
	// The zero word plus value v at position p has syndromes v*root^p.
	word := make([]byte, CodewordLen)
	word[9] = 0x33
	s, err := c.Syndromes(word)
	if err != nil {
		t.Fatalf("Syndromes: %v", err)
	}
	for i, root := range c.roots {
		want := f.Mul(0x33, f.Exp(9*int(f.Log(root))))
		if s[i] != want {
			t.Fatalf("S[%d] = %#x, want %#x", i, s[i], want)
		}
	}
}

func TestErasureLocator(t *testing.T) {
	f := gf256.Default()
	mask := make([]byte, CodewordLen)
	mask[254], mask[0], mask[5] = 1, 0xFF, 7

	loc, positions := erasureLocator(f, mask)
	if want := []int{0, 5, 254}; len(positions) != 3 ||
		positions[0] != want[0] || positions[1] != want[1] || positions[2] != want[2] {
		t.Fatalf("positions = %v, want %v", positions, want)
	}
	if loc.Degree() != 3 || loc.Coeff(0) == 0 {
		t.Fatalf("locator degree %d, constant %#x", loc.Degree(), loc.Coeff(0))
	}
	for _, i := range positions {
		if loc.Eval(f, f.Exp(gf256.Order-i)) != 0 {
			t.Fatalf("locator does not vanish at position %d", i)
		}
	}

	loc, positions = erasureLocator(f, nil)
	if len(positions) != 0 || loc.Degree() != 0 || loc.Coeff(0) != 1 {
		t.Fatalf("nil mask: positions %v, locator %v", positions, loc.Coeffs())
	}
	loc, positions = erasureLocator(f, make([]byte, CodewordLen))
	if len(positions) != 0 || loc.Degree() != 0 || loc.Coeff(0) != 1 {
		t.Fatalf("empty mask: positions %v, locator %v", positions, loc.Coeffs())
	}
}
