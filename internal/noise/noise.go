package noise

import (
	"math"
	"math/rand/v2"
)

// grads holds the eight gradient directions used for corner hashing. The
// hash selects one via the low three bits, so the table length must stay 8.
var grads = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Perlin is a deterministic 2D gradient-noise generator. The permutation
// table is fixed at construction; Sample never mutates it, so a value is
// safe for concurrent reads.
type Perlin struct {
	perm [512]uint8
}

// New builds a generator whose permutation table is a seed-shuffled
// permutation of 0..255, duplicated to length 512 so corner lookups never
// need a modulo.
func New(seed int64) *Perlin {
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	rng.Shuffle(256, func(i, j int) { p[i], p[j] = p[j], p[i] })

	n := &Perlin{}
	for i := 0; i < 512; i++ {
		n.perm[i] = p[i&255]
	}
	return n
}

// fade is the quintic smoothstep t^3*(t*(6t-15)+10).
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// grad returns the dot product of the hashed gradient direction and (x, y).
func grad(hash uint8, x, y float64) float64 {
	g := grads[hash&7]
	return g[0]*x + g[1]*y
}

// Sample evaluates classic 2D gradient noise at (x, y). Pure function of
// the seed and the coordinates.
func (n *Perlin) Sample(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	xi := int(fx) & 255
	yi := int(fy) & 255
	xf := x - fx
	yf := y - fy

	u := fade(xf)
	v := fade(yf)

	p := &n.perm
	aa := p[int(p[xi])+yi]
	ab := p[int(p[xi])+yi+1]
	ba := p[int(p[xi+1])+yi]
	bb := p[int(p[xi+1])+yi+1]

	x1 := lerp(grad(aa, xf, yf), grad(ba, xf-1, yf), u)
	x2 := lerp(grad(ab, xf, yf-1), grad(bb, xf-1, yf-1), u)
	return lerp(x1, x2, v)
}
