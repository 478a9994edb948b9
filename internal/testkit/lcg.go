package testkit

// LCG is a 64-bit linear congruential generator (Knuth MMIX constants).
// It is deliberately tiny and fully deterministic across platforms so
// fixture data generated from a seed is stable forever.
type LCG struct {
	state uint64
}

// NewLCG seeds a generator.
func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed}
}

// Next advances the generator and returns the raw 64-bit state.
func (g *LCG) Next() uint64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	return g.state
}

// Float returns a uniform value in [0, 1) with 53 bits of precision.
func (g *LCG) Float() float64 {
	return float64(g.Next()>>11) / float64(1<<53)
}

// Norm returns an approximately standard normal value (Irwin-Hall sum of
// twelve uniforms, recentered).
func (g *LCG) Norm() float64 {
	s := 0.0
	for i := 0; i < 12; i++ {
		s += g.Float()
	}
	return s - 6.0
}
