package starfield

// LCG parameters. The state never leaves [0, lcgModulus).
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// DefaultSeed is the seed used by the site when none is configured.
const DefaultSeed int64 = 12345

// Seeded is a linear congruential generator producing a reproducible
// stream of floats in [0, 1). It is not safe for concurrent use.
type Seeded struct {
	state int64
}

// NewSeeded returns a generator for seed. Any seed is accepted; it is
// reduced modulo the LCG modulus, which does not change the sequence.
func NewSeeded(seed int64) *Seeded {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	return &Seeded{state: s}
}

// Next advances the state and returns it scaled to [0, 1).
func (r *Seeded) Next() float64 {
	r.state = (r.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(r.state) / lcgModulus
}

// Intn returns floor(Next() * n), an index in [0, n).
func (r *Seeded) Intn(n int) int {
	return int(r.Next() * float64(n))
}
