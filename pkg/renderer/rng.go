package renderer

import (
	"math/rand"
	"sync/atomic"
)

const seedPoolSize = 256

// seedPool pre-generates a fixed pool of seeds by streaming a master
// generator, then hands out one generator per claim. The pool size
// covers realistic worker counts; the claim counter wraps when it is
// exhausted, so seed reuse is possible but deterministic.
type seedPool struct {
	seeds [seedPoolSize]uint64
	next  atomic.Uint64
}

func newSeedPool(masterSeed uint64) *seedPool {
	p := &seedPool{}
	master := rand.New(rand.NewSource(int64(masterSeed)))
	for i := range p.seeds {
		p.seeds[i] = master.Uint64()
	}
	return p
}

// Claim returns a generator seeded from the next pool slot
func (p *seedPool) Claim() *rand.Rand {
	idx := p.next.Add(1) - 1
	return rand.New(rand.NewSource(int64(p.seeds[idx%seedPoolSize])))
}
