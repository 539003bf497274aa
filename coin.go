package skiplist

import "time"

const defaultSeed = uint64(0xdeadbeefcafebabe)

// Coin is the list's only source of randomness. Flip reports a fair coin
// toss; height draws and probabilistic tower growth consume it. A Coin
// does not need to be safe for concurrent use.
type Coin interface {
	Flip() bool
}

// CoinFunc adapts a plain function to the Coin interface.
type CoinFunc func() bool

// Flip calls f.
func (f CoinFunc) Flip() bool { return f() }

// NewCoin returns a fair coin backed by a xorshift64-star generator
// seeded with seed. A zero seed falls back to a fixed constant so the
// generator never degenerates.
func NewCoin(seed uint64) Coin {
	if seed == 0 {
		seed = defaultSeed
	}
	return &xorshift{state: seed}
}

func newRandomSeed() uint64 {
	seed := uint64(time.Now().UnixNano())
	if seed == 0 {
		seed = defaultSeed
	}
	return seed
}

// xorshift is a xorshift64-star generator. Cheap and uniform enough for
// level draws.
type xorshift struct {
	state uint64
}

func (x *xorshift) next() uint64 {
	s := x.state
	s ^= s >> 12
	s ^= s << 25
	s ^= s >> 27
	if s == 0 {
		s = defaultSeed
	}
	x.state = s
	return s * 2685821657736338717
}

// Flip reports the top bit of the next draw.
func (x *xorshift) Flip() bool {
	return x.next()>>63 == 1
}
