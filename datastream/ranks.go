package datastream

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// RankSource draws element ranks from a fixed discrete distribution.
// Rank 0 is the most likely element.
type RankSource interface {
	// Next draws a rank in [0, N()).
	Next() int
	// N reports the number of ranks.
	N() int
	// Weights returns the normalized probability of each rank.
	Weights() []float64
}

// ranks carries the distribution shared by the concrete samplers.
type ranks struct {
	weights []float64
}

// N reports the number of ranks.
func (r *ranks) N() int { return len(r.weights) }

// Weights returns a copy of the normalized rank probabilities.
func (r *ranks) Weights() []float64 {
	cp := make([]float64, len(r.weights))
	copy(cp, r.weights)
	return cp
}

// CDF returns the cumulative distribution over ranks.
func (r *ranks) CDF() []float64 {
	cdf := make([]float64, len(r.weights))
	sum := 0.0
	for i, w := range r.weights {
		sum += w
		cdf[i] = sum
	}
	return cdf
}

// Entropy returns the distribution's entropy in bits.
func (r *ranks) Entropy() float64 {
	h := 0.0
	for _, p := range r.weights {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// ZipfRanks samples ranks with probability proportional to
// 1/(v+rank)^s.
type ZipfRanks struct {
	ranks
	rng  *rand.Rand
	zipf *rand.Zipf
}

// NewZipfRanks builds a Zipf sampler over n ranks. s must be greater
// than 1 and v at least 1.
func NewZipfRanks(n int, s, v float64, seed uint64) (*ZipfRanks, error) {
	if n <= 0 {
		return nil, fmt.Errorf("datastream: invalid rank count %d", n)
	}
	if s <= 1 || v < 1 {
		return nil, fmt.Errorf("datastream: invalid zipf params: s=%v must be >1, v=%v must be >=1", s, v)
	}

	rng := rand.New(rand.NewPCG(seed, 0))
	weights := make([]float64, n)
	sum := 0.0
	for i := range weights {
		weights[i] = 1 / math.Pow(v+float64(i), s)
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}

	return &ZipfRanks{
		ranks: ranks{weights: weights},
		rng:   rng,
		zipf:  rand.NewZipf(rng, s, v, uint64(n-1)),
	}, nil
}

// Next draws a rank in [0, N()).
func (z *ZipfRanks) Next() int { return int(z.zipf.Uint64()) }

// UniformRanks samples every rank with equal probability.
type UniformRanks struct {
	ranks
	rng *rand.Rand
}

// NewUniformRanks builds a uniform sampler over n ranks.
func NewUniformRanks(n int, seed uint64) (*UniformRanks, error) {
	if n <= 0 {
		return nil, fmt.Errorf("datastream: invalid rank count %d", n)
	}
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1 / float64(n)
	}
	return &UniformRanks{
		ranks: ranks{weights: weights},
		rng:   rand.New(rand.NewPCG(seed, 0)),
	}, nil
}

// Next draws a rank in [0, N()).
func (u *UniformRanks) Next() int { return u.rng.IntN(len(u.weights)) }
