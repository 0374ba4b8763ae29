// Package sample provides the random source drawn from on every beat.
package sample

import (
	"math/rand/v2"
	"sync"
)

// Source draws uniformly distributed unsigned 8-bit values.
type Source interface {
	Uint8() uint8
}

// runtimeSource uses the process-wide generator, which the runtime seeds
// from system entropy. Values are not reproducible across runs.
type runtimeSource struct{}

// NewSource returns the entropy-seeded source.
func NewSource() Source {
	return runtimeSource{}
}

func (runtimeSource) Uint8() uint8 {
	return uint8(rand.Uint32())
}

// FixedSource replays a fixed sequence of values, wrapping around at the end.
type FixedSource struct {
	mu     sync.Mutex
	values []uint8
	next   int
}

// Fixed returns a source that cycles through values. It returns 0 forever
// when values is empty.
func Fixed(values ...uint8) *FixedSource {
	return &FixedSource{values: values}
}

func (f *FixedSource) Uint8() uint8 {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

var (
	_ Source = runtimeSource{}
	_ Source = (*FixedSource)(nil)
)
