// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package barrier

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Central is a barrier based on a single shared arrival counter with sense
// reversal. It accepts any party count N >= 2; it is the only algorithm
// besides Tournament that does not require a power-of-two N.
//
// Central is the simplest algorithm: O(1) atomic operations per party per
// episode, at the cost of every party contending on the same cache line
// for the arrival counter.
type Central struct {
	_       cacheLinePad
	counter atomix.Uint64
	_       cacheLinePad
	goFlag  atomix.Bool
	_       cacheLinePad
	n       int
	cfg     config
}

// NewCentral creates a central barrier for n parties.
// Returns a [PartyCountError] if n < 2.
func NewCentral(n int, opts ...Option) (*Central, error) {
	if err := validateN("Central", n); err != nil {
		return nil, err
	}
	return &Central{n: n, cfg: newConfig(opts)}, nil
}

// Await blocks until all N parties have called Await for the current
// episode, runs the configured action (if any) exactly once, then releases
// every party. id must be in [0, N) and must be called at most once per
// party per episode.
func (b *Central) Await(id int) {
	localGo := b.goFlag.LoadAcquire()

	arrived := b.counter.AddAcqRel(1)
	if arrived == uint64(b.n) {
		b.counter.StoreRelaxed(0)
		if b.cfg.hook != nil {
			for i := 1; i < b.n; i++ {
				b.cfg.hook(0, i)
			}
		}
		if b.cfg.action != nil {
			b.cfg.action()
		}
		b.goFlag.StoreRelease(!localGo)
		return
	}

	sw := spin.Wait{}
	for b.goFlag.LoadAcquire() == localGo {
		sw.Once()
	}
}

// CentralReduce is the reduction-overlay variant of [Central]: every party
// contributes a value of type T and every party receives the left-fold of
// op over all N contributions in party-id order.
type CentralReduce[T Number] struct {
	_       cacheLinePad
	counter atomix.Uint64
	_       cacheLinePad
	goFlag  atomix.Bool
	_       cacheLinePad
	n       int
	op      Op[T]
	cfg     config
	values  []T // per-party scratch, written before the atomic increment
	result  T   // folded result, set by the releaser before the fan-out
}

// NewCentralReduce creates a central reduction barrier for n parties
// combining per-party values with op. Returns a [PartyCountError] if n < 2.
func NewCentralReduce[T Number](n int, op Op[T], opts ...Option) (*CentralReduce[T], error) {
	if err := validateN("CentralReduce", n); err != nil {
		return nil, err
	}
	return &CentralReduce[T]{
		n:      n,
		op:     op,
		cfg:    newConfig(opts),
		values: make([]T, n),
	}, nil
}

// Await contributes value for party id and blocks until every party has
// arrived; all parties then receive the fold of op over every contribution
// in party-id order.
func (b *CentralReduce[T]) Await(id int, value T) T {
	b.values[id] = value

	localGo := b.goFlag.LoadAcquire()

	arrived := b.counter.AddAcqRel(1)
	if arrived == uint64(b.n) {
		b.counter.StoreRelaxed(0)
		result := b.values[0]
		for i := 1; i < b.n; i++ {
			if b.cfg.hook != nil {
				b.cfg.hook(0, i)
			}
			result = b.op(result, b.values[i])
		}
		b.result = result
		if b.cfg.action != nil {
			b.cfg.action()
		}
		b.goFlag.StoreRelease(!localGo)
		return result
	}

	sw := spin.Wait{}
	for b.goFlag.LoadAcquire() == localGo {
		sw.Once()
	}
	return b.result
}
