// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package barrier

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// staticTreeParty is the per-party local sense bit for [StaticTree]. The
// arrival flag itself lives in the barrier's flags slice, indexed by id,
// since a party's parent (not the party itself) reads it.
type staticTreeParty struct {
	sense bool
}

// StaticTree is a barrier requiring N a power of two that uses an
// asymmetric arrival tree rooted at party 0: LEFT_CHILD(i) = 2i+1,
// RIGHT_CHILD(i) = 2i+2, with THRESH = (N-1)/2 splitting interior parties
// (two children) from leaves. Party 0 is special-cased to three children
// ({1, 2, N-1}) to compact the top two levels: under the 2i+1/2i+2
// recurrence, 1 and 2 are its natural children and N-1 (whose natural
// parent would be a leaf) has no other parent.
type StaticTree struct {
	n, thresh int
	flags     []atomix.Bool // flags[id], set by id, read by id's parent
	flagOut   atomix.Bool
	parties   []staticTreeParty
	cfg       config
}

// NewStaticTree creates a static tree barrier for n parties.
// n must be a power of two and >= 2.
func NewStaticTree(n int, opts ...Option) (*StaticTree, error) {
	if err := validatePowerOfTwo("StaticTree", n); err != nil {
		return nil, err
	}
	return &StaticTree{
		n:       n,
		thresh:  (n - 1) / 2,
		flags:   make([]atomix.Bool, n),
		parties: make([]staticTreeParty, n),
		cfg:     newConfig(opts),
	}, nil
}

// Await runs one static-tree episode for party id.
func (b *StaticTree) Await(id int) {
	p := &b.parties[id]
	p.sense = !p.sense
	sense := p.sense

	switch {
	case id == 0:
		b.spinFlag(1, sense)
		if b.cfg.hook != nil {
			b.cfg.hook(0, 1)
		}
		if b.n > 2 {
			b.spinFlag(2, sense)
			if b.cfg.hook != nil {
				b.cfg.hook(0, 2)
			}
		}
		if b.n > 3 {
			b.spinFlag(b.n-1, sense)
			if b.cfg.hook != nil {
				b.cfg.hook(0, b.n-1)
			}
		}
		if b.cfg.action != nil {
			b.cfg.action()
		}
		b.flagOut.StoreRelease(sense)

	case id < b.thresh:
		left, right := 2*id+1, 2*id+2
		b.spinFlag(left, sense)
		if b.cfg.hook != nil {
			b.cfg.hook(id, left)
		}
		b.spinFlag(right, sense)
		if b.cfg.hook != nil {
			b.cfg.hook(id, right)
		}
		b.flags[id].StoreRelease(sense)
		b.spinOut(sense)

	default: // leaf
		b.flags[id].StoreRelease(sense)
		b.spinOut(sense)
	}
}

func (b *StaticTree) spinFlag(child int, sense bool) {
	sw := spin.Wait{}
	for b.flags[child].LoadAcquire() != sense {
		sw.Once()
	}
}

func (b *StaticTree) spinOut(sense bool) {
	sw := spin.Wait{}
	for b.flagOut.LoadAcquire() != sense {
		sw.Once()
	}
}

// staticTreeReduceParty adds a scratch value to the plain party state: its
// own contribution, folded with its children's scratch values before it
// signals its parent.
type staticTreeReduceParty[T Number] struct {
	sense bool
	value T
}

// StaticTreeReduce is the reduction-overlay variant of [StaticTree]. Every
// party returns the fold of op over all N contributions; the root folds
// children's scratch slots in the order (1, 2, N-1).
type StaticTreeReduce[T Number] struct {
	n, thresh int
	flags     []atomix.Bool
	flagOut   atomix.Bool
	parties   []staticTreeReduceParty[T]
	op        Op[T]
	cfg       config
	result    T
}

// NewStaticTreeReduce creates a static tree reduction barrier for n
// parties. n must be a power of two and >= 2.
func NewStaticTreeReduce[T Number](n int, op Op[T], opts ...Option) (*StaticTreeReduce[T], error) {
	if err := validatePowerOfTwo("StaticTreeReduce", n); err != nil {
		return nil, err
	}
	return &StaticTreeReduce[T]{
		n:       n,
		thresh:  (n - 1) / 2,
		flags:   make([]atomix.Bool, n),
		parties: make([]staticTreeReduceParty[T], n),
		op:      op,
		cfg:     newConfig(opts),
	}, nil
}

// Await contributes value for party id and returns the fold of op over all
// N contributions once the episode completes.
func (b *StaticTreeReduce[T]) Await(id int, value T) T {
	p := &b.parties[id]
	p.sense = !p.sense
	sense := p.sense
	p.value = value

	switch {
	case id == 0:
		b.spinFlag(1, sense)
		if b.cfg.hook != nil {
			b.cfg.hook(0, 1)
		}
		result := b.op(p.value, b.parties[1].value)
		if b.n > 2 {
			b.spinFlag(2, sense)
			if b.cfg.hook != nil {
				b.cfg.hook(0, 2)
			}
			result = b.op(result, b.parties[2].value)
		}
		if b.n > 3 {
			b.spinFlag(b.n-1, sense)
			if b.cfg.hook != nil {
				b.cfg.hook(0, b.n-1)
			}
			result = b.op(result, b.parties[b.n-1].value)
		}
		if b.cfg.action != nil {
			b.cfg.action()
		}
		b.result = result
		b.flagOut.StoreRelease(sense)
		return result

	case id < b.thresh:
		left, right := 2*id+1, 2*id+2
		b.spinFlag(left, sense)
		if b.cfg.hook != nil {
			b.cfg.hook(id, left)
		}
		p.value = b.op(p.value, b.parties[left].value)
		b.spinFlag(right, sense)
		if b.cfg.hook != nil {
			b.cfg.hook(id, right)
		}
		p.value = b.op(p.value, b.parties[right].value)
		b.flags[id].StoreRelease(sense)
		b.spinOut(sense)
		return b.result

	default: // leaf
		b.flags[id].StoreRelease(sense)
		b.spinOut(sense)
		return b.result
	}
}

func (b *StaticTreeReduce[T]) spinFlag(child int, sense bool) {
	sw := spin.Wait{}
	for b.flags[child].LoadAcquire() != sense {
		sw.Once()
	}
}

func (b *StaticTreeReduce[T]) spinOut(sense bool) {
	sw := spin.Wait{}
	for b.flagOut.LoadAcquire() != sense {
		sw.Once()
	}
}
