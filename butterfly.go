// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package barrier

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// butterflyParty is the per-party state for [Butterfly]: identical shape to
// [disseminationParty] since both algorithms share the two-bank sense/parity
// scheme; only the partner formula differs.
type butterflyParty struct {
	_        cacheLinePad
	flagsIn  [2][]atomix.Bool // [parity][round]
	sense    bool
	parity   int
	outSense bool
}

// Butterfly is a barrier requiring N = 2^R parties that runs R = log2(N)
// rounds of symmetric XOR-partner flag exchange per episode: in round r,
// party i exchanges flags with party i XOR 2^r (its own incoming and
// outgoing partner are the same party, unlike Dissemination).
type Butterfly struct {
	n       int
	rounds  int
	parties []butterflyParty
	flagOut atomix.Bool
	cfg     config
}

// NewButterfly creates a butterfly barrier for n parties.
// n must be a power of two and >= 2.
func NewButterfly(n int, opts ...Option) (*Butterfly, error) {
	if err := validatePowerOfTwo("Butterfly", n); err != nil {
		return nil, err
	}
	rounds := log2(n)
	parties := make([]butterflyParty, n)
	for i := range parties {
		parties[i].flagsIn[0] = make([]atomix.Bool, rounds)
		parties[i].flagsIn[1] = make([]atomix.Bool, rounds)
		// Start at parity 1 so the first Await flips sense to true: the
		// zeroed (false) flags then cannot satisfy a spin before the
		// partner has written them.
		parties[i].parity = 1
	}
	return &Butterfly{n: n, rounds: rounds, parties: parties, cfg: newConfig(opts)}, nil
}

// Await runs one butterfly episode for party id.
func (b *Butterfly) Await(id int) {
	p := &b.parties[id]
	if p.parity == 1 {
		p.sense = !p.sense
	}
	p.parity = 1 - p.parity
	sense, parity := p.sense, p.parity

	for r := 0; r < b.rounds; r++ {
		partner := id ^ PowerOfTwo(r)

		b.parties[partner].flagsIn[parity][r].StoreRelease(sense)

		sw := spin.Wait{}
		for p.flagsIn[parity][r].LoadAcquire() != sense {
			sw.Once()
		}
		if b.cfg.hook != nil {
			b.cfg.hook(id, partner)
		}
	}

	if b.cfg.action == nil {
		return
	}
	p.outSense = !p.outSense
	outSense := p.outSense
	if id == 0 {
		b.cfg.action()
		b.flagOut.StoreRelease(outSense)
		return
	}
	sw := spin.Wait{}
	for b.flagOut.LoadAcquire() != outSense {
		sw.Once()
	}
}

// butterflyReduceParty adds a per-round value array, banked like the flags.
type butterflyReduceParty[T Number] struct {
	_        cacheLinePad
	flagsIn  [2][]atomix.Bool
	values   [2][]T // [parity][round], length rounds+1
	sense    bool
	parity   int
	outSense bool
}

// ButterflyReduce is the reduction-overlay variant of [Butterfly]. Every
// party returns the fold of op over all N contributions; per-round
// intermediate values at parity p for party i are available for inspection
// in tests via the documented round-doubling order (values[0] is the raw
// contribution, values[r+1] folds in round r's partner).
type ButterflyReduce[T Number] struct {
	n       int
	rounds  int
	parties []butterflyReduceParty[T]
	flagOut atomix.Bool
	op      Op[T]
	cfg     config
}

// NewButterflyReduce creates a butterfly reduction barrier for n parties.
// n must be a power of two and >= 2.
func NewButterflyReduce[T Number](n int, op Op[T], opts ...Option) (*ButterflyReduce[T], error) {
	if err := validatePowerOfTwo("ButterflyReduce", n); err != nil {
		return nil, err
	}
	rounds := log2(n)
	parties := make([]butterflyReduceParty[T], n)
	for i := range parties {
		parties[i].flagsIn[0] = make([]atomix.Bool, rounds)
		parties[i].flagsIn[1] = make([]atomix.Bool, rounds)
		parties[i].values[0] = make([]T, rounds+1)
		parties[i].values[1] = make([]T, rounds+1)
		parties[i].parity = 1 // first Await uses sense true, as in NewButterfly
	}
	return &ButterflyReduce[T]{n: n, rounds: rounds, parties: parties, op: op, cfg: newConfig(opts)}, nil
}

// Await contributes value for party id and returns the fold of op over all
// N contributions once the episode completes.
func (b *ButterflyReduce[T]) Await(id int, value T) T {
	p := &b.parties[id]
	if p.parity == 1 {
		p.sense = !p.sense
	}
	p.parity = 1 - p.parity
	sense, parity := p.sense, p.parity

	p.values[parity][0] = value

	for r := 0; r < b.rounds; r++ {
		partner := id ^ PowerOfTwo(r)

		b.parties[partner].flagsIn[parity][r].StoreRelease(sense)

		sw := spin.Wait{}
		for p.flagsIn[parity][r].LoadAcquire() != sense {
			sw.Once()
		}
		if b.cfg.hook != nil {
			b.cfg.hook(id, partner)
		}
		p.values[parity][r+1] = b.op(p.values[parity][r], b.parties[partner].values[parity][r])
	}

	result := p.values[parity][b.rounds]

	if b.cfg.action == nil {
		return result
	}
	p.outSense = !p.outSense
	outSense := p.outSense
	if id == 0 {
		b.cfg.action()
		b.flagOut.StoreRelease(outSense)
		return result
	}
	sw := spin.Wait{}
	for b.flagOut.LoadAcquire() != outSense {
		sw.Once()
	}
	return result
}
