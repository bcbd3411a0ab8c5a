// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package barrier

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// disseminationParty is the per-party state for [Dissemination]: a
// two-bank array of incoming round flags (indexed by parity so a fast
// party can begin its next episode before stragglers finish reading the
// previous one), plus the local sense and parity bits that select which
// bank is live this episode.
type disseminationParty struct {
	_        cacheLinePad
	flagsIn  [2][]atomix.Bool // [parity][round], written by the round's incoming partner
	sense    bool
	parity   int
	outSense bool
}

// Dissemination is a barrier requiring N = 2^R parties that runs R =
// log2(N) rounds of pairwise flag exchange per episode: in round r, party i
// signals partner (i+2^r) mod N and spins on its own flag set by partner
// (i-2^r) mod N. After R rounds every party has transitively observed
// every other party's arrival.
type Dissemination struct {
	n       int
	rounds  int
	parties []disseminationParty
	flagOut atomix.Bool
	cfg     config
}

// NewDissemination creates a dissemination barrier for n parties.
// n must be a power of two and >= 2.
func NewDissemination(n int, opts ...Option) (*Dissemination, error) {
	if err := validatePowerOfTwo("Dissemination", n); err != nil {
		return nil, err
	}
	rounds := log2(n)
	parties := make([]disseminationParty, n)
	for i := range parties {
		parties[i].flagsIn[0] = make([]atomix.Bool, rounds)
		parties[i].flagsIn[1] = make([]atomix.Bool, rounds)
		// Start at parity 1 so the first Await flips sense to true: the
		// zeroed (false) flags then cannot satisfy a spin before the
		// partner has written them.
		parties[i].parity = 1
	}
	return &Dissemination{n: n, rounds: rounds, parties: parties, cfg: newConfig(opts)}, nil
}

// Await runs one dissemination episode for party id.
func (b *Dissemination) Await(id int) {
	p := &b.parties[id]
	if p.parity == 1 {
		p.sense = !p.sense
	}
	p.parity = 1 - p.parity
	sense, parity := p.sense, p.parity

	for r := 0; r < b.rounds; r++ {
		out := (id + PowerOfTwo(r)) % b.n
		in := ((id-PowerOfTwo(r))%b.n + b.n) % b.n

		b.parties[out].flagsIn[parity][r].StoreRelease(sense)

		sw := spin.Wait{}
		for p.flagsIn[parity][r].LoadAcquire() != sense {
			sw.Once()
		}
		if b.cfg.hook != nil {
			b.cfg.hook(id, in)
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

// disseminationReduceParty adds a per-round value array to the plain
// dissemination party state, banked the same way as the flags.
type disseminationReduceParty[T Number] struct {
	_        cacheLinePad
	flagsIn  [2][]atomix.Bool
	values   [2][]T // [parity][round], length rounds+1
	sense    bool
	parity   int
	outSense bool
}

// DisseminationReduce is the reduction-overlay variant of [Dissemination].
// Every party returns the fold of op over all N contributions, visited in
// the dissemination partner schedule's order (round-doubling, not
// necessarily party-id order; for a non-associative operator such as
// floating-point Sum the result can differ from a party-id-order fold).
type DisseminationReduce[T Number] struct {
	n       int
	rounds  int
	parties []disseminationReduceParty[T]
	flagOut atomix.Bool
	op      Op[T]
	cfg     config
}

// NewDisseminationReduce creates a dissemination reduction barrier for n
// parties. n must be a power of two and >= 2.
func NewDisseminationReduce[T Number](n int, op Op[T], opts ...Option) (*DisseminationReduce[T], error) {
	if err := validatePowerOfTwo("DisseminationReduce", n); err != nil {
		return nil, err
	}
	rounds := log2(n)
	parties := make([]disseminationReduceParty[T], n)
	for i := range parties {
		parties[i].flagsIn[0] = make([]atomix.Bool, rounds)
		parties[i].flagsIn[1] = make([]atomix.Bool, rounds)
		parties[i].values[0] = make([]T, rounds+1)
		parties[i].values[1] = make([]T, rounds+1)
		parties[i].parity = 1 // first Await uses sense true, as in NewDissemination
	}
	return &DisseminationReduce[T]{n: n, rounds: rounds, parties: parties, op: op, cfg: newConfig(opts)}, nil
}

// Await contributes value for party id and returns the fold of op over all
// N contributions once the episode completes.
func (b *DisseminationReduce[T]) Await(id int, value T) T {
	p := &b.parties[id]
	if p.parity == 1 {
		p.sense = !p.sense
	}
	p.parity = 1 - p.parity
	sense, parity := p.sense, p.parity

	p.values[parity][0] = value

	for r := 0; r < b.rounds; r++ {
		out := (id + PowerOfTwo(r)) % b.n
		in := ((id-PowerOfTwo(r))%b.n + b.n) % b.n

		b.parties[out].flagsIn[parity][r].StoreRelease(sense)

		sw := spin.Wait{}
		for p.flagsIn[parity][r].LoadAcquire() != sense {
			sw.Once()
		}
		if b.cfg.hook != nil {
			b.cfg.hook(id, in)
		}
		p.values[parity][r+1] = b.op(p.values[parity][r], b.parties[in].values[parity][r])
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
