// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package barrier

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// tournamentParty is the per-party state for [Tournament]: one flag per
// round, set by that round's loser and observed by that round's winner or
// root. Unlike Dissemination/Butterfly, a single sense-toggling flag per
// round is sufficient (no parity banks) because each (winner, loser) pair
// is fixed for the barrier's lifetime and never reused within an episode.
type tournamentParty struct {
	_          cacheLinePad
	roundFlags []atomix.Bool
	sense      bool
}

// Tournament is a single-elimination barrier accepting any N >= 2. A
// virtual tournament size V = NextPowerOfTwo(N) with R = log2(V) rounds is
// used to derive each party's role per round: WINNER, LOSER, WILDCARD (no
// real opponent this round), or ROOT (the round-R-1 winner at id 0, which
// runs the action and publishes the release).
type Tournament struct {
	n, v, rounds int
	parties      []tournamentParty
	flagOut      atomix.Bool
	cfg          config
}

// NewTournament creates a tournament barrier for n parties. n must be >= 2;
// unlike Dissemination, Butterfly, and StaticTree, n need not be a power of
// two.
func NewTournament(n int, opts ...Option) (*Tournament, error) {
	if err := validateN("Tournament", n); err != nil {
		return nil, err
	}
	v := NextPowerOfTwo(n)
	rounds := log2(v)
	parties := make([]tournamentParty, n)
	for i := range parties {
		parties[i].roundFlags = make([]atomix.Bool, rounds)
	}
	return &Tournament{n: n, v: v, rounds: rounds, parties: parties, cfg: newConfig(opts)}, nil
}

// Await runs one tournament episode for party id.
func (b *Tournament) Await(id int) {
	p := &b.parties[id]
	p.sense = !p.sense
	sense := p.sense

	for r := 0; r < b.rounds; r++ {
		partner := (id ^ PowerOfTwo(r)) % b.v
		if partner >= b.n {
			continue // wildcard: no real opponent this round
		}

		isWinner := id%PowerOfTwo(r+1) == 0
		if !isWinner {
			// loser: signal the winner/root and wait for the release
			b.parties[partner].roundFlags[r].StoreRelease(sense)
			sw := spin.Wait{}
			for b.flagOut.LoadAcquire() != sense {
				sw.Once()
			}
			return
		}

		sw := spin.Wait{}
		for p.roundFlags[r].LoadAcquire() != sense {
			sw.Once()
		}
		if b.cfg.hook != nil {
			b.cfg.hook(id, partner)
		}

		if id == 0 && r == b.rounds-1 {
			if b.cfg.action != nil {
				b.cfg.action()
			}
			b.flagOut.StoreRelease(sense)
			return
		}
	}
}

// tournamentReduceParty adds a running fold value to the plain party state.
type tournamentReduceParty[T Number] struct {
	_          cacheLinePad
	roundFlags []atomix.Bool
	sense      bool
	value      T
}

// TournamentReduce is the reduction-overlay variant of [Tournament]. Every
// party returns the fold of op over all N contributions: each winner folds
// its partner's value in on its way up the tree, the root folds last and
// publishes the result.
type TournamentReduce[T Number] struct {
	n, v, rounds int
	parties      []tournamentReduceParty[T]
	flagOut      atomix.Bool
	op           Op[T]
	cfg          config
	result       T
}

// NewTournamentReduce creates a tournament reduction barrier for n
// parties. n must be >= 2; n need not be a power of two.
func NewTournamentReduce[T Number](n int, op Op[T], opts ...Option) (*TournamentReduce[T], error) {
	if err := validateN("TournamentReduce", n); err != nil {
		return nil, err
	}
	v := NextPowerOfTwo(n)
	rounds := log2(v)
	parties := make([]tournamentReduceParty[T], n)
	for i := range parties {
		parties[i].roundFlags = make([]atomix.Bool, rounds)
	}
	return &TournamentReduce[T]{n: n, v: v, rounds: rounds, parties: parties, op: op, cfg: newConfig(opts)}, nil
}

// Await contributes value for party id and returns the fold of op over all
// N contributions once the episode completes.
func (b *TournamentReduce[T]) Await(id int, value T) T {
	p := &b.parties[id]
	p.value = value
	p.sense = !p.sense
	sense := p.sense

	for r := 0; r < b.rounds; r++ {
		partner := (id ^ PowerOfTwo(r)) % b.v
		if partner >= b.n {
			continue
		}

		isWinner := id%PowerOfTwo(r+1) == 0
		if !isWinner {
			b.parties[partner].roundFlags[r].StoreRelease(sense)
			sw := spin.Wait{}
			for b.flagOut.LoadAcquire() != sense {
				sw.Once()
			}
			return b.result
		}

		sw := spin.Wait{}
		for p.roundFlags[r].LoadAcquire() != sense {
			sw.Once()
		}
		if b.cfg.hook != nil {
			b.cfg.hook(id, partner)
		}
		p.value = b.op(p.value, b.parties[partner].value)

		if id == 0 && r == b.rounds-1 {
			if b.cfg.action != nil {
				b.cfg.action()
			}
			b.result = p.value
			b.flagOut.StoreRelease(sense)
			return p.value
		}
	}
	return p.value
}
