// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package barrier provides spin-based rendezvous barriers for a fixed,
// pre-registered set of peer worker goroutines that repeatedly meet.
//
// Each barrier episode blocks every participant until all have arrived,
// optionally combines per-party contributions with a reduction operator,
// optionally runs a single user-supplied action, and releases every party
// simultaneously for the next episode.
//
// # Algorithms
//
// Five barrier algorithms are provided, each trading round count, fan-out,
// and party-count constraints differently:
//
//	Central       - one shared counter, O(1) rounds, any N >= 2
//	Dissemination - ceil(log2 N) rounds of pairwise exchange, N a power of 2
//	Butterfly     - log2 N rounds of XOR-partner exchange, N a power of 2
//	Tournament    - single-elimination tree, any N >= 2
//	StaticTree    - asymmetric arrival tree rooted at party 0, N a power of 2
//
// # Quick Start
//
//	b, err := barrier.NewCentral(4)
//	if err != nil {
//	    // N < 2
//	}
//
//	for id := range 4 {
//	    go func(id int) {
//	        for range 1000 {
//	            b.Await(id)
//	        }
//	    }(id)
//	}
//
// # Reduction overlays
//
// Each algorithm has a generic reduction-overlay counterpart that folds a
// per-party value into a shared result using an associative [Op]:
//
//	b, _ := barrier.NewCentralReduce(4, barrier.Sum[float64]())
//
//	for id := range 4 {
//	    go func(id int) {
//	        total := b.Await(id, contributions[id])
//	        // total == sum of all four contributions
//	    }(id)
//	}
//
// # Actions and the generic hook
//
// An optional action runs exactly once per episode, invoked by the
// algorithm's designated last-arriver (central), root (tree, tournament),
// or party 0 (dissemination, butterfly):
//
//	b, _ := barrier.NewCentral(4, barrier.WithAction(func() {
//	    epoch++
//	}))
//
// An optional generic hook lets the application combine arbitrary per-party
// state at every pairwise meeting point the algorithm defines:
//
//	b, _ := barrier.NewDissemination(8, barrier.WithHook(func(dst, src int) {
//	    state[dst].Merge(state[src])
//	}))
//
// # Party count
//
// All algorithms require N >= 2. Dissemination, Butterfly, and StaticTree
// additionally require N to be a power of two; Central and Tournament accept
// any N >= 2. Violating these constraints fails construction with an error
// from [PartyCountError] or [PowerOfTwoError]; no algorithm validates N on
// the hot path.
//
// # Concurrency model
//
// Exactly one goroutine per party is expected to call Await, with party
// count bounded by the number of physical cores the caller pins goroutines
// to (via GOMAXPROCS and runtime.LockOSThread at the application layer,
// outside this package's scope). All waiting is spin-waiting on atomic
// words from [code.hybscloud.com/atomix], using [code.hybscloud.com/spin]
// for the CPU relaxation hint inside every spin loop. There is no parking,
// no timeout, and no broken-barrier detection: a party that fails to call
// Await hangs every other party in that episode.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives with
// explicit memory ordering and [code.hybscloud.com/spin] for CPU pause
// instructions inside spin loops, for ecosystem consistency with
// [code.hybscloud.com/lfq].
package barrier
