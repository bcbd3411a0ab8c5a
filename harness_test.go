// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package barrier_test

import (
	"sync"
	"sync/atomic"
	"testing"
)

// runParties spawns n goroutines, one per party id in [0, n), each calling
// await exactly k times, and waits for all of them to return. It is the
// shared harness for the "K episodes, no deadlock" stress tests required
// across every algorithm.
func runParties(t *testing.T, n, k int, await func(id int)) {
	t.Helper()
	var wg sync.WaitGroup
	wg.Add(n)
	for id := range n {
		go func(id int) {
			defer wg.Done()
			for range k {
				await(id)
			}
		}(id)
	}
	wg.Wait()
}

// runPartiesCounting is like runParties but also counts, per party, how
// many times await returned, verifying every party returns exactly k
// times.
func runPartiesCounting(t *testing.T, n, k int, await func(id int)) {
	t.Helper()
	counts := make([]int64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for id := range n {
		go func(id int) {
			defer wg.Done()
			for range k {
				await(id)
				atomic.AddInt64(&counts[id], 1)
			}
		}(id)
	}
	wg.Wait()
	for id, c := range counts {
		if int(c) != k {
			t.Errorf("party %d: returned %d times, want %d", id, c, k)
		}
	}
}
