// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package barrier_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/barrier"
	"code.hybscloud.com/iox"
)

// TestConstructWithBackoff exercises the pattern a caller uses when the
// party count comes from an eventually-consistent external source (e.g. a
// cluster membership watcher still converging): retry construction with
// backoff until the power-of-two constraint is satisfied, using the same
// [iox.Backoff] the ecosystem's other packages (see
// [code.hybscloud.com/lfq]) use for their would-block retry loops.
func TestConstructWithBackoff(t *testing.T) {
	candidates := []int{6, 6, 8} // membership watcher converges on the third read
	attempt := 0

	construct := func() (*barrier.Dissemination, error) {
		n := candidates[attempt]
		attempt++
		return barrier.NewDissemination(n)
	}

	var b *barrier.Dissemination
	backoff := iox.Backoff{}
	for {
		var err error
		b, err = construct()
		if err == nil {
			break
		}
		if !errors.Is(err, barrier.ErrPowerOfTwoRequired) {
			t.Fatalf("unexpected construction error: %v", err)
		}
		if attempt >= len(candidates) {
			t.Fatalf("exhausted candidates without a valid party count")
		}
		backoff.Wait()
	}

	if attempt != 3 {
		t.Errorf("construct: took %d attempts, want 3", attempt)
	}
	if b == nil {
		t.Fatal("construct: barrier is nil after success")
	}
}
