// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package barrier_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/barrier"
)

func TestConstructionErrors(t *testing.T) {
	t.Run("party count too small", func(t *testing.T) {
		for _, n := range []int{-1, 0, 1} {
			if _, err := barrier.NewCentral(n); !errors.Is(err, barrier.ErrPartyCountOutOfRange) {
				t.Errorf("NewCentral(%d): got %v, want ErrPartyCountOutOfRange", n, err)
			}
			if _, err := barrier.NewTournament(n); !errors.Is(err, barrier.ErrPartyCountOutOfRange) {
				t.Errorf("NewTournament(%d): got %v, want ErrPartyCountOutOfRange", n, err)
			}
			if _, err := barrier.NewDissemination(n); !errors.Is(err, barrier.ErrPartyCountOutOfRange) {
				t.Errorf("NewDissemination(%d): got %v, want ErrPartyCountOutOfRange", n, err)
			}
		}
	})

	t.Run("power of two required", func(t *testing.T) {
		for _, n := range []int{3, 5, 6, 7, 9} {
			if _, err := barrier.NewDissemination(n); !errors.Is(err, barrier.ErrPowerOfTwoRequired) {
				t.Errorf("NewDissemination(%d): got %v, want ErrPowerOfTwoRequired", n, err)
			}
			if _, err := barrier.NewButterfly(n); !errors.Is(err, barrier.ErrPowerOfTwoRequired) {
				t.Errorf("NewButterfly(%d): got %v, want ErrPowerOfTwoRequired", n, err)
			}
			if _, err := barrier.NewStaticTree(n); !errors.Is(err, barrier.ErrPowerOfTwoRequired) {
				t.Errorf("NewStaticTree(%d): got %v, want ErrPowerOfTwoRequired", n, err)
			}
		}
	})

	t.Run("central and tournament accept non power of two", func(t *testing.T) {
		for _, n := range []int{3, 5, 7} {
			if _, err := barrier.NewCentral(n); err != nil {
				t.Errorf("NewCentral(%d): unexpected error %v", n, err)
			}
			if _, err := barrier.NewTournament(n); err != nil {
				t.Errorf("NewTournament(%d): unexpected error %v", n, err)
			}
		}
	})

	t.Run("idempotent validation", func(t *testing.T) {
		_, err1 := barrier.NewDissemination(6)
		_, err2 := barrier.NewDissemination(6)
		if err1.Error() != err2.Error() {
			t.Errorf("construction errors differ across identical invalid args: %v vs %v", err1, err2)
		}
	})

	t.Run("error identifies algorithm and value", func(t *testing.T) {
		_, err := barrier.NewStaticTree(6)
		var pot *barrier.PowerOfTwoError
		if !errors.As(err, &pot) {
			t.Fatalf("expected *PowerOfTwoError, got %T", err)
		}
		if pot.Algorithm != "StaticTree" || pot.N != 6 {
			t.Errorf("got Algorithm=%q N=%d, want StaticTree/6", pot.Algorithm, pot.N)
		}
	})
}
