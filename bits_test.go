// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package barrier_test

import (
	"testing"

	"code.hybscloud.com/barrier"
)

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{
		{0, false},
		{-4, false},
		{1, true},
		{2, true},
		{3, false},
		{4, true},
		{5, false},
		{1024, true},
		{1023, false},
	}
	for _, tt := range tests {
		if got := barrier.IsPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("IsPowerOfTwo(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{8, 8},
		{9, 16},
		{1000, 1024},
	}
	for _, tt := range tests {
		if got := barrier.NextPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 2},
		{2, 4},
		{3, 8},
		{10, 1024},
	}
	for _, tt := range tests {
		if got := barrier.PowerOfTwo(tt.n); got != tt.want {
			t.Errorf("PowerOfTwo(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
