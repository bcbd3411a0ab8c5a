// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package barrier

import (
	"errors"
	"fmt"
)

// ErrPartyCountOutOfRange indicates a barrier was constructed with N < 2.
//
// Every barrier requires at least two parties to rendezvous; a barrier of
// one party is trivial and a barrier of zero is meaningless. Construction
// fails immediately with a [PartyCountError] wrapping this sentinel.
var ErrPartyCountOutOfRange = errors.New("barrier: party count out of range")

// ErrPowerOfTwoRequired indicates a barrier algorithm that requires N to be
// a power of two (Dissemination, Butterfly, StaticTree) was constructed
// with a non-power-of-two N. Construction fails immediately with a
// [PowerOfTwoError] wrapping this sentinel.
var ErrPowerOfTwoRequired = errors.New("barrier: power-of-two party count required")

// PartyCountError reports that a barrier's N was out of range at
// construction time. N < 2 for every algorithm.
type PartyCountError struct {
	Algorithm string
	N         int
}

func (e *PartyCountError) Error() string {
	return fmt.Sprintf("barrier: %s: party count %d is out of range (must be >= 2)", e.Algorithm, e.N)
}

func (e *PartyCountError) Unwrap() error {
	return ErrPartyCountOutOfRange
}

// PowerOfTwoError reports that a barrier's N was not a power of two at
// construction time, for an algorithm that requires it.
type PowerOfTwoError struct {
	Algorithm string
	N         int
}

func (e *PowerOfTwoError) Error() string {
	return fmt.Sprintf("barrier: %s: party count %d is not a power of two", e.Algorithm, e.N)
}

func (e *PowerOfTwoError) Unwrap() error {
	return ErrPowerOfTwoRequired
}

// validateN checks the common N >= 2 constraint shared by every algorithm.
func validateN(algorithm string, n int) error {
	if n < 2 {
		return &PartyCountError{Algorithm: algorithm, N: n}
	}
	return nil
}

// validatePowerOfTwo additionally checks that n is a power of two, for the
// algorithms that require it.
func validatePowerOfTwo(algorithm string, n int) error {
	if err := validateN(algorithm, n); err != nil {
		return err
	}
	if !IsPowerOfTwo(n) {
		return &PowerOfTwoError{Algorithm: algorithm, N: n}
	}
	return nil
}
