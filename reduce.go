// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package barrier

// Number is the constraint satisfied by the four primitive numeric widths
// the reduction overlays support: 32- and 64-bit integers and floats.
//
// The original per-algorithm template generator duplicated a single-type
// reduction implementation into one variant per numeric type, producing up
// to twenty typed entry points across the five algorithms. Go generics
// replace the generator entirely: one generic algorithm type per barrier
// kind, instantiated at whichever [Number] the caller needs.
type Number interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// Op is an associative binary combiner over a numeric scalar. Op must be
// referentially transparent: no allocation, no side effects, since spin
// paths call it on the hot path and a misbehaving Op can livelock a barrier
// episode.
type Op[T Number] func(a, b T) T

// Min returns a combiner that keeps the lesser of its two operands, with a
// left-operand tie-break (returns a when a == b).
func Min[T Number]() Op[T] {
	return func(a, b T) T {
		if a <= b {
			return a
		}
		return b
	}
}

// Max returns a combiner that keeps the greater of its two operands, with a
// left-operand tie-break (returns a when a == b).
func Max[T Number]() Op[T] {
	return func(a, b T) T {
		if a >= b {
			return a
		}
		return b
	}
}

// Sum returns a combiner that adds its two operands, using the wrapping or
// IEEE-754 semantics of the underlying type. No saturation is applied.
func Sum[T Number]() Op[T] {
	return func(a, b T) T {
		return a + b
	}
}

// Hook is an application-defined side-effecting binary combine over two
// party ids, invoked at every pairwise meeting point an algorithm defines,
// in both the plain and the reduction-overlay variants. The contract is: party dst combines its own state with
// party src's state, mutating only dst's state; src must not be mutated.
type Hook func(dst, src int)
