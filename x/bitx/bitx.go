// Package bitx holds bit-field helpers shared by the register back-ends.
package bitx

import "golang.org/x/exp/constraints"

// Mask returns width low bits set. A width of T's size or more gives all
// ones, since an oversized shift yields zero.
func Mask[T constraints.Unsigned](width uint) T {
	return T(1)<<width - 1
}

// Field extracts the width-bit field at pos.
func Field[T constraints.Unsigned](reg T, pos, width uint) T {
	return (reg >> pos) & Mask[T](width)
}

// WithField returns reg with the width-bit field at pos replaced by v.
// Bits of v above width are discarded.
func WithField[T constraints.Unsigned](reg T, pos, width uint, v T) T {
	m := Mask[T](width)
	return reg&^(m<<pos) | (v&m)<<pos
}

// Bit reports whether bit n of reg is set.
func Bit[T constraints.Unsigned](reg T, n uint) bool {
	return reg&(T(1)<<n) != 0
}

// WithBit returns reg with bit n set or cleared.
func WithBit[T constraints.Unsigned](reg T, n uint, on bool) T {
	if on {
		return reg | T(1)<<n
	}
	return reg &^ (T(1) << n)
}
