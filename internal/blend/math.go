// Package blend implements integer compositing of packed ARGB pixels and
// the per-pixel decision table used by render passes.
//
// The div255 family avoids integer division by using bit shifts and
// addition. MulDiv255 runs once per pixel to combine run alpha with the
// source alpha lane.
//
// References:
//   - Alpha blending without division: https://arxiv.org/abs/2202.02864
//   - Alvy Ray Smith's technical memos: http://alvyray.com/Memos/
package blend

// div255 divides x by 255 using fast shift approximation.
//
// Formula: (x + 255) >> 8
//
// The maximum error is +1 for some input values. For inputs up to
// 255*255 the result is within [0, 255].
func div255(x uint16) uint16 {
	return (x + 255) >> 8
}

// div255Exact divides x by 255 exactly without using division.
//
// Formula: ((x + 1) + ((x + 1) >> 8)) >> 8
func div255Exact(x uint16) uint16 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// MulDiv255 multiplies two bytes and divides by 255 using the fast
// approximation. MulDiv255(255, x) == x and MulDiv255(0, x) == 0.
func MulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// mulDiv255Exact is the reference for MulDiv255.
func mulDiv255Exact(a, b byte) byte {
	return byte(div255Exact(uint16(a) * uint16(b)))
}

// inv255 computes 255 - x (inverse alpha).
func inv255(x byte) byte {
	return 255 - x
}
