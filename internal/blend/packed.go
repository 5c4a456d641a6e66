package blend

// Lane masks for A<<24 | R<<16 | G<<8 | B pixels.
const (
	rbMask   uint32 = 0x00FF00FF
	agMask   uint32 = 0xFF00FF00
	gMask    uint32 = 0x0000FF00
	rgbMask  uint32 = 0x00FFFFFF
	oneAlpha uint32 = 0x01000000
)

// Blend mixes src over dst with coverage alpha. Red and blue share one
// multiply, alpha and green another.
//
// The source contributes a unit alpha lane instead of its own, so the
// result alpha is alpha + (255-alpha)*dstA/256. Over an opaque destination
// that is 254 or 255, which keeps repeated composites from eroding alpha.
func Blend(dst, src uint32, alpha uint8) uint32 {
	a := uint32(alpha)
	inv := uint32(inv255(alpha))
	rb := ((inv * (dst & rbMask)) + (a * (src & rbMask))) >> 8
	ag := (inv * ((dst & agMask) >> 8)) + (a * (oneAlpha | ((src & gMask) >> 8)))
	return (rb & rbMask) | (ag & agMask)
}

// Composite is Blend with exact endpoints: alpha 0 returns dst and
// alpha 255 returns src.
func Composite(dst, src uint32, alpha uint8) uint32 {
	switch alpha {
	case 0:
		return dst
	case 255:
		return src
	default:
		return Blend(dst, src, alpha)
	}
}

// Assign returns src's color channels with the alpha lane set to alpha.
func Assign(src uint32, alpha uint8) uint32 {
	return src&rgbMask | uint32(alpha)<<24
}

// Xor flips dst's color channels by src's, keeping dst's alpha lane.
func Xor(dst, src uint32) uint32 {
	return dst ^ (src & rgbMask)
}

// Invert complements the color channels of c, keeping its alpha lane.
func Invert(c uint32) uint32 {
	return c ^ rgbMask
}
