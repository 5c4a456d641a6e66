package pixpipe

import (
	"image/color"
	"strconv"
)

// Lane layout of a packed pixel: A<<24 | R<<16 | G<<8 | B.
const (
	AShift = 24
	RShift = 16
	GShift = 8
	BShift = 0

	AMask  uint32 = 0xFF << AShift
	RMask  uint32 = 0xFF << RShift
	GMask  uint32 = 0xFF << GShift
	BMask  uint32 = 0xFF << BShift
	RGBMask       = RMask | GMask | BMask

	// RBMask and AGMask pair two lanes so one multiply blends both.
	RBMask = RMask | BMask
	AGMask = AMask | GMask

	// OneAlpha is a unit in the alpha lane once AGMask has been shifted
	// down by 8. Blending the source with it pushes the result alpha
	// toward opaque.
	OneAlpha uint32 = 1 << AShift
)

// Common packed colors.
const (
	// None is the "no pixel" sentinel. Sources equal to None are never written.
	None        uint32 = 0
	Black       uint32 = 0xFF000000
	White       uint32 = 0xFFFFFFFF
	Red         uint32 = 0xFFFF0000
	Green       uint32 = 0xFF00FF00
	Blue        uint32 = 0xFF0000FF
	Transparent        = None
)

// Pack builds a packed pixel from 8-bit channels.
func Pack(a, r, g, b uint8) uint32 {
	return uint32(a)<<AShift | uint32(r)<<RShift | uint32(g)<<GShift | uint32(b)<<BShift
}

// Unpack splits a packed pixel into 8-bit channels.
func Unpack(c uint32) (a, r, g, b uint8) {
	return uint8(c >> AShift), uint8(c >> RShift), uint8(c >> GShift), uint8(c >> BShift)
}

// Alpha returns the alpha lane of c.
func Alpha(c uint32) uint8 {
	return uint8(c >> AShift)
}

// SwapRB exchanges the red and blue lanes, keeping alpha and green.
func SwapRB(c uint32) uint32 {
	return c&AGMask | (c>>RShift)&0xFF<<BShift | (c>>BShift)&0xFF<<RShift
}

// FromColor converts any color.Color to a packed non-premultiplied pixel.
func FromColor(c color.Color) uint32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pack(n.A, n.R, n.G, n.B)
}

// ToNRGBA converts a packed pixel to color.NRGBA.
func ToNRGBA(c uint32) color.NRGBA {
	a, r, g, b := Unpack(c)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// ParseHex parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA" (the leading
// '#' is optional) into a packed pixel.
func ParseHex(s string) (uint32, error) {
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, &ColorError{Input: s, Err: err}
	}

	switch len(s) {
	case 3:
		r, g, b := uint8(v>>8&0xF)*17, uint8(v>>4&0xF)*17, uint8(v&0xF)*17
		return Pack(0xFF, r, g, b), nil
	case 4:
		r, g, b, a := uint8(v>>12&0xF)*17, uint8(v>>8&0xF)*17, uint8(v>>4&0xF)*17, uint8(v&0xF)*17
		return Pack(a, r, g, b), nil
	case 6:
		return OneAlpha*0xFF | uint32(v), nil
	case 8:
		return uint32(v)>>8 | uint32(v)<<AShift, nil
	default:
		return 0, &ColorError{Input: s, Err: ErrInvalidColor}
	}
}

// ColorError reports a malformed color string.
type ColorError struct {
	Input string
	Err   error
}

func (e *ColorError) Error() string {
	return "pixpipe: invalid color " + strconv.Quote(e.Input) + ": " + e.Err.Error()
}

func (e *ColorError) Unwrap() error { return e.Err }
