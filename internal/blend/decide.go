package blend

import "fmt"

// Action is what a pass does with one pixel.
type Action uint8

const (
	// ActionSkip leaves the destination untouched.
	ActionSkip Action = iota
	// ActionAssign writes the source color with the coverage as alpha lane.
	ActionAssign
	// ActionBlend mixes the source into the destination.
	ActionBlend
	// ActionXor flips destination color channels by the source.
	ActionXor
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "Skip"
	case ActionAssign:
		return "Assign"
	case ActionBlend:
		return "Blend"
	case ActionXor:
		return "Xor"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Mode holds the pass-wide switches that influence Decide.
type Mode struct {
	Xor        bool
	Backdrop   bool
	KeepBorder bool
}

// Pixel is the input to Decide.
type Pixel struct {
	Src   uint32 // final source color after invert, hover and swap
	Dst   uint32
	Bkg   uint32 // background color at this position; only read in backdrop mode
	Alpha uint8  // effective coverage

	// Edge reports that a 4-neighbour differs from its background.
	// Only consulted when NeedsEdge is true.
	Edge bool
}

// NeedsEdge reports whether Decide will look at p.Edge. Callers use it to
// skip the neighbour scan.
func NeedsEdge(p Pixel, m Mode) bool {
	return m.Backdrop && m.KeepBorder && !m.Xor &&
		p.Src != 0 && p.Alpha != 0 && p.Alpha != 255 && p.Dst == p.Bkg
}

// Decide classifies one pixel. Rules apply in order:
//
//  1. a None source or zero coverage is skipped
//  2. XOR mode always xors
//  3. full coverage assigns
//  4. in backdrop mode an unpainted destination (dst == bkg) is assigned,
//     unless KeepBorder is set and the pixel borders painted content, in
//     which case it is blended against the background
//  5. everything else blends
func Decide(p Pixel, m Mode) Action {
	switch {
	case p.Src == 0 || p.Alpha == 0:
		return ActionSkip
	case m.Xor:
		return ActionXor
	case p.Alpha == 255:
		return ActionAssign
	case m.Backdrop && p.Dst == p.Bkg:
		if m.KeepBorder && p.Edge {
			return ActionBlend
		}
		return ActionAssign
	default:
		return ActionBlend
	}
}

// Apply computes the value written for action a. ActionSkip returns Dst.
// A backdrop border blend has Dst == Bkg, so it mixes against the
// background.
func Apply(a Action, p Pixel) uint32 {
	switch a {
	case ActionAssign:
		return Assign(p.Src, p.Alpha)
	case ActionBlend:
		return Composite(p.Dst, p.Src, p.Alpha)
	case ActionXor:
		return Xor(p.Dst, p.Src)
	default:
		return p.Dst
	}
}
