// Package sample reads packed ARGB grids at fractional positions.
package sample

import "math"

// Mode selects the reconstruction filter.
type Mode uint8

const (
	// Nearest selects the closest pixel (no interpolation).
	Nearest Mode = iota

	// Bilinear interpolates between the 4 neighboring pixels.
	Bilinear

	// Bicubic uses Catmull-Rom weights over a 4x4 neighborhood.
	Bicubic
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case Nearest:
		return "Nearest"
	case Bilinear:
		return "Bilinear"
	case Bicubic:
		return "Bicubic"
	default:
		return "Unknown"
	}
}

// Grid is a row-major packed pixel array. len(Pix) must be at least W*H.
type Grid struct {
	Pix []uint32
	W   int
	H   int
}

func (g Grid) at(x, y int) uint32 {
	return g.Pix[clamp(y, 0, g.H-1)*g.W+clamp(x, 0, g.W-1)]
}

// At samples g at pixel-space coordinates (fx, fy), where pixel (x, y)
// has its center at (x+0.5, y+0.5). Positions outside the grid clamp to
// the edge. An empty grid yields 0.
func At(g Grid, fx, fy float64, mode Mode) uint32 {
	if g.W <= 0 || g.H <= 0 {
		return 0
	}
	switch mode {
	case Bilinear:
		return bilinear(g, fx, fy)
	case Bicubic:
		return bicubic(g, fx, fy)
	default:
		return nearest(g, fx, fy)
	}
}

func nearest(g Grid, fx, fy float64) uint32 {
	return g.at(int(math.Floor(fx)), int(math.Floor(fy)))
}

func bilinear(g Grid, fx, fy float64) uint32 {
	fx -= 0.5
	fy -= 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := g.at(x0, y0)
	c10 := g.at(x0+1, y0)
	c01 := g.at(x0, y0+1)
	c11 := g.at(x0+1, y0+1)

	var out uint32
	for shift := 0; shift < 32; shift += 8 {
		v := lerp2D(lane(c00, shift), lane(c10, shift), lane(c01, shift), lane(c11, shift), tx, ty)
		out |= toByte(v) << shift
	}
	return out
}

func bicubic(g Grid, fx, fy float64) uint32 {
	fx -= 0.5
	fy -= 0.5

	x := int(math.Floor(fx))
	y := int(math.Floor(fy))
	tx := fx - float64(x)
	ty := fy - float64(y)

	var px [4][4]uint32
	for dy := -1; dy <= 2; dy++ {
		for dx := -1; dx <= 2; dx++ {
			px[dy+1][dx+1] = g.at(x+dx, y+dy)
		}
	}

	var out uint32
	for shift := 0; shift < 32; shift += 8 {
		var vals [4][4]float64
		for i := range 4 {
			for j := range 4 {
				vals[i][j] = lane(px[i][j], shift)
			}
		}
		out |= toByte(bicubicInterp(vals, tx, ty)) << shift
	}
	return out
}

func lane(c uint32, shift int) float64 {
	return float64(c >> shift & 0xFF)
}

func toByte(v float64) uint32 {
	return uint32(clampFloat(v, 0, 255) + 0.5)
}

// clamp clamps an integer value to [minVal, maxVal].
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// clampFloat clamps a float64 value to [minVal, maxVal].
func clampFloat(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}

// cubicWeight computes the Catmull-Rom cubic weight for distance t.
func cubicWeight(t float64) float64 {
	// Catmull-Rom spline (Mitchell-Netravali with B=0, C=0.5):
	// |t| < 1: (1.5|t|³ - 2.5|t|² + 1)
	// 1 ≤ |t| < 2: (-0.5|t|³ + 2.5|t|² - 4|t| + 2)
	// |t| ≥ 2: 0
	absT := math.Abs(t)
	if absT < 1 {
		return 1.5*absT*absT*absT - 2.5*absT*absT + 1.0
	}
	if absT < 2 {
		return -0.5*absT*absT*absT + 2.5*absT*absT - 4.0*absT + 2.0
	}
	return 0
}

// bicubicInterp performs bicubic interpolation on a 4x4 grid using Catmull-Rom weights.
func bicubicInterp(vals [4][4]float64, tx, ty float64) float64 {
	wx := [4]float64{
		cubicWeight(tx + 1),
		cubicWeight(tx),
		cubicWeight(tx - 1),
		cubicWeight(tx - 2),
	}
	wy := [4]float64{
		cubicWeight(ty + 1),
		cubicWeight(ty),
		cubicWeight(ty - 1),
		cubicWeight(ty - 2),
	}

	var result float64
	for i := range 4 {
		for j := range 4 {
			result += vals[i][j] * wx[j] * wy[i]
		}
	}
	return result
}
