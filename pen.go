package pixpipe

import (
	"image"

	"github.com/gogpu/pixpipe/internal/sample"
)

// Pen supplies source colors to a render pass.
//
// ColorRun answers for the pixels [start, end) along one run: the color of
// pixel start+i is colors[offset+i] for i < length. A pen may return fewer
// than end-start colors; the rest are read through ColorAt. The returned
// slice may alias pen storage and is only valid until the next call.
type Pen interface {
	ColorAt(x, y int) uint32
	ColorRun(start, end, axis int, horizontal bool) (colors []uint32, offset, length int)
}

// SolidPen paints one packed color everywhere.
type SolidPen uint32

// ColorAt implements Pen.
func (p SolidPen) ColorAt(int, int) uint32 {
	return uint32(p)
}

// ColorRun implements Pen.
func (p SolidPen) ColorRun(start, end, _ int, _ bool) ([]uint32, int, int) {
	n := end - start
	if n <= 0 {
		return nil, 0, 0
	}
	colors := make([]uint32, n)
	for i := range colors {
		colors[i] = uint32(p)
	}
	return colors, 0, n
}

// FuncPen adapts a function to Pen.
type FuncPen func(x, y int) uint32

// ColorAt implements Pen.
func (f FuncPen) ColorAt(x, y int) uint32 {
	return f(x, y)
}

// ColorRun implements Pen.
func (f FuncPen) ColorRun(start, end, axis int, horizontal bool) ([]uint32, int, int) {
	return sampleRun(f, start, end, axis, horizontal)
}

// BufferPen paints the pixels of another buffer placed with its top-left
// corner at Origin. With Tile the source repeats in both directions,
// otherwise positions outside it read None.
type BufferPen struct {
	Src    *Buffer
	Origin image.Point
	Tile   bool
}

// ColorAt implements Pen.
func (p *BufferPen) ColorAt(x, y int) uint32 {
	if !p.Src.Valid() {
		return None
	}
	sx, sy := x-p.Origin.X, y-p.Origin.Y
	if p.Tile {
		sx, sy = wrap(sx, p.Src.width), wrap(sy, p.Src.height)
	} else if sx < 0 || sx >= p.Src.width || sy < 0 || sy >= p.Src.height {
		return None
	}
	return p.Src.pix[sy*p.Src.width+sx]
}

// ColorRun implements Pen. A horizontal run that starts inside an untiled
// source returns a view of the source row.
func (p *BufferPen) ColorRun(start, end, axis int, horizontal bool) ([]uint32, int, int) {
	if horizontal && !p.Tile && p.Src.Valid() {
		sx, sy := start-p.Origin.X, axis-p.Origin.Y
		if sy >= 0 && sy < p.Src.height && sx >= 0 && sx < p.Src.width {
			return p.Src.Row(sy), sx, min(end-start, p.Src.width-sx)
		}
	}
	return sampleRun(p, start, end, axis, horizontal)
}

// ImagePen paints any image.Image. Destination (x, y) reads image point
// (x, y) - Offset.
type ImagePen struct {
	Src    image.Image
	Offset image.Point
}

// ColorAt implements Pen.
func (p ImagePen) ColorAt(x, y int) uint32 {
	pt := image.Pt(x, y).Sub(p.Offset)
	if !pt.In(p.Src.Bounds()) {
		return None
	}
	return FromColor(p.Src.At(pt.X, pt.Y))
}

// ColorRun implements Pen.
func (p ImagePen) ColorRun(start, end, axis int, horizontal bool) ([]uint32, int, int) {
	return sampleRun(p, start, end, axis, horizontal)
}

// ScaledPen stretches Src over the destination rectangle Dst. Outside Dst
// it reads None.
type ScaledPen struct {
	Src    *Buffer
	Dst    Rect
	Interp Interpolation
}

// ColorAt implements Pen.
func (p ScaledPen) ColorAt(x, y int) uint32 {
	if !p.Src.Valid() || p.Dst.Empty() {
		return None
	}
	if x < p.Dst.X || x >= p.Dst.X+p.Dst.W || y < p.Dst.Y || y >= p.Dst.Y+p.Dst.H {
		return None
	}
	fx := (float64(x-p.Dst.X) + 0.5) * float64(p.Src.width) / float64(p.Dst.W)
	fy := (float64(y-p.Dst.Y) + 0.5) * float64(p.Src.height) / float64(p.Dst.H)
	g := sample.Grid{Pix: p.Src.pix, W: p.Src.width, H: p.Src.height}
	return sample.At(g, fx, fy, p.Interp.mode())
}

// ColorRun implements Pen.
func (p ScaledPen) ColorRun(start, end, axis int, horizontal bool) ([]uint32, int, int) {
	return sampleRun(p, start, end, axis, horizontal)
}

func sampleRun(p interface{ ColorAt(x, y int) uint32 }, start, end, axis int, horizontal bool) ([]uint32, int, int) {
	n := end - start
	if n <= 0 {
		return nil, 0, 0
	}
	colors := make([]uint32, n)
	for i := range colors {
		if horizontal {
			colors[i] = p.ColorAt(start+i, axis)
		} else {
			colors[i] = p.ColorAt(axis, start+i)
		}
	}
	return colors, 0, n
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
