package pixpipe

import (
	"fmt"
	"image"
)

// Rect is an exclusive pixel rectangle: it covers X <= x < X+W and
// Y <= y < Y+H.
type Rect struct {
	X, Y, W, H int
}

// RectFromImage converts an image.Rectangle.
func RectFromImage(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Image converts to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Intersect returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x1, y1 := max(r.X, o.X), max(r.Y, o.Y)
	x2, y2 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Union returns the smallest rectangle containing r and o. Empty operands
// are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x1, y1 := min(r.X, o.X), min(r.Y, o.Y)
	x2, y2 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Extremes records, for each edge of a Boundary, the orthogonal coordinate
// at which that edge was first reached. They let callers rebuild the
// silhouette corners rather than just the box.
type Extremes struct {
	MinXAtY int // y of the first pixel at the minimum x
	MinYAtX int // x of the first pixel at the minimum y
	MaxXAtY int // y of the first pixel at the maximum x
	MaxYAtX int // x of the first pixel at the maximum y
}

// Boundary accumulates the inclusive bounding box of notified pixels.
// The zero value is empty. Boundary is a value type; copies are independent.
type Boundary struct {
	x1, y1  int
	x2, y2  int
	ext     Extremes
	touched bool
}

// Notify extends the boundary to include (x, y). A companion coordinate
// changes only when its edge moves strictly outward.
func (b *Boundary) Notify(x, y int) {
	if !b.touched {
		b.x1, b.y1, b.x2, b.y2 = x, y, x, y
		b.ext = Extremes{MinXAtY: y, MinYAtX: x, MaxXAtY: y, MaxYAtX: x}
		b.touched = true
		return
	}
	if x < b.x1 {
		b.x1, b.ext.MinXAtY = x, y
	}
	if x > b.x2 {
		b.x2, b.ext.MaxXAtY = x, y
	}
	if y < b.y1 {
		b.y1, b.ext.MinYAtX = y, x
	}
	if y > b.y2 {
		b.y2, b.ext.MaxYAtX = y, x
	}
}

// NotifyRun extends the boundary to include every pixel of run. The result
// equals notifying each pixel in order.
func (b *Boundary) NotifyRun(run ScanRun) {
	if run.Length <= 0 {
		return
	}
	b.Notify(run.Pos(0))
	b.Notify(run.Pos(run.Length - 1))
}

// Merge returns the union of b and o. An empty operand yields the other
// unchanged. When both sides share an extreme, b's companion is kept, so
// Merge is associative with the zero Boundary as identity.
func (b Boundary) Merge(o Boundary) Boundary {
	if !o.touched {
		return b
	}
	if !b.touched {
		return o
	}
	if o.x1 < b.x1 {
		b.x1, b.ext.MinXAtY = o.x1, o.ext.MinXAtY
	}
	if o.x2 > b.x2 {
		b.x2, b.ext.MaxXAtY = o.x2, o.ext.MaxXAtY
	}
	if o.y1 < b.y1 {
		b.y1, b.ext.MinYAtX = o.y1, o.ext.MinYAtX
	}
	if o.y2 > b.y2 {
		b.y2, b.ext.MaxYAtX = o.y2, o.ext.MaxYAtX
	}
	return b
}

// Reset empties the boundary.
func (b *Boundary) Reset() {
	*b = Boundary{}
}

// Empty reports whether no pixel has been notified.
func (b Boundary) Empty() bool {
	return !b.touched
}

// Corners returns the inclusive minimum and maximum corners.
func (b Boundary) Corners() (x1, y1, x2, y2 int) {
	return b.x1, b.y1, b.x2, b.y2
}

// Extremes returns the companion coordinates.
func (b Boundary) Extremes() Extremes {
	return b.ext
}

// Rect converts the inclusive box to an exclusive Rect. An empty boundary
// yields the zero Rect.
func (b Boundary) Rect() Rect {
	if !b.touched {
		return Rect{}
	}
	return Rect{X: b.x1, Y: b.y1, W: b.x2 + 1 - b.x1, H: b.y2 + 1 - b.y1}
}

// Offset translates the boundary and its companions by (dx, dy).
func (b Boundary) Offset(dx, dy int) Boundary {
	if !b.touched {
		return b
	}
	b.x1 += dx
	b.x2 += dx
	b.y1 += dy
	b.y2 += dy
	b.ext.MinXAtY += dy
	b.ext.MaxXAtY += dy
	b.ext.MinYAtX += dx
	b.ext.MaxYAtX += dx
	return b
}

func (b Boundary) String() string {
	if !b.touched {
		return "Boundary(empty)"
	}
	return fmt.Sprintf("Boundary(%d,%d)-(%d,%d)", b.x1, b.y1, b.x2, b.y2)
}
