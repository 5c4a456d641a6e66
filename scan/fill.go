package scan

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/vector"

	"github.com/gogpu/pixpipe"
)

// Rect returns one opaque horizontal run per row of r.
func Rect(r pixpipe.Rect) *pixpipe.Scan {
	s := &pixpipe.Scan{}
	if r.Empty() {
		return s
	}
	s.Fill = make([]pixpipe.ScanRun, 0, r.H)
	for y := r.Y; y < r.Y+r.H; y++ {
		s.AddRun(pixpipe.HRun(y, r.X, r.W))
	}
	return s
}

// Columns returns one opaque vertical run per column of r.
func Columns(r pixpipe.Rect) *pixpipe.Scan {
	s := &pixpipe.Scan{}
	if r.Empty() {
		return s
	}
	s.Fill = make([]pixpipe.ScanRun, 0, r.W)
	for x := r.X; x < r.X+r.W; x++ {
		s.AddRun(pixpipe.VRun(x, r.Y, r.H))
	}
	return s
}

// FromAlpha converts a coverage mask into horizontal runs. Neighbouring
// pixels of equal non-zero coverage share a run; fully covered runs carry
// no alpha. The mask's top-left corner lands at at.
func FromAlpha(m *image.Alpha, at image.Point) *pixpipe.Scan {
	s := &pixpipe.Scan{}
	b := m.Bounds()
	dx, dy := at.X-b.Min.X, at.Y-b.Min.Y

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := m.Pix[m.PixOffset(b.Min.X, y):][:b.Dx()]
		for x := 0; x < len(row); {
			a := row[x]
			if a == 0 {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] == a {
				x++
			}
			run := pixpipe.HRun(y+dy, b.Min.X+start+dx, x-start)
			if a != 0xff {
				run = run.WithAlpha(float32(a))
			}
			s.AddRun(run)
		}
	}
	return s
}

// Polygon rasterizes the closed polygon through pts with antialiased
// edges. Fewer than three points, or a polygon without area, yield an
// empty scan.
func Polygon(pts []f32.Vec2) *pixpipe.Scan {
	if len(pts) < 3 {
		return &pixpipe.Scan{}
	}

	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, p := range pts {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}
	x0, y0 := int(math.Floor(float64(minX))), int(math.Floor(float64(minY)))
	w := int(math.Ceil(float64(maxX))) - x0
	h := int(math.Ceil(float64(maxY))) - y0
	if w <= 0 || h <= 0 {
		return &pixpipe.Scan{}
	}

	ox, oy := float32(x0), float32(y0)
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	z.MoveTo(pts[0][0]-ox, pts[0][1]-oy)
	for _, p := range pts[1:] {
		z.LineTo(p[0]-ox, p[1]-oy)
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return FromAlpha(mask, image.Pt(x0, y0))
}
