package scan

import (
	"math"

	"github.com/gogpu/pixpipe"
)

// Line returns the antialiased stroke points of the segment from
// (x0, y0) to (x1, y1).
func Line(x0, y0, x1, y1 float64) *pixpipe.Scan {
	return &pixpipe.Scan{Stroke: AppendLine(nil, x0, y0, x1, y1)}
}

// Polyline returns the stroke points of consecutive segments through
// pts. Shared vertices are emitted once per segment.
func Polyline(pts [][2]float64) *pixpipe.Scan {
	s := &pixpipe.Scan{}
	for i := 1; i < len(pts); i++ {
		s.Stroke = AppendLine(s.Stroke, pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1])
	}
	return s
}

// AppendLine appends the points of a Xiaolin Wu line to dst. Each point
// samples the pen at its own position. Points with zero coverage are
// omitted.
func AppendLine(dst []pixpipe.PointRun, x0, y0, x1, y1 float64) []pixpipe.PointRun {
	steep := math.Abs(y1-y0) > math.Abs(x1-x0)
	if steep {
		x0, y0, x1, y1 = y0, x0, y1, x1
	}
	if x0 > x1 {
		x0, x1, y0, y1 = x1, x0, y1, y0
	}

	plot := func(x, y int, c float64) {
		if c <= 0 {
			return
		}
		if steep {
			x, y = y, x
		}
		dst = append(dst, pixpipe.PointRun{
			X: x, Y: y, PenX: x, PenY: y,
			Alpha:      float32(c * 255),
			Horizontal: !steep,
		})
	}

	dx := x1 - x0
	gradient := 1.0
	if dx != 0 {
		gradient = (y1 - y0) / dx
	}

	// first endpoint
	xend := math.Round(x0)
	yend := y0 + gradient*(xend-x0)
	xgap := rfpart(x0 + 0.5)
	xpx1, ypx1 := int(xend), int(math.Floor(yend))
	plot(xpx1, ypx1, rfpart(yend)*xgap)
	plot(xpx1, ypx1+1, fpart(yend)*xgap)
	intery := yend + gradient

	xend = math.Round(x1)
	yend = y1 + gradient*(xend-x1)
	xgap = fpart(x1 + 0.5)
	xpx2, ypx2 := int(xend), int(math.Floor(yend))

	for x := xpx1 + 1; x < xpx2; x++ {
		y := int(math.Floor(intery))
		plot(x, y, rfpart(intery))
		plot(x, y+1, fpart(intery))
		intery += gradient
	}

	if xpx2 != xpx1 {
		plot(xpx2, ypx2, rfpart(yend)*xgap)
		plot(xpx2, ypx2+1, fpart(yend)*xgap)
	}
	return dst
}

// Outline returns the one-pixel border of r as opaque stroke points,
// each pixel once.
func Outline(r pixpipe.Rect) *pixpipe.Scan {
	s := &pixpipe.Scan{}
	if r.Empty() {
		return s
	}
	add := func(x, y int, horizontal bool) {
		s.AddPoint(pixpipe.PointRun{X: x, Y: y, PenX: x, PenY: y, Alpha: 255, Horizontal: horizontal})
	}
	x2, y2 := r.X+r.W-1, r.Y+r.H-1
	for x := r.X; x <= x2; x++ {
		add(x, r.Y, true)
		if y2 != r.Y {
			add(x, y2, true)
		}
	}
	for y := r.Y + 1; y < y2; y++ {
		add(r.X, y, false)
		if x2 != r.X {
			add(x2, y, false)
		}
	}
	return s
}

func fpart(v float64) float64  { return v - math.Floor(v) }
func rfpart(v float64) float64 { return 1 - fpart(v) }
