package pixpipe

import (
	"iter"
	"slices"
)

// ScanRun is one contiguous horizontal or vertical run of pixels.
//
// For a horizontal run Axis is the row and Start the first column; for a
// vertical run Axis is the column and Start the first row. Alpha in
// [0, 255] applies to every pixel of the run when HasAlpha is set,
// otherwise the run is opaque.
type ScanRun struct {
	Axis       int
	Start      int
	Length     int
	Horizontal bool
	Alpha      float32
	HasAlpha   bool
}

// HRun returns an opaque horizontal run on row y.
func HRun(y, x, length int) ScanRun {
	return ScanRun{Axis: y, Start: x, Length: length, Horizontal: true}
}

// VRun returns an opaque vertical run on column x.
func VRun(x, y, length int) ScanRun {
	return ScanRun{Axis: x, Start: y, Length: length}
}

// WithAlpha returns a copy of r with alpha a.
func (r ScanRun) WithAlpha(a float32) ScanRun {
	r.Alpha, r.HasAlpha = a, true
	return r
}

// Pos returns the coordinates of the i-th pixel of the run.
func (r ScanRun) Pos(i int) (x, y int) {
	if r.Horizontal {
		return r.Start + i, r.Axis
	}
	return r.Axis, r.Start + i
}

// End returns the exclusive end coordinate along the run.
func (r ScanRun) End() int {
	return r.Start + r.Length
}

// AlphaByte returns the run alpha rounded to [0, 255]. Runs without alpha
// are opaque.
func (r ScanRun) AlphaByte() uint8 {
	if !r.HasAlpha {
		return 255
	}
	return alphaByte(r.Alpha)
}

// Translate moves the run by (dx, dy).
func (r ScanRun) Translate(dx, dy int) ScanRun {
	if r.Horizontal {
		r.Start += dx
		r.Axis += dy
	} else {
		r.Start += dy
		r.Axis += dx
	}
	return r
}

// PointRun is a single stroke pixel. X, Y is the destination and PenX,
// PenY where the pen is sampled.
type PointRun struct {
	X, Y       int
	PenX, PenY int
	Alpha      float32
	Horizontal bool
}

// AlphaByte returns the point alpha rounded to [0, 255].
func (p PointRun) AlphaByte() uint8 {
	return alphaByte(p.Alpha)
}

func alphaByte(a float32) uint8 {
	switch {
	case a <= 0:
		return 0
	case a >= 255:
		return 255
	default:
		return uint8(a + 0.5)
	}
}

// Shape is scan-converted geometry. Both sequences must be re-iterable:
// the canvas may walk them once for sizing and again for writing.
type Shape interface {
	Runs() iter.Seq[ScanRun]
	Points() iter.Seq[PointRun]
}

// Scan is a slice-backed Shape.
type Scan struct {
	Fill   []ScanRun
	Stroke []PointRun
}

// AddRun appends fill runs.
func (s *Scan) AddRun(runs ...ScanRun) {
	s.Fill = append(s.Fill, runs...)
}

// AddPoint appends stroke points.
func (s *Scan) AddPoint(pts ...PointRun) {
	s.Stroke = append(s.Stroke, pts...)
}

// Runs implements Shape.
func (s *Scan) Runs() iter.Seq[ScanRun] {
	return slices.Values(s.Fill)
}

// Points implements Shape.
func (s *Scan) Points() iter.Seq[PointRun] {
	return slices.Values(s.Stroke)
}

// Bounds returns the boundary covered by every run and point, ignoring
// alpha and buffer extents.
func (s *Scan) Bounds() Boundary {
	var b Boundary
	for _, r := range s.Fill {
		b.NotifyRun(r)
	}
	for _, p := range s.Stroke {
		b.Notify(p.X, p.Y)
	}
	return b
}
