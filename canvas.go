package pixpipe

import (
	"context"
	"fmt"
	"image"
)

// Request is one render invocation.
type Request struct {
	Config Config
	Shape  Shape // may be nil for image-only requests
	Fill   Pen   // source for scan runs
	Stroke Pen   // source for stroke points
	Image  *ImageBlit
}

// ImageBlit composites a source buffer, optionally rotated, scaled or
// flipped by the canvas ImageTransformer first.
//
// Region selects the source rectangle and the destination offset. A zero
// W or H extends the rectangle to the right or bottom edge of the source.
// Parts of the rectangle outside the source are dropped and the
// destination moves with them, as in ClipRegion.
type ImageBlit struct {
	Src      *Buffer
	Region   Region
	Alpha    float32 // [0, 255], applied when HasAlpha is set
	HasAlpha bool

	Width      int
	Height     int
	Interp     Interpolation
	Rotation   float64
	Scale      float64
	Flip       Flip
	Background Pen
}

// Stats counts what happened to the pixels of a pass.
type Stats struct {
	Written    int // pixels stored
	Skipped    int // None source or zero coverage
	Suppressed int // decided but not written in transparent mode
	Dropped    int // not addressable under the buffer's IndexPolicy
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Written:    s.Written + o.Written,
		Skipped:    s.Skipped + o.Skipped,
		Suppressed: s.Suppressed + o.Suppressed,
		Dropped:    s.Dropped + o.Dropped,
	}
}

// Result reports the outcome of Render.
type Result struct {
	// Dirty is the exclusive rectangle touched by this pass.
	Dirty Rect
	// Boundary is the inclusive boundary of this pass, with companions.
	Boundary Boundary
	// Resized is set when SizeToFit grew the buffer.
	Resized bool
	// Offset is the translation applied by FullView.
	Offset image.Point
	Stats  Stats
}

// Canvas drives render passes over one buffer. It is not safe for
// concurrent use.
type Canvas struct {
	buf         *Buffer
	owned       bool
	background  Pen
	transformer ImageTransformer
	target      Target
	incremental []BoundaryObserver
	absolute    []BoundaryObserver
	resize      ResizePolicy
	original    Size
	cumulative  Boundary
	closed      bool
}

// NewCanvas creates a canvas over a new width x height buffer, or over
// the buffer given with WithBuffer, in which case width and height are
// ignored.
func NewCanvas(width, height int, opts ...Option) (*Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Canvas{
		buf:         o.buffer,
		background:  o.background,
		transformer: o.transformer,
		target:      o.target,
		incremental: o.incremental,
		absolute:    o.absolute,
		resize:      o.resize,
		original:    o.original,
	}

	if c.buf == nil {
		b, err := NewBuffer(width, height)
		if err != nil {
			return nil, err
		}
		c.buf, c.owned = b, true
	} else if !c.buf.Valid() {
		return nil, ErrReleased
	}
	if o.indexSet {
		c.buf.SetPolicy(o.index)
	}
	if c.original.Empty() {
		c.original = c.buf.Size()
	}
	return c, nil
}

// Buffer returns the current buffer. It changes identity when a
// NewInstance resize replaces it.
func (c *Canvas) Buffer() *Buffer {
	return c.buf
}

// Size returns the buffer size.
func (c *Canvas) Size() Size {
	return c.buf.Size()
}

// Clear fills the buffer with col and empties the cumulative boundary.
func (c *Canvas) Clear(col uint32) {
	c.buf.Clear(col)
	c.cumulative.Reset()
}

// Cumulative returns the boundary merged from persistent passes.
func (c *Canvas) Cumulative() Boundary {
	return c.cumulative
}

// ResetBoundary empties the cumulative boundary.
func (c *Canvas) ResetBoundary() {
	c.cumulative.Reset()
}

// Resize resizes the buffer with the canvas ResizePolicy and returns the
// achieved size.
func (c *Canvas) Resize(ctx context.Context, width, height int) (Size, error) {
	if c.closed {
		return Size{}, ErrReleased
	}
	r := Resizer{Policy: c.resize, Transformer: c.transformer}
	nb, size, err := r.Resize(ctx, c.buf, width, height, c.original)
	if err != nil {
		return Size{}, fmt.Errorf("pixpipe: resize canvas: %w", err)
	}
	c.swap(nb)
	return size, nil
}

// swap makes nb the canvas buffer. A replaced buffer owned by the canvas
// is released.
func (c *Canvas) swap(nb *Buffer) {
	if nb == c.buf {
		return
	}
	if c.owned {
		c.buf.Release()
	}
	c.buf, c.owned = nb, true
}

// Close releases the buffer if the canvas allocated it. Further renders
// fail with ErrReleased. Close is idempotent.
func (c *Canvas) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.owned {
		c.buf.Release()
	}
}

// Render runs one render invocation.
//
// Passes run in order: measure (boundary only), grow, fill runs, stroke
// points, image blit, publish. Geometry that clips away is not an error.
// Errors are returned for a closed canvas, a missing pen, a Screen pass
// without target and a failed image transform; in the last case the
// earlier passes have already been written and are published.
func (c *Canvas) Render(ctx context.Context, req Request) (Result, error) {
	if c.closed || !c.buf.Valid() {
		return Result{}, ErrReleased
	}
	plan := req.Config.Resolve()
	if plan.Screen && c.target == nil {
		return Result{}, ErrNoTarget
	}
	if err := checkPens(req, plan); err != nil {
		return Result{}, err
	}

	log := Logger()
	var res Result

	if plan.Measure {
		m := measure(req, plan)
		log.Debug("pixpipe: measure", "cmd", req.Config.Command(), "bounds", m)

		if plan.CalculateOnly {
			res.Boundary = m
			res.Dirty = m.Rect()
			c.notify(m, plan)
			return res, nil
		}

		if plan.FullView && !m.Empty() {
			x1, y1, _, _ := m.Corners()
			res.Offset = image.Pt(max(0, -x1), max(0, -y1))
			m = m.Offset(res.Offset.X, res.Offset.Y)
		}
		if plan.Grow && !m.Empty() {
			grown, err := c.grow(ctx, m)
			if err != nil {
				return Result{}, err
			}
			res.Resized = grown
		}
	}

	p := pass{canvas: c, dx: res.Offset.X, dy: res.Offset.Y, clip: plan.Clip}
	defer p.release()
	if plan.Fill.Mode.KeepBorder {
		p.snapshot()
	}
	if req.Shape != nil {
		if plan.Fill.Enabled {
			p.fill(req.Shape, req.Fill, plan.Fill)
		}
		if plan.Draw.Enabled {
			p.draw(req.Shape, req.Stroke, plan.Draw)
		}
	}

	var blitErr error
	if req.Image != nil {
		blitErr = p.blit(ctx, req.Image, req.Config.SizeToFit, plan.Fill)
	}

	res.Boundary = p.bounds
	res.Dirty = p.bounds.Rect()
	res.Stats = p.stats
	log.Debug("pixpipe: render", "cmd", req.Config.Command(), "dirty", res.Dirty,
		"written", p.stats.Written, "dropped", p.stats.Dropped)
	if p.stats.Dropped > 0 {
		log.Warn("pixpipe: dropped unaddressable writes", "count", p.stats.Dropped)
	}

	if err := c.publish(p.bounds, plan); err != nil {
		return res, err
	}
	return res, blitErr
}

// checkPens rejects passes that have work but no pen.
func checkPens(req Request, plan Plan) error {
	if req.Shape == nil {
		return nil
	}
	if plan.Fill.Enabled && req.Fill == nil {
		for range req.Shape.Runs() {
			return fmt.Errorf("%w: fill", ErrMissingPen)
		}
	}
	if plan.Draw.Enabled && !plan.Draw.Hover && req.Stroke == nil {
		for range req.Shape.Points() {
			return fmt.Errorf("%w: stroke", ErrMissingPen)
		}
	}
	return nil
}

// measure computes the boundary the writing passes could touch, without
// reading or writing pixels. Zero-coverage geometry is ignored.
func measure(req Request, plan Plan) Boundary {
	var b Boundary
	if req.Shape != nil {
		if plan.MeasureFill {
			for r := range req.Shape.Runs() {
				if r.AlphaByte() != 0 {
					b.NotifyRun(r)
				}
			}
		}
		if plan.MeasureDraw {
			for pt := range req.Shape.Points() {
				if pt.AlphaByte() != 0 {
					b.Notify(pt.X, pt.Y)
				}
			}
		}
	}
	if req.Image != nil {
		if r := req.Image.footprint(req.Config.SizeToFit); !r.Empty() {
			b.Notify(r.X, r.Y)
			b.Notify(r.X+r.W-1, r.Y+r.H-1)
		}
	}
	return b
}

// grow enlarges the buffer so m fits, never shrinking it.
func (c *Canvas) grow(ctx context.Context, m Boundary) (bool, error) {
	_, _, x2, y2 := m.Corners()
	cur := c.buf.Size()
	if x2 < cur.W && y2 < cur.H {
		return false, nil
	}

	r := Resizer{Policy: ResizePolicy{
		Strategy:     Preserve,
		FitOnly:      true,
		KeepOriginal: true,
		NewInstance:  c.resize.NewInstance,
	}}
	nb, size, err := r.Resize(ctx, c.buf, x2+1, y2+1, c.original)
	if err != nil {
		return false, fmt.Errorf("pixpipe: size to fit: %w", err)
	}
	c.swap(nb)
	Logger().Info("pixpipe: canvas grown to fit", "from", cur, "to", size)
	return true, nil
}

// notify hands the pass rectangle to incremental observers and the
// cumulative rectangle to absolute ones. Persistent passes are merged
// into the cumulative boundary first.
func (c *Canvas) notify(pass Boundary, plan Plan) {
	if plan.Persist {
		c.cumulative = c.cumulative.Merge(pass)
	}
	if r := pass.Rect(); !r.Empty() {
		for _, o := range c.incremental {
			o.Update(r)
		}
	}
	if r := c.cumulative.Merge(pass).Rect(); !r.Empty() {
		for _, o := range c.absolute {
			o.Update(r)
		}
	}
}

// publish notifies observers and presents a Screen pass.
func (c *Canvas) publish(pass Boundary, plan Plan) error {
	c.notify(pass, plan)
	if !plan.Screen {
		return nil
	}
	r := pass.Rect().Intersect(Rect{W: c.buf.width, H: c.buf.height})
	if r.Empty() {
		return nil
	}
	if err := c.target.Present(c.buf, r); err != nil {
		return fmt.Errorf("pixpipe: present %v: %w", r, err)
	}
	return nil
}
