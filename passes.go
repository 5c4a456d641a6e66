package pixpipe

import (
	"context"
	"fmt"
	"image"

	"github.com/gogpu/pixpipe/internal/blend"
)

// pass holds the state of one Render call while pixels are written.
type pass struct {
	canvas *Canvas
	dx, dy int // FullView translation
	clip   bool
	bounds Boundary
	stats  Stats

	// before is the buffer as it was when the pass started. Backdrop
	// border detection reads it so that pixels painted by this pass do
	// not count as existing paint.
	before []uint32
}

// snapshot captures the buffer for border detection.
func (p *pass) snapshot() {
	if p.before != nil {
		return
	}
	p.before = defaultPool.get(len(p.canvas.buf.pix))
	copy(p.before, p.canvas.buf.pix)
}

func (p *pass) release() {
	if p.before != nil {
		defaultPool.put(p.before)
		p.before = nil
	}
}

// fill writes every scan run of sh.
func (p *pass) fill(sh Shape, pen Pen, pp PassPlan) {
	solid, isSolid := pen.(SolidPen)
	for run := range sh.Runs() {
		if run.Length <= 0 {
			continue
		}
		coverage := run.AlphaByte()
		if coverage == 0 {
			p.stats.Skipped += run.Length
			continue
		}

		run = run.Translate(p.dx, p.dy)
		if p.clip {
			var ok bool
			if run, ok = p.clipRun(run); !ok {
				continue
			}
		}

		var colors []uint32
		var off, n int
		if !isSolid {
			pr := run.Translate(-p.dx, -p.dy)
			colors, off, n = pen.ColorRun(pr.Start, pr.End(), pr.Axis, pr.Horizontal)
		}
		for i := range run.Length {
			x, y := run.Pos(i)
			src := uint32(solid)
			if !isSolid {
				if i < n {
					src = colors[off+i]
				} else {
					src = pen.ColorAt(x-p.dx, y-p.dy)
				}
			}
			p.paint(x, y, src, coverage, pp)
		}
	}
}

// draw writes every stroke point of sh.
func (p *pass) draw(sh Shape, pen Pen, pp PassPlan) {
	w, h := p.canvas.buf.width, p.canvas.buf.height
	for pt := range sh.Points() {
		coverage := pt.AlphaByte()
		if coverage == 0 {
			p.stats.Skipped++
			continue
		}
		x, y := pt.X+p.dx, pt.Y+p.dy
		if p.clip && (x < 0 || x >= w || y < 0 || y >= h) {
			continue
		}
		var src uint32
		if !pp.Hover {
			src = pen.ColorAt(pt.PenX, pt.PenY)
		}
		p.paint(x, y, src, coverage, pp)
	}
}

// blit composites an image, transforming it first when asked to. Nothing
// is written if the transform fails.
func (p *pass) blit(ctx context.Context, b *ImageBlit, fit bool, pp PassPlan) error {
	if !b.Src.Valid() {
		return fmt.Errorf("pixpipe: image blit: %w", ErrReleased)
	}

	src := b.Src
	reg := b.region()
	if req, at := b.placement(fit); !req.Identity() {
		if req.CropRect().Empty() {
			return nil
		}
		t := p.canvas.transformer
		if t == nil {
			return ErrNoTransformer
		}
		res, err := t.RotateAndScale(ctx, req)
		if err != nil {
			Logger().Warn("pixpipe: image transform failed", "err", err)
			return fmt.Errorf("%w: %w", ErrTransformFailed, err)
		}
		if !res.Buffer.Valid() {
			return nil
		}
		defer res.Buffer.Release()
		src = res.Buffer
		reg = Region{W: src.width, H: src.height, DstX: at.X, DstY: at.Y}
	}
	reg.DstX += p.dx
	reg.DstY += p.dy

	buf := p.canvas.buf
	r, ok := ClipRegion(reg, src.width, src.height, buf.width, buf.height)
	if !ok {
		return nil
	}

	coverage := uint8(255)
	if b.HasAlpha {
		coverage = alphaByte(b.Alpha)
	}
	pp.Mode.Xor = false
	pp.Hover = false
	for y := range r.H {
		row := src.pix[(r.SrcY+y)*src.width+r.SrcX:][:r.W]
		for x, s := range row {
			p.paint(r.DstX+x, r.DstY+y, s, coverage, pp)
		}
	}
	return nil
}

// paint runs the per-pixel steps: resolve the source, decide, write or
// suppress, notify.
func (p *pass) paint(x, y int, src uint32, coverage uint8, pp PassPlan) {
	buf := p.canvas.buf
	i, ok := buf.Index(x, y)
	if !ok {
		p.stats.Dropped++
		return
	}
	x, y = i%buf.width, i/buf.width
	dst := buf.pix[i]

	if pp.Hover {
		src = dst
	}
	if pp.Invert {
		src = blend.Invert(dst)&RGBMask | src&AMask
	}
	if pp.SwapRB {
		src = SwapRB(src)
	}

	px := blend.Pixel{Src: src, Dst: dst, Alpha: blend.MulDiv255(coverage, Alpha(src))}
	if pp.Mode.Backdrop {
		px.Bkg = p.canvas.bkgAt(x, y)
		if blend.NeedsEdge(px, pp.Mode) {
			px.Edge = p.edge(x, y)
		}
	}

	act := blend.Decide(px, pp.Mode)
	if act == blend.ActionSkip {
		p.stats.Skipped++
		return
	}
	if pp.Transparent {
		p.stats.Suppressed++
	} else {
		buf.pix[i] = blend.Apply(act, px)
		p.stats.Written++
	}
	p.bounds.Notify(x, y)
}

var neighbours = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// edge reports whether a 4-neighbour of (x, y) held paint when the pass
// started.
func (p *pass) edge(x, y int) bool {
	w, h := p.canvas.buf.width, p.canvas.buf.height
	for _, d := range neighbours {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			continue
		}
		if p.before[ny*w+nx] != p.canvas.bkgAt(nx, ny) {
			return true
		}
	}
	return false
}

// clipRun trims run to the buffer.
func (p *pass) clipRun(run ScanRun) (ScanRun, bool) {
	across, along := p.canvas.buf.height, p.canvas.buf.width
	if !run.Horizontal {
		across, along = along, across
	}
	if run.Axis < 0 || run.Axis >= across {
		return run, false
	}
	start, end := max(run.Start, 0), min(run.End(), along)
	if end <= start {
		return run, false
	}
	run.Start, run.Length = start, end-start
	return run, true
}

// bkgAt returns the background color at (x, y), None without a
// background pen.
func (c *Canvas) bkgAt(x, y int) uint32 {
	if c.background == nil {
		return None
	}
	return c.background.ColorAt(x, y)
}

// region resolves zero extents of b.Region to the source edge.
func (b *ImageBlit) region() Region {
	r := b.Region
	if r.W == 0 {
		r.W = b.Src.width - r.SrcX
	}
	if r.H == 0 {
		r.H = b.Src.height - r.SrcY
	}
	return r
}

// request builds the transform request for b.
func (b *ImageBlit) request(fit bool) TransformRequest {
	r := b.region()
	return TransformRequest{
		Src:        b.Src,
		Crop:       Rect{X: r.SrcX, Y: r.SrcY, W: r.W, H: r.H},
		Width:      b.Width,
		Height:     b.Height,
		Interp:     b.Interp,
		SizeToFit:  fit,
		Rotation:   b.Rotation,
		Scale:      b.Scale,
		Background: b.Background,
		Flip:       b.Flip,
	}
}

// placement returns the transform request for b and the destination of
// the top-left pixel of its output. The part of the region that lies
// outside the source is cut from the crop and moves the destination by
// the same amount, as ClipRegion does.
func (b *ImageBlit) placement(fit bool) (TransformRequest, image.Point) {
	req := b.request(fit)
	crop := req.CropRect()
	return req, image.Pt(
		b.Region.DstX+crop.X-req.Crop.X,
		b.Region.DstY+crop.Y-req.Crop.Y,
	)
}

// footprint is the destination rectangle b will cover, before clipping
// to the destination.
func (b *ImageBlit) footprint(fit bool) Rect {
	if !b.Src.Valid() {
		return Rect{}
	}
	req, at := b.placement(fit)
	crop := req.CropRect()
	if crop.Empty() {
		return Rect{}
	}
	size := Size{W: crop.W, H: crop.H}
	if !req.Identity() {
		size = req.OutputSize()
	}
	return Rect{X: at.X, Y: at.Y, W: size.W, H: size.H}
}
