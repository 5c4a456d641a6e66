package transform

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gpucontext"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/pixpipe"
)

// ErrNoInterpolator is returned when the registry has no interpolator for
// the requested kind and no fallback.
var ErrNoInterpolator = errors.New("transform: no interpolator registered")

// Transformer rotates, scales, flips and crops buffers. It is safe for
// concurrent use.
type Transformer struct {
	registry *gpucontext.Registry[draw.Interpolator]
	fast     bool
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithRegistry replaces the default interpolator registry.
func WithRegistry(r *gpucontext.Registry[draw.Interpolator]) Option {
	return func(t *Transformer) {
		t.registry = r
	}
}

// WithFastBilinear maps pixpipe.Bilinear to draw.ApproxBiLinear.
func WithFastBilinear() Option {
	return func(t *Transformer) {
		t.fast = true
	}
}

// New creates a Transformer.
func New(opts ...Option) *Transformer {
	t := &Transformer{}
	for _, opt := range opts {
		opt(t)
	}
	if t.registry == nil {
		t.registry = NewRegistry()
	}
	return t
}

var _ pixpipe.ImageTransformer = (*Transformer)(nil)

// RotateAndScale implements pixpipe.ImageTransformer.
func (t *Transformer) RotateAndScale(ctx context.Context, req pixpipe.TransformRequest) (pixpipe.TransformResult, error) {
	return t.Start(ctx, req).Wait(ctx)
}

// interpolator resolves the interpolator for i, falling back to the
// registry's best one.
func (t *Transformer) interpolator(i pixpipe.Interpolation) (draw.Interpolator, string, error) {
	name := nameFor(i, t.fast)
	if in := t.registry.Get(name); in != nil {
		return in, name, nil
	}
	name = t.registry.BestName()
	if in := t.registry.Get(name); in != nil {
		return in, name, nil
	}
	return nil, "", fmt.Errorf("%w: %v", ErrNoInterpolator, i)
}

// run performs req synchronously.
func (t *Transformer) run(ctx context.Context, req pixpipe.TransformRequest) (pixpipe.TransformResult, error) {
	if err := ctx.Err(); err != nil {
		return pixpipe.TransformResult{}, err
	}
	if !req.Src.Valid() {
		return pixpipe.TransformResult{}, pixpipe.ErrReleased
	}
	crop := req.CropRect()
	out := req.OutputSize()
	if crop.Empty() || out.Empty() {
		return pixpipe.TransformResult{}, fmt.Errorf("%w: crop %v, output %dx%d",
			pixpipe.ErrInvalidDimensions, crop, out.W, out.H)
	}
	interp, name, err := t.interpolator(req.Interp)
	if err != nil {
		return pixpipe.TransformResult{}, err
	}

	src := req.Src.ToNRGBA()
	dst := image.NewNRGBA(image.Rect(0, 0, out.W, out.H))
	op := draw.Src
	if req.Background != nil {
		fillBackground(dst, req.Background)
		op = draw.Over
	}

	sr := crop.Image()
	if isPlainScale(req) {
		interp.Scale(dst, dst.Bounds(), src, sr, op, nil)
	} else {
		interp.Transform(dst, affine(req, crop, out), src, sr, op, nil)
	}
	if err := ctx.Err(); err != nil {
		return pixpipe.TransformResult{}, err
	}

	buf, err := pixpipe.FromImage(dst)
	if err != nil {
		return pixpipe.TransformResult{}, err
	}
	pixpipe.Logger().Debug("transform: done", "src", crop, "size", out,
		"interp", name, "rotation", req.Rotation, "flip", req.Flip)
	return pixpipe.TransformResult{Buffer: buf, Size: out}, nil
}

func isPlainScale(req pixpipe.TransformRequest) bool {
	return math.Mod(req.Rotation, 360) == 0 && req.Flip == pixpipe.FlipNone
}

// affine maps source coordinates to destination coordinates: the crop
// center goes to the origin, then scale and flip, clockwise rotation, and
// finally the output center.
func affine(req pixpipe.TransformRequest, crop pixpipe.Rect, out pixpipe.Size) f64.Aff3 {
	scaled := req.ScaledSize()
	sx := float64(scaled.W) / float64(crop.W)
	sy := float64(scaled.H) / float64(crop.H)
	if req.Flip&pixpipe.FlipHorizontal != 0 {
		sx = -sx
	}
	if req.Flip&pixpipe.FlipVertical != 0 {
		sy = -sy
	}

	sin, cos := math.Sincos(req.Rotation * math.Pi / 180)
	a, b := cos*sx, -sin*sy
	d, e := sin*sx, cos*sy

	cx := float64(crop.X) + float64(crop.W)/2
	cy := float64(crop.Y) + float64(crop.H)/2
	ox, oy := float64(out.W)/2, float64(out.H)/2
	return f64.Aff3{
		a, b, ox - (a*cx + b*cy),
		d, e, oy - (d*cx + e*cy),
	}
}

func fillBackground(dst *image.NRGBA, pen pixpipe.Pen) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetNRGBA(x, y, pixpipe.ToNRGBA(pen.ColorAt(x, y)))
		}
	}
}

// Task is a transform running in the background.
type Task struct {
	done chan struct{}
	res  pixpipe.TransformResult
	err  error
}

// Start launches req and returns immediately. The task observes ctx.
func (t *Transformer) Start(ctx context.Context, req pixpipe.TransformRequest) *Task {
	task := &Task{done: make(chan struct{})}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := t.run(gctx, req)
		task.res = res
		return err
	})
	go func() {
		task.err = g.Wait()
		close(task.done)
	}()
	return task
}

// Done is closed when the task has finished.
func (k *Task) Done() <-chan struct{} {
	return k.done
}

// Wait blocks until the task finishes or ctx is done. When ctx wins, the
// task's eventual result is released and ctx.Err() is returned.
func (k *Task) Wait(ctx context.Context) (pixpipe.TransformResult, error) {
	select {
	case <-k.done:
		return k.res, k.err
	case <-ctx.Done():
		go func() {
			<-k.done
			if k.res.Buffer != nil {
				k.res.Buffer.Release()
			}
		}()
		return pixpipe.TransformResult{}, ctx.Err()
	}
}
