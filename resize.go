package pixpipe

import (
	"context"
	"fmt"
)

// ResizeStrategy selects how pixels survive a resize.
type ResizeStrategy uint8

const (
	// Preserve copies the overlapping region verbatim. Growing pads with None.
	Preserve ResizeStrategy = iota
	// Rescale resamples the whole image to the new size through an
	// ImageTransformer.
	Rescale
)

// String returns the strategy name.
func (s ResizeStrategy) String() string {
	if s == Rescale {
		return "rescale"
	}
	return "preserve"
}

// ResizePolicy configures a Resizer.
type ResizePolicy struct {
	Strategy ResizeStrategy
	Interp   Interpolation // used by Rescale

	// FitOnly never shrinks below the current size.
	FitOnly bool
	// KeepOriginal never shrinks below the original size.
	KeepOriginal bool
	// NewInstance returns a fresh buffer and leaves the input untouched.
	// Otherwise the input buffer is resized in place and returned.
	NewInstance bool
}

// Resizer grows or shrinks buffers.
type Resizer struct {
	Policy      ResizePolicy
	Transformer ImageTransformer
}

// Target applies the policy floors to a requested size.
func (p ResizePolicy) Target(cur Size, w, h int, original Size) Size {
	if p.FitOnly {
		w, h = max(w, cur.W), max(h, cur.H)
	}
	if p.KeepOriginal {
		w, h = max(w, original.W), max(h, original.H)
	}
	return Size{W: w, H: h}
}

// Resize resizes buf towards w x h and reports the size achieved.
func (r Resizer) Resize(ctx context.Context, buf *Buffer, w, h int, original Size) (*Buffer, Size, error) {
	if !buf.Valid() {
		return nil, Size{}, ErrReleased
	}
	target := r.Policy.Target(buf.Size(), w, h, original)
	if target.Empty() {
		return nil, Size{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, target.W, target.H)
	}

	if target == buf.Size() {
		if r.Policy.NewInstance {
			return buf.Clone(), target, nil
		}
		return buf, target, nil
	}

	if r.Policy.Strategy == Rescale {
		return r.rescale(ctx, buf, target)
	}

	if r.Policy.NewInstance {
		nb, err := NewBuffer(target.W, target.H)
		if err != nil {
			return nil, Size{}, err
		}
		nb.policy = buf.policy
		nb.CopyFrom(buf, Region{W: buf.width, H: buf.height})
		return nb, target, nil
	}
	if err := buf.Resize(target.W, target.H, true); err != nil {
		return nil, Size{}, err
	}
	return buf, target, nil
}

func (r Resizer) rescale(ctx context.Context, buf *Buffer, target Size) (*Buffer, Size, error) {
	if r.Transformer == nil {
		return nil, Size{}, ErrNoTransformer
	}
	res, err := r.Transformer.RotateAndScale(ctx, TransformRequest{
		Src:    buf,
		Width:  target.W,
		Height: target.H,
		Interp: r.Policy.Interp,
	})
	if err != nil {
		return nil, Size{}, fmt.Errorf("%w: %w", ErrTransformFailed, err)
	}
	if !res.Buffer.Valid() {
		return nil, Size{}, fmt.Errorf("%w: empty result", ErrTransformFailed)
	}

	res.Buffer.policy = buf.policy
	if r.Policy.NewInstance {
		return res.Buffer, res.Buffer.Size(), nil
	}
	buf.adopt(res.Buffer)
	return buf, buf.Size(), nil
}

// adopt moves o's pixels into b and releases b's old storage. o is left
// released.
func (b *Buffer) adopt(o *Buffer) {
	b.recycle()
	b.pix, b.width, b.height, b.shared = o.pix, o.width, o.height, o.shared
	o.pix, o.width, o.height, o.shared = nil, 0, 0, false
}
