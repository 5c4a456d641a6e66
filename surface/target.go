// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/pixpipe"
)

// Errors returned by Target.
var (
	// ErrNilDrawer is returned when New is called without a drawer.
	ErrNilDrawer = errors.New("surface: nil TextureDrawer")

	// ErrUnsupportedTarget is returned when the drawer cannot create
	// textures, a supplied texture cannot be updated, or the byte layout
	// is not BGRA8 or RGBA8.
	ErrUnsupportedTarget = errors.New("surface: unsupported target")

	// ErrClosed is returned by Present after Close.
	ErrClosed = errors.New("surface: target is closed")
)

// textureDestroyer matches the Destroy method of gogpu textures.
type textureDestroyer interface {
	Destroy()
}

// Stats counts uploads made by a Target.
type Stats struct {
	Presents      int
	FullUploads   int
	RegionUploads int
	Bytes         int
}

// Target uploads canvas pixels to a GPU texture and draws it.
//
// Target is NOT safe for concurrent use.
type Target struct {
	drawer  gpucontext.TextureDrawer
	creator gpucontext.TextureCreator
	texture gpucontext.Texture
	owned   bool // texture was created here and is destroyed on resize/Close
	format  gputypes.TextureFormat
	x, y    float32

	stats  Stats
	err    error
	closed bool
}

// Option configures a Target.
type Option func(*Target)

// WithPosition draws the texture at (x, y) instead of the origin.
func WithPosition(x, y float32) Option {
	return func(t *Target) {
		t.x, t.y = x, y
	}
}

// WithTexture uploads into an existing texture instead of creating one.
// The texture must implement gpucontext.TextureRegionUpdater or
// gpucontext.TextureUpdater.
func WithTexture(tex gpucontext.Texture) Option {
	return func(t *Target) {
		t.texture = tex
	}
}

// WithFormat sets the byte layout of uploads. The default is
// gputypes.TextureFormatRGBA8Unorm.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(t *Target) {
		t.format = f
	}
}

// New creates a Target drawing through drawer.
func New(drawer gpucontext.TextureDrawer, opts ...Option) (*Target, error) {
	if drawer == nil {
		return nil, ErrNilDrawer
	}
	t := &Target{
		drawer: drawer,
		format: gputypes.TextureFormatRGBA8Unorm,
	}
	for _, opt := range opts {
		opt(t)
	}

	switch t.format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
	default:
		return nil, fmt.Errorf("%w: format %s", ErrUnsupportedTarget, t.format)
	}

	if t.texture != nil {
		if !updatable(t.texture) {
			return nil, fmt.Errorf("%w: texture cannot be updated", ErrUnsupportedTarget)
		}
		return t, nil
	}
	if t.format != gputypes.TextureFormatRGBA8Unorm && t.format != gputypes.TextureFormatRGBA8UnormSrgb {
		return nil, fmt.Errorf("%w: created textures take RGBA bytes, not %s", ErrUnsupportedTarget, t.format)
	}
	t.creator = drawer.TextureCreator()
	if t.creator == nil {
		return nil, fmt.Errorf("%w: drawer has no TextureCreator", ErrUnsupportedTarget)
	}
	return t, nil
}

func updatable(tex gpucontext.Texture) bool {
	switch tex.(type) {
	case gpucontext.TextureRegionUpdater, gpucontext.TextureUpdater:
		return true
	}
	return false
}

var _ pixpipe.Target = (*Target)(nil)

// Present implements pixpipe.Target. It uploads the pixels of buf inside
// r and draws the texture. Upload failures are logged, remembered for Err
// and returned.
func (t *Target) Present(buf *pixpipe.Buffer, r pixpipe.Rect) error {
	if t.closed {
		return ErrClosed
	}
	if !buf.Valid() {
		return t.fail(pixpipe.ErrReleased)
	}
	if err := t.upload(buf, r); err != nil {
		return t.fail(err)
	}
	if err := t.drawer.DrawTexture(t.texture, t.x, t.y); err != nil {
		return t.fail(fmt.Errorf("surface: draw texture: %w", err))
	}
	t.stats.Presents++
	t.err = nil
	return nil
}

func (t *Target) upload(buf *pixpipe.Buffer, r pixpipe.Rect) error {
	w, h := buf.Width(), buf.Height()
	if t.texture == nil || t.texture.Width() != w || t.texture.Height() != h {
		return t.recreate(buf)
	}

	if u, ok := t.texture.(gpucontext.TextureRegionUpdater); ok {
		data, err := buf.RectBytesFormat(r, t.format)
		if err != nil {
			return err
		}
		if data == nil {
			return nil
		}
		r = r.Intersect(pixpipe.Rect{W: w, H: h})
		if err := u.UpdateRegion(r.X, r.Y, r.W, r.H, data); err != nil {
			return fmt.Errorf("surface: update region %v: %w", r, err)
		}
		t.stats.RegionUploads++
		t.stats.Bytes += len(data)
		return nil
	}

	if u, ok := t.texture.(gpucontext.TextureUpdater); ok {
		data, err := buf.BytesFormat(t.format)
		if err != nil {
			return err
		}
		if err := u.UpdateData(data); err != nil {
			return fmt.Errorf("surface: update texture: %w", err)
		}
		t.stats.FullUploads++
		t.stats.Bytes += len(data)
		return nil
	}
	return fmt.Errorf("%w: texture cannot be updated", ErrUnsupportedTarget)
}

// recreate replaces the texture with one sized to buf.
func (t *Target) recreate(buf *pixpipe.Buffer) error {
	if t.creator == nil {
		return fmt.Errorf("%w: texture is %dx%d, buffer %dx%d", ErrUnsupportedTarget,
			t.texture.Width(), t.texture.Height(), buf.Width(), buf.Height())
	}
	data, err := buf.BytesFormat(t.format)
	if err != nil {
		return err
	}
	tex, err := t.creator.NewTextureFromRGBA(buf.Width(), buf.Height(), data)
	if err != nil {
		return fmt.Errorf("surface: create texture: %w", err)
	}
	t.destroy()
	t.texture, t.owned = tex, true
	t.stats.FullUploads++
	t.stats.Bytes += len(data)
	pixpipe.Logger().Debug("surface: texture created", "width", buf.Width(), "height", buf.Height())
	return nil
}

func (t *Target) fail(err error) error {
	t.err = err
	pixpipe.Logger().Warn("surface: present failed", "err", err)
	return err
}

func (t *Target) destroy() {
	if t.texture == nil || !t.owned {
		return
	}
	if d, ok := t.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	t.texture, t.owned = nil, false
}

// Texture returns the current texture, nil before the first present.
func (t *Target) Texture() gpucontext.Texture {
	return t.texture
}

// Format returns the byte layout of uploads.
func (t *Target) Format() gputypes.TextureFormat {
	return t.format
}

// Stats returns the upload counters.
func (t *Target) Stats() Stats {
	return t.stats
}

// Err returns the error of the last failed present, nil once a present
// succeeds again.
func (t *Target) Err() error {
	return t.err
}

// Close destroys a texture created by the target. Textures supplied with
// WithTexture are left alone. Close is idempotent.
func (t *Target) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.destroy()
	return nil
}
