package pixpipe

import (
	"context"
	"math"

	"github.com/gogpu/pixpipe/internal/sample"
)

// Interpolation selects the filter used when pixels are resampled.
type Interpolation uint8

const (
	// Nearest picks the closest source pixel.
	Nearest Interpolation = iota
	// Bilinear interpolates the 4 nearest source pixels.
	Bilinear
	// Bicubic uses Catmull-Rom weights over 16 source pixels.
	Bicubic
)

// String returns the interpolation name in lower case.
func (i Interpolation) String() string {
	switch i {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	case Bicubic:
		return "bicubic"
	default:
		return "unknown"
	}
}

func (i Interpolation) mode() sample.Mode {
	switch i {
	case Bilinear:
		return sample.Bilinear
	case Bicubic:
		return sample.Bicubic
	default:
		return sample.Nearest
	}
}

// Flip mirrors an image before rotation.
type Flip uint8

const (
	FlipNone       Flip = 0
	FlipHorizontal Flip = 1 << 0
	FlipVertical   Flip = 1 << 1
	FlipBoth            = FlipHorizontal | FlipVertical
)

// TransformRequest describes a rotate/scale job.
//
// The output is first sized to Width x Height, or to the crop scaled by
// Scale when either is zero. Rotation then turns the image about its
// center. Without SizeToFit the output keeps the scaled size and corners
// are cut off; with it the output grows to the rotated bounding box.
// Uncovered output pixels read from Background, or None.
type TransformRequest struct {
	Src        *Buffer
	Crop       Rect // zero means the whole source
	Width      int
	Height     int
	Interp     Interpolation
	SizeToFit  bool
	Rotation   float64 // degrees, clockwise
	Scale      float64 // zero means 1
	Background Pen
	Flip       Flip
}

// Identity reports whether the request leaves the cropped source unchanged.
func (r TransformRequest) Identity() bool {
	return r.Width == 0 && r.Height == 0 && r.Rotation == 0 &&
		(r.Scale == 0 || r.Scale == 1) && r.Flip == FlipNone
}

// CropRect returns the crop clipped to the source, or the whole source
// for a zero crop.
func (r TransformRequest) CropRect() Rect {
	full := Rect{W: r.Src.Width(), H: r.Src.Height()}
	if r.Crop == (Rect{}) {
		return full
	}
	return r.Crop.Intersect(full)
}

// ScaledSize returns the size before rotation: Width x Height when both
// are set, otherwise the crop scaled by Scale with a missing side derived
// from the aspect ratio.
func (r TransformRequest) ScaledSize() Size {
	crop := r.CropRect()
	if r.Width > 0 && r.Height > 0 {
		return Size{W: r.Width, H: r.Height}
	}
	if crop.Empty() {
		return Size{}
	}
	switch {
	case r.Width > 0:
		return Size{W: r.Width, H: max(1, int(math.Round(float64(crop.H*r.Width)/float64(crop.W))))}
	case r.Height > 0:
		return Size{W: max(1, int(math.Round(float64(crop.W*r.Height)/float64(crop.H)))), H: r.Height}
	}
	s := r.Scale
	if s <= 0 {
		s = 1
	}
	return Size{
		W: max(1, int(math.Round(float64(crop.W)*s))),
		H: max(1, int(math.Round(float64(crop.H)*s))),
	}
}

// OutputSize returns the size of the transformed image: ScaledSize, grown
// to the rotated bounding box when SizeToFit is set.
func (r TransformRequest) OutputSize() Size {
	s := r.ScaledSize()
	if !r.SizeToFit || math.Mod(r.Rotation, 360) == 0 || s.Empty() {
		return s
	}
	rad := r.Rotation * math.Pi / 180
	cos, sin := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
	w := float64(s.W)*cos + float64(s.H)*sin
	h := float64(s.W)*sin + float64(s.H)*cos
	// Trim float noise so that 90 degrees maps W x H to exactly H x W.
	return Size{W: int(math.Ceil(w - 1e-6)), H: int(math.Ceil(h - 1e-6))}
}

// TransformResult carries the new pixels and the size actually produced,
// which may differ from the request.
type TransformResult struct {
	Buffer *Buffer
	Size   Size
}

// ImageTransformer rotates and scales images. Implementations may do the
// work asynchronously but must not return before the result is ready or
// ctx is done.
type ImageTransformer interface {
	RotateAndScale(ctx context.Context, req TransformRequest) (TransformResult, error)
}
