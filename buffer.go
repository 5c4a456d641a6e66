package pixpipe

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gputypes"
)

// IndexPolicy controls how out-of-range coordinates are addressed.
type IndexPolicy uint8

const (
	// IndexStrict rejects coordinates outside the buffer. Writes to them
	// are dropped and reads return None.
	IndexStrict IndexPolicy = iota

	// IndexWrap folds x + y*width into [0, len) with a modulo. Every
	// coordinate is addressable, including negative ones.
	IndexWrap
)

// String returns the policy name.
func (p IndexPolicy) String() string {
	switch p {
	case IndexStrict:
		return "strict"
	case IndexWrap:
		return "wrap"
	default:
		return fmt.Sprintf("IndexPolicy(%d)", uint8(p))
	}
}

// Size is a width and height in pixels.
type Size struct {
	W, H int
}

// Empty reports whether either side is non-positive.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Buffer is a packed ARGB pixel buffer, one uint32 per pixel in row-major
// order. len(Pix()) == Width()*Height() always holds.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	width  int
	height int
	pix    []uint32
	policy IndexPolicy
	shared bool // pix aliases caller memory and is never pooled
}

// NewBuffer allocates a buffer with all pixels set to None.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    defaultPool.get(width * height),
	}, nil
}

// FromPacked wraps packed pixels. With copyData the buffer owns a copy,
// otherwise it aliases data[:width*height].
func FromPacked(data []uint32, width, height int, copyData bool) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	n := width * height
	if len(data) < n {
		return nil, fmt.Errorf("%w: got %d pixels, need %d", ErrDataTooSmall, len(data), n)
	}

	if !copyData {
		return &Buffer{width: width, height: height, pix: data[:n:n], shared: true}, nil
	}
	pix := defaultPool.get(n)
	copy(pix, data)
	return &Buffer{width: width, height: height, pix: pix}, nil
}

// FromBytes decodes 4 bytes per pixel. Each group is a little-endian
// uint32, so memory order is B, G, R, A. With swapRB the red and blue
// lanes are exchanged, which reads R, G, B, A memory order instead.
func FromBytes(data []byte, width, height int, swapRB bool) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	n := width * height
	if len(data) < n*4 {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrDataTooSmall, len(data), n*4)
	}

	b := &Buffer{width: width, height: height, pix: defaultPool.get(n)}
	for i := range b.pix {
		c := binary.LittleEndian.Uint32(data[i*4:])
		if swapRB {
			c = SwapRB(c)
		}
		b.pix[i] = c
	}
	return b, nil
}

// FromBytesFormat is FromBytes with the byte layout named by a texture
// format. BGRA8 formats map to swapRB=false and RGBA8 formats to true.
func FromBytesFormat(data []byte, width, height int, format gputypes.TextureFormat) (*Buffer, error) {
	swap, err := swapForFormat(format)
	if err != nil {
		return nil, err
	}
	return FromBytes(data, width, height, swap)
}

func swapForFormat(format gputypes.TextureFormat) (bool, error) {
	switch format {
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return false, nil
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Bytes encodes the buffer with the layout FromBytes reads.
func (b *Buffer) Bytes(swapRB bool) []byte {
	out := make([]byte, len(b.pix)*4)
	encodePixels(out, b.pix, swapRB)
	return out
}

// RectBytes encodes the pixels inside r, clipped to the buffer, row by row
// with the layout FromBytes reads. It returns nil for an empty overlap.
func (b *Buffer) RectBytes(r Rect, swapRB bool) []byte {
	r = r.Intersect(Rect{W: b.width, H: b.height})
	if r.Empty() {
		return nil
	}
	out := make([]byte, r.W*r.H*4)
	for y := range r.H {
		row := b.pix[(r.Y+y)*b.width+r.X:][:r.W]
		encodePixels(out[y*r.W*4:], row, swapRB)
	}
	return out
}

// BytesFormat is Bytes with the layout named by a texture format.
func (b *Buffer) BytesFormat(format gputypes.TextureFormat) ([]byte, error) {
	swap, err := swapForFormat(format)
	if err != nil {
		return nil, err
	}
	return b.Bytes(swap), nil
}

// RectBytesFormat is RectBytes with the layout named by a texture format.
func (b *Buffer) RectBytesFormat(r Rect, format gputypes.TextureFormat) ([]byte, error) {
	swap, err := swapForFormat(format)
	if err != nil {
		return nil, err
	}
	return b.RectBytes(r, swap), nil
}

func encodePixels(dst []byte, src []uint32, swapRB bool) {
	for i, c := range src {
		if swapRB {
			c = SwapRB(c)
		}
		binary.LittleEndian.PutUint32(dst[i*4:], c)
	}
}

// Width returns the width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() Size {
	return Size{W: b.width, H: b.height}
}

// Valid reports whether the buffer has pixels. Released buffers are invalid.
func (b *Buffer) Valid() bool {
	return b != nil && b.width > 0 && b.height > 0
}

// Pix returns the backing pixel slice.
func (b *Buffer) Pix() []uint32 {
	return b.pix
}

// Policy returns the index policy.
func (b *Buffer) Policy() IndexPolicy {
	return b.policy
}

// SetPolicy changes the index policy.
func (b *Buffer) SetPolicy(p IndexPolicy) {
	b.policy = p
}

// Index maps (x, y) to a position in Pix. The second result is false
// when the coordinate is not addressable under the buffer's policy.
func (b *Buffer) Index(x, y int) (int, bool) {
	n := len(b.pix)
	if n == 0 {
		return 0, false
	}
	if b.policy == IndexWrap {
		i := (x + y*b.width) % n
		if i < 0 {
			i += n
		}
		return i, true
	}
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, false
	}
	return y*b.width + x, true
}

// ReadPixel returns the packed pixel at (x, y), or None if it is not
// addressable.
func (b *Buffer) ReadPixel(x, y int) uint32 {
	i, ok := b.Index(x, y)
	if !ok {
		return None
	}
	return b.pix[i]
}

// SetPixel stores a packed pixel verbatim. It reports false when (x, y)
// is not addressable.
func (b *Buffer) SetPixel(x, y int, c uint32) bool {
	i, ok := b.Index(x, y)
	if !ok {
		return false
	}
	b.pix[i] = c
	return true
}

// WriteRun stores c verbatim along run and returns the number of pixels
// written. Unaddressable pixels are skipped.
func (b *Buffer) WriteRun(run ScanRun, c uint32) int {
	n := 0
	for i := range run.Length {
		x, y := run.Pos(i)
		if b.SetPixel(x, y, c) {
			n++
		}
	}
	return n
}

// Row returns the pixels of row y, or nil if y is out of range.
func (b *Buffer) Row(y int) []uint32 {
	if y < 0 || y >= b.height {
		return nil
	}
	off := y * b.width
	return b.pix[off : off+b.width : off+b.width]
}

// Clear sets every pixel to c.
func (b *Buffer) Clear(c uint32) {
	if c == None {
		clear(b.pix)
		return
	}
	for i := range b.pix {
		b.pix[i] = c
	}
}

// Clone returns a deep copy that shares no storage with b.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{width: b.width, height: b.height, policy: b.policy}
	if len(b.pix) > 0 {
		c.pix = defaultPool.get(len(b.pix))
		copy(c.pix, b.pix)
	}
	return c
}

// Resize changes the dimensions in place. With preserve the overlapping
// top-left region is kept and new area is None. Without it the buffer
// is cleared.
func (b *Buffer) Resize(width, height int, preserve bool) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width == b.width && height == b.height {
		if !preserve {
			clear(b.pix)
		}
		return nil
	}

	pix := defaultPool.get(width * height)
	if preserve {
		cw, ch := min(width, b.width), min(height, b.height)
		for y := range ch {
			copy(pix[y*width:y*width+cw], b.pix[y*b.width:y*b.width+cw])
		}
	}
	b.recycle()
	b.pix, b.width, b.height = pix, width, height
	return nil
}

// Release returns the storage to the pool. The buffer is invalid afterwards
// and must not be used. Calling Release twice is a no-op.
func (b *Buffer) Release() {
	b.recycle()
	b.pix, b.width, b.height = nil, 0, 0
}

// recycle hands owned storage back to the pool.
func (b *Buffer) recycle() {
	if b.pix != nil && !b.shared {
		defaultPool.put(b.pix)
	}
	b.shared = false
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// At implements the image.Image interface.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.NRGBA{}
	}
	return ToNRGBA(b.pix[y*b.width+x])
}

// Set implements the draw.Image interface. Out-of-bounds writes are ignored.
func (b *Buffer) Set(x, y int, c color.Color) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pix[y*b.width+x] = FromColor(c)
}

var _ draw.Image = (*Buffer)(nil)

// ToNRGBA converts the buffer to an *image.NRGBA.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i, c := range b.pix {
		a, r, g, bl := Unpack(c)
		p := img.Pix[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2], p[3] = r, g, bl, a
	}
	return img
}

// FromImage copies any image into a new buffer with its origin at the
// image's Bounds().Min.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	b, err := NewBuffer(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	if src, ok := img.(*image.NRGBA); ok {
		for y := range b.height {
			row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := range b.width {
				p := row[x*4 : x*4+4 : x*4+4]
				b.pix[y*b.width+x] = Pack(p[3], p[0], p[1], p[2])
			}
		}
		return b, nil
	}

	for y := range b.height {
		for x := range b.width {
			b.pix[y*b.width+x] = FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return b, nil
}
